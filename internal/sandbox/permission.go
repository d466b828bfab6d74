package sandbox

import (
	"os"
	"path/filepath"
)

// Kind identifies the operation a permission check is asked about.
type Kind int

const (
	// KindRead asks whether the path can be read.
	KindRead Kind = iota
	// KindWrite asks whether the path can be written.
	KindWrite
	// KindDelete asks whether the path can be unlinked or renamed away.
	KindDelete
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// CheckPermission reports whether the given operation is permitted on path.
// A nonexistent path permits Write (file creation) and denies Read and
// Delete. Delete requires write access on both the target and its parent,
// since removal rewrites the parent directory.
//
// The check is advisory: the actual operation may still fail with an
// OS-level error, which callers must treat as a normal failure.
func (s *Sandbox) CheckPermission(path ResolvedPath, kind Kind) bool {
	target := string(path)

	if _, err := os.Lstat(target); err != nil {
		return kind == KindWrite
	}

	switch kind {
	case KindRead:
		return accessible(target, probeRead)
	case KindWrite:
		return accessible(target, probeWrite)
	case KindDelete:
		return accessible(target, probeWrite) && accessible(filepath.Dir(target), probeWrite)
	default:
		return false
	}
}

// Package sandbox confines all filesystem operations to a single allowed
// root directory. It provides safe path resolution, advisory permission
// checks, reversible deletion into a recycle bin, and a denylist gate for
// raw command arguments.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvedPath is a canonical absolute path verified to lie inside the
// allowed root. Values are only produced by Sandbox.Resolve.
type ResolvedPath string

// String returns the path as a plain string.
func (p ResolvedPath) String() string { return string(p) }

// Sandbox enforces path confinement to a fixed allowed root.
type Sandbox struct {
	root       string // absolute, symlink-resolved
	recycleDir string // absolute, inside root
}

// New creates a sandbox rooted at the given directory. The root must exist;
// the recycle directory is created inside it if absent. recycleName may be
// relative (resolved against the root) or absolute.
func New(root, recycleName string) (*Sandbox, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve sandbox root: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("eval symlinks for sandbox root: %w", err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("stat sandbox root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sandbox root %q is not a directory", resolved)
	}

	recycleDir := recycleName
	if !filepath.IsAbs(recycleDir) {
		recycleDir = filepath.Join(resolved, recycleDir)
	}
	recycleDir = filepath.Clean(recycleDir)
	if !isDescendant(resolved, recycleDir) {
		return nil, fmt.Errorf("recycle dir %q is outside sandbox root %q", recycleDir, resolved)
	}
	if err := os.MkdirAll(recycleDir, 0755); err != nil {
		return nil, fmt.Errorf("create recycle dir: %w", err)
	}

	return &Sandbox{root: resolved, recycleDir: recycleDir}, nil
}

// Root returns the canonical allowed root.
func (s *Sandbox) Root() string { return s.root }

// RecycleDir returns the recycle bin directory.
func (s *Sandbox) RecycleDir() string { return s.recycleDir }

// Resolve turns a caller-supplied path string into a canonical absolute path
// guaranteed to lie inside the allowed root, or fails with a ViolationError.
// Relative paths are joined to base, which must be the caller's current
// working directory.
func (s *Sandbox) Resolve(base, raw string) (ResolvedPath, error) {
	if raw == "" {
		return "", &ViolationError{Path: raw, Root: s.root}
	}

	expanded, err := expandHome(raw)
	if err != nil {
		return "", &ViolationError{Path: raw, Root: s.root}
	}

	abs := expanded
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(base, abs)
	}
	abs = filepath.Clean(abs)

	canonical, err := s.canonicalize(abs)
	if err != nil {
		return "", &ViolationError{Path: raw, Root: s.root}
	}

	if !isDescendant(s.root, canonical) {
		return "", &ViolationError{Path: canonical, Root: s.root}
	}

	return ResolvedPath(canonical), nil
}

// canonicalize resolves symlinks in abs. When the path does not exist yet,
// the nearest existing ancestor is resolved and the missing suffix is
// re-appended, so create operations still get an honest canonical form.
func (s *Sandbox) canonicalize(abs string) (string, error) {
	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	cur := abs
	var missing []string
	for {
		parent := filepath.Dir(cur)
		missing = append(missing, filepath.Base(cur))

		resolvedParent, perr := filepath.EvalSymlinks(parent)
		if perr == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolvedParent = filepath.Join(resolvedParent, missing[i])
			}
			return resolvedParent, nil
		}
		if !os.IsNotExist(perr) {
			return "", perr
		}
		if parent == cur {
			return "", err
		}
		cur = parent
	}
}

// expandHome expands a leading ~ to the user home directory. The expanded
// path is still subject to the descendant check.
func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// isDescendant reports whether target equals root or lies beneath it.
// Comparison is by path components, so /root2 is not a descendant of /root.
func isDescendant(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

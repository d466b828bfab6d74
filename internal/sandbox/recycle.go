package sandbox

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"goterm/pkg/logger"
)

// RecycleEntry describes one soft-deleted path: where it was and where it
// now lives under the recycle bin. With DryRun set, Recycled is the name the
// entry would have received and nothing was moved.
type RecycleEntry struct {
	Original string `json:"original"`
	Recycled string `json:"recycled"`
	DryRun   bool   `json:"dry_run"`
}

// Recycler removes files and directories by relocating them into the
// sandbox recycle bin instead of destroying data.
type Recycler struct {
	sandbox *Sandbox
}

// NewRecycler creates a recycler bound to the sandbox.
func NewRecycler(s *Sandbox) *Recycler {
	return &Recycler{sandbox: s}
}

// Delete moves path into the recycle bin under a collision-free name.
// The path must come from Sandbox.Resolve. The sandbox root and the recycle
// bin itself are never deletable. With dryRun set, no filesystem mutation
// happens and the returned entry describes what would have been done.
func (r *Recycler) Delete(path ResolvedPath, dryRun bool) (RecycleEntry, error) {
	target := string(path)

	if target == r.sandbox.root {
		return RecycleEntry{}, &DeleteFailedError{Path: target, Cause: errors.New("refusing to delete sandbox root")}
	}
	if target == r.sandbox.recycleDir {
		return RecycleEntry{}, &DeleteFailedError{Path: target, Cause: errors.New("refusing to delete recycle bin")}
	}

	if _, err := os.Lstat(target); err != nil {
		return RecycleEntry{}, &DeleteFailedError{Path: target, Cause: err}
	}

	dest := r.nextFreeName(filepath.Base(target))

	entry := RecycleEntry{Original: target, Recycled: dest, DryRun: dryRun}
	if dryRun {
		logger.Info().Str("path", target).Str("dest", dest).Msg("dry run: would move to recycle bin")
		return entry, nil
	}

	if err := move(target, dest); err != nil {
		return RecycleEntry{}, &DeleteFailedError{Path: target, Cause: err}
	}

	logger.Info().Str("path", target).Str("dest", dest).Msg("moved to recycle bin")
	return entry, nil
}

// nextFreeName picks the destination for a base name, disambiguating
// collisions as stem_1.ext, stem_2.ext and so on. The sequence is
// deterministic for repeated deletions of same-named items.
func (r *Recycler) nextFreeName(base string) string {
	dest := filepath.Join(r.sandbox.recycleDir, base)
	if !exists(dest) {
		return dest
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		// A dotfile like .env is all stem, so the hidden prefix survives
		// and the counter lands at the end (.env_1, not _1.env).
		stem, ext = base, ""
	}
	for n := 1; ; n++ {
		dest = filepath.Join(r.sandbox.recycleDir, fmt.Sprintf("%s_%d%s", stem, n, ext))
		if !exists(dest) {
			return dest
		}
	}
}

// Entries lists the current contents of the recycle bin.
func (r *Recycler) Entries() ([]os.DirEntry, error) {
	return os.ReadDir(r.sandbox.recycleDir)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// move renames src to dest, falling back to copy-then-delete when the two
// sit on different volumes. A failed copy leaves the source untouched.
func move(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyAny(src, dest); err != nil {
		// Do not leave a partial duplicate behind.
		os.RemoveAll(dest)
		return err
	}
	return os.RemoveAll(src)
}

func copyAny(src, dest string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return copyLink(src, dest)
	case info.IsDir():
		return copyTree(src, dest)
	default:
		return copyFile(src, dest, info.Mode().Perm())
	}
}

func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			return copyLink(path, target)
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		default:
			return copyFile(path, target, info.Mode().Perm())
		}
	})
}

func copyFile(src, dest string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyLink(src, dest string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	return os.Symlink(target, dest)
}

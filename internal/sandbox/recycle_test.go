package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteMovesToRecycleBin(t *testing.T) {
	sb := newTestSandbox(t)
	r := NewRecycler(sb)

	file := filepath.Join(sb.Root(), "note.txt")
	mustWrite(t, file, "hello")

	entry, err := r.Delete(ResolvedPath(file), false)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if entry.Original != file {
		t.Errorf("entry.Original = %q, want %q", entry.Original, file)
	}
	if entry.Recycled != filepath.Join(sb.RecycleDir(), "note.txt") {
		t.Errorf("entry.Recycled = %q", entry.Recycled)
	}

	if _, err := os.Lstat(file); !os.IsNotExist(err) {
		t.Error("source still exists after delete")
	}
	data, err := os.ReadFile(entry.Recycled)
	if err != nil {
		t.Fatalf("recycled file unreadable: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("recycled content = %q, want %q", data, "hello")
	}
}

func TestDeleteCollisionNaming(t *testing.T) {
	sb := newTestSandbox(t)
	r := NewRecycler(sb)

	file := filepath.Join(sb.Root(), "a.txt")
	want := []string{"a.txt", "a_1.txt", "a_2.txt"}
	for i, name := range want {
		mustWrite(t, file, "v")
		entry, err := r.Delete(ResolvedPath(file), false)
		if err != nil {
			t.Fatalf("Delete() #%d error = %v", i, err)
		}
		if got := filepath.Base(entry.Recycled); got != name {
			t.Errorf("delete #%d recycled as %q, want %q", i, got, name)
		}
	}

	entries, err := r.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(want) {
		t.Errorf("recycle bin holds %d entries, want %d", len(entries), len(want))
	}
}

func TestDeleteCollisionNamingNoExtension(t *testing.T) {
	sb := newTestSandbox(t)
	r := NewRecycler(sb)

	dir := filepath.Join(sb.Root(), "build")
	for i, want := range []string{"build", "build_1"} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		entry, err := r.Delete(ResolvedPath(dir), false)
		if err != nil {
			t.Fatalf("Delete() #%d error = %v", i, err)
		}
		if got := filepath.Base(entry.Recycled); got != want {
			t.Errorf("delete #%d recycled as %q, want %q", i, got, want)
		}
	}
}

func TestDeleteCollisionNamingDotfile(t *testing.T) {
	sb := newTestSandbox(t)
	r := NewRecycler(sb)

	file := filepath.Join(sb.Root(), ".env")
	for i, want := range []string{".env", ".env_1", ".env_2"} {
		mustWrite(t, file, "v")
		entry, err := r.Delete(ResolvedPath(file), false)
		if err != nil {
			t.Fatalf("Delete() #%d error = %v", i, err)
		}
		if got := filepath.Base(entry.Recycled); got != want {
			t.Errorf("delete #%d recycled as %q, want %q", i, got, want)
		}
	}
}

func TestDeleteDirectoryRecursive(t *testing.T) {
	sb := newTestSandbox(t)
	r := NewRecycler(sb)

	dir := filepath.Join(sb.Root(), "project")
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(dir, "src", "main.go"), "package main")

	entry, err := r.Delete(ResolvedPath(dir), false)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	moved := filepath.Join(entry.Recycled, "src", "main.go")
	if _, err := os.Stat(moved); err != nil {
		t.Errorf("nested file missing after delete: %v", err)
	}
	if _, err := os.Lstat(dir); !os.IsNotExist(err) {
		t.Error("source directory still exists")
	}
}

func TestDeleteDryRun(t *testing.T) {
	sb := newTestSandbox(t)
	r := NewRecycler(sb)

	file := filepath.Join(sb.Root(), "keep.txt")
	mustWrite(t, file, "data")

	entry, err := r.Delete(ResolvedPath(file), true)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !entry.DryRun {
		t.Error("entry.DryRun = false, want true")
	}
	if entry.Recycled != filepath.Join(sb.RecycleDir(), "keep.txt") {
		t.Errorf("entry.Recycled = %q", entry.Recycled)
	}

	if _, err := os.Stat(file); err != nil {
		t.Errorf("dry run removed the source: %v", err)
	}
	entries, err := r.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run populated the recycle bin: %d entries", len(entries))
	}
}

func TestDeleteRefusesRootAndRecycleBin(t *testing.T) {
	sb := newTestSandbox(t)
	r := NewRecycler(sb)

	for _, path := range []string{sb.Root(), sb.RecycleDir()} {
		if _, err := r.Delete(ResolvedPath(path), false); !errors.Is(err, ErrDeleteFailed) {
			t.Errorf("Delete(%q) error = %v, want delete failure", path, err)
		}
	}
}

func TestDeleteNonexistent(t *testing.T) {
	sb := newTestSandbox(t)
	r := NewRecycler(sb)

	missing := filepath.Join(sb.Root(), "ghost.txt")
	if _, err := r.Delete(ResolvedPath(missing), false); !errors.Is(err, ErrDeleteFailed) {
		t.Errorf("Delete(missing) error = %v, want delete failure", err)
	}
}

func TestDeletePreservesSymlinkAsLink(t *testing.T) {
	sb := newTestSandbox(t)
	r := NewRecycler(sb)

	target := filepath.Join(sb.Root(), "target.txt")
	mustWrite(t, target, "t")
	link := filepath.Join(sb.Root(), "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	entry, err := r.Delete(ResolvedPath(link), false)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("deleting a symlink touched its target: %v", err)
	}
	info, err := os.Lstat(entry.Recycled)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Error("recycled entry is not a symlink")
	}
}

package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestSandbox(t *testing.T) *Sandbox {
	t.Helper()
	sb, err := New(t.TempDir(), ".recycle_bin")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sb
}

func TestResolveRelative(t *testing.T) {
	sb := newTestSandbox(t)

	got, err := sb.Resolve(sb.Root(), "docs/readme.md")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := filepath.Join(sb.Root(), "docs", "readme.md")
	if got.String() != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveDotAndParentWithinRoot(t *testing.T) {
	sb := newTestSandbox(t)
	if err := os.MkdirAll(filepath.Join(sb.Root(), "a", "b"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := sb.Resolve(filepath.Join(sb.Root(), "a", "b"), "../c.txt")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := filepath.Join(sb.Root(), "a", "c.txt")
	if got.String() != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveEscapeRejected(t *testing.T) {
	sb := newTestSandbox(t)

	cases := []string{
		"../../../etc/passwd",
		"/etc/passwd",
		"..",
		filepath.Dir(sb.Root()),
	}
	for _, raw := range cases {
		if _, err := sb.Resolve(sb.Root(), raw); !errors.Is(err, ErrSandboxViolation) {
			t.Errorf("Resolve(%q) error = %v, want sandbox violation", raw, err)
		}
	}
}

func TestResolveEmptyPath(t *testing.T) {
	sb := newTestSandbox(t)

	if _, err := sb.Resolve(sb.Root(), ""); !errors.Is(err, ErrSandboxViolation) {
		t.Errorf("Resolve(\"\") error = %v, want sandbox violation", err)
	}
}

func TestResolveIdempotent(t *testing.T) {
	sb := newTestSandbox(t)

	first, err := sb.Resolve(sb.Root(), "sub/file.txt")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := sb.Resolve(sb.Root(), first.String())
	if err != nil {
		t.Fatalf("Resolve(resolved) error = %v", err)
	}
	if first != second {
		t.Errorf("resolve not idempotent: %q != %q", first, second)
	}
}

func TestResolveNonexistentPath(t *testing.T) {
	sb := newTestSandbox(t)

	got, err := sb.Resolve(sb.Root(), "new/deep/dir/file.txt")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := filepath.Join(sb.Root(), "new", "deep", "dir", "file.txt")
	if got.String() != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolveSymlinkEscapeRejected(t *testing.T) {
	sb := newTestSandbox(t)
	outside := t.TempDir()

	link := filepath.Join(sb.Root(), "escape")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	if _, err := sb.Resolve(sb.Root(), "escape/secret.txt"); !errors.Is(err, ErrSandboxViolation) {
		t.Errorf("Resolve() through outward symlink error = %v, want sandbox violation", err)
	}
}

func TestResolveRootItself(t *testing.T) {
	sb := newTestSandbox(t)

	got, err := sb.Resolve(sb.Root(), ".")
	if err != nil {
		t.Fatalf("Resolve(.) error = %v", err)
	}
	if got.String() != sb.Root() {
		t.Errorf("Resolve(.) = %q, want %q", got, sb.Root())
	}
}

func TestNewRejectsRecycleDirOutsideRoot(t *testing.T) {
	if _, err := New(t.TempDir(), "../elsewhere"); err == nil {
		t.Error("New() with outside recycle dir, want error")
	}
}

func TestNewRejectsNonDirectoryRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(file, ".recycle_bin"); err == nil {
		t.Error("New() with file root, want error")
	}
}

func TestNewCreatesRecycleDir(t *testing.T) {
	sb := newTestSandbox(t)

	info, err := os.Stat(sb.RecycleDir())
	if err != nil {
		t.Fatalf("recycle dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("recycle dir is not a directory")
	}
}

func TestIsDescendantSiblingPrefix(t *testing.T) {
	// /root2 must not count as inside /root.
	if isDescendant(string(filepath.Separator)+"root", string(filepath.Separator)+"root2") {
		t.Error("sibling with shared prefix reported as descendant")
	}
}

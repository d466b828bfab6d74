package sandbox

import (
	"path/filepath"
	"testing"
)

func TestCheckPermissionNonexistent(t *testing.T) {
	sb := newTestSandbox(t)
	missing := ResolvedPath(filepath.Join(sb.Root(), "not-yet.txt"))

	if !sb.CheckPermission(missing, KindWrite) {
		t.Error("write on nonexistent path = false, want true (creation)")
	}
	if sb.CheckPermission(missing, KindRead) {
		t.Error("read on nonexistent path = true, want false")
	}
	if sb.CheckPermission(missing, KindDelete) {
		t.Error("delete on nonexistent path = true, want false")
	}
}

func TestCheckPermissionExistingFile(t *testing.T) {
	sb := newTestSandbox(t)
	file := filepath.Join(sb.Root(), "file.txt")
	mustWrite(t, file, "x")

	for _, kind := range []Kind{KindRead, KindWrite, KindDelete} {
		if !sb.CheckPermission(ResolvedPath(file), kind) {
			t.Errorf("%s on owned file = false, want true", kind)
		}
	}
}

func TestCheckPermissionDirectory(t *testing.T) {
	sb := newTestSandbox(t)

	if !sb.CheckPermission(ResolvedPath(sb.Root()), KindRead) {
		t.Error("read on sandbox root = false, want true")
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindRead:   "read",
		KindWrite:  "write",
		KindDelete: "delete",
		Kind(99):   "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}

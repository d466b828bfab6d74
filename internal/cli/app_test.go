package cli

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"goterm/internal/commands"
	"goterm/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Sandbox.AllowedRoot = t.TempDir()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")

	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app
}

func TestNewSessionRegistersBuiltins(t *testing.T) {
	app := newTestApp(t)

	_, registry, err := app.NewSession()
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	want := []string{
		"pwd", "ls", "cd", "mkdir", "rm", "touch", "cat", "echo", "write",
		"trash", "monitor", "help", "exit", "history", "run", "ai", "ask", "do",
	}
	for _, name := range want {
		if _, ok := registry.Get(name); !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestNewSessionRespectsFeatureToggles(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sandbox.AllowedRoot = t.TempDir()
	cfg.History.Enabled = false
	cfg.Script.Enabled = false
	cfg.AI.Enabled = false

	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	defer app.Close()

	_, registry, err := app.NewSession()
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	for _, name := range []string{"history", "run", "ai"} {
		if _, ok := registry.Get(name); ok {
			t.Errorf("command %q registered despite being disabled", name)
		}
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	app := newTestApp(t)

	exec1, registry1, err := app.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	exec2, _, err := app.NewSession()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := registry1.Dispatch(context.Background(), "mkdir", []string{"sub"}); err != nil {
		t.Fatal(err)
	}
	if err := exec1.ChangeDir("sub"); err != nil {
		t.Fatalf("ChangeDir() error = %v", err)
	}

	if exec2.Cwd() != exec2.Root() {
		t.Error("second session's cwd moved with the first")
	}
}

func TestExpandAlias(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"ll"}, []string{"ls", "-l"}},
		{[]string{"la", "docs"}, []string{"ls", "-a", "docs"}},
		{[]string{"quit"}, []string{"exit"}},
		{[]string{"pwd"}, []string{"pwd"}},
	}
	for _, tc := range cases {
		if got := expandAlias(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("expandAlias(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestQuitEndsSession(t *testing.T) {
	app := newTestApp(t)

	_, registry, err := app.NewSession()
	if err != nil {
		t.Fatal(err)
	}

	fields := expandAlias([]string{"quit"})
	_, err = registry.Dispatch(context.Background(), fields[0], fields[1:])
	if !errors.Is(err, commands.ErrExit) {
		t.Errorf("quit dispatch error = %v, want ErrExit", err)
	}
}

func TestPrompt(t *testing.T) {
	root := "/srv/box"
	cases := []struct {
		cwd  string
		dry  bool
		want string
	}{
		{root, false, "goterm:~$ "},
		{filepath.Join(root, "docs"), false, "goterm:~/docs$ "},
		{root, true, "goterm:~ (dry-run)$ "},
	}
	for _, tc := range cases {
		if got := prompt(root, tc.cwd, tc.dry); got != tc.want {
			t.Errorf("prompt(%q, dry=%v) = %q, want %q", tc.cwd, tc.dry, got, tc.want)
		}
	}
}

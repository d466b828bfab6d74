package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sandbox.RecycleBin != ".recycle_bin" {
		t.Errorf("RecycleBin = %q", cfg.Sandbox.RecycleBin)
	}
	if !cfg.Sandbox.SafeMode {
		t.Error("SafeMode default = false, want true")
	}
	if cfg.Sandbox.DryRun {
		t.Error("DryRun default = true, want false")
	}
	if cfg.Gateway.Port != 8080 {
		t.Errorf("Gateway.Port = %d", cfg.Gateway.Port)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled default = false, want true")
	}
}

func TestLoadFromFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
sandbox:
  allowed_root: /srv/files
  safe_mode: false
gateway:
  port: 9999
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Sandbox.AllowedRoot != "/srv/files" {
		t.Errorf("AllowedRoot = %q", cfg.Sandbox.AllowedRoot)
	}
	if cfg.Sandbox.SafeMode {
		t.Error("SafeMode = true, want false from file")
	}
	if cfg.Gateway.Port != 9999 {
		t.Errorf("Gateway.Port = %d", cfg.Gateway.Port)
	}
	// Unset keys keep defaults.
	if cfg.Sandbox.RecycleBin != ".recycle_bin" {
		t.Errorf("RecycleBin = %q", cfg.Sandbox.RecycleBin)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load(missing) error = %v", err)
	}
	if cfg.Sandbox.RecycleBin != ".recycle_bin" {
		t.Errorf("RecycleBin = %q", cfg.Sandbox.RecycleBin)
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sandbox: [broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load(broken) succeeded, want parse error")
	}
}

func TestLoadRejectsNewerSchema(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 99.0.0\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() accepted a newer major schema version")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg := DefaultConfig()
	cfg.Sandbox.AllowedRoot = "/data"

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %o, want 600", info.Mode().Perm())
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(saved) error = %v", err)
	}
	if loaded.Sandbox.AllowedRoot != "/data" {
		t.Errorf("round-trip AllowedRoot = %q", loaded.Sandbox.AllowedRoot)
	}
}

func TestDurationAccessors(t *testing.T) {
	h := HistoryConfig{}
	if got := h.GetRetention(); got != 30*24*time.Hour {
		t.Errorf("empty retention = %v", got)
	}
	h.Retention = "1h"
	if got := h.GetRetention(); got != time.Hour {
		t.Errorf("retention 1h = %v", got)
	}
	h.Retention = "bogus"
	if got := h.GetRetention(); got != 30*24*time.Hour {
		t.Errorf("bogus retention = %v", got)
	}

	s := ScriptConfig{}
	if got := s.GetTimeout(); got != 30*time.Second {
		t.Errorf("empty timeout = %v", got)
	}
	s.Timeout = "5s"
	if got := s.GetTimeout(); got != 5*time.Second {
		t.Errorf("timeout 5s = %v", got)
	}
}

func TestGatewayAddr(t *testing.T) {
	g := GatewayConfig{Host: "0.0.0.0", Port: 8081}
	if g.Addr() != "0.0.0.0:8081" {
		t.Errorf("Addr() = %q", g.Addr())
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	got, err := ExpandPath("~/x.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "x.yaml") {
		t.Errorf("ExpandPath(~/x.yaml) = %q", got)
	}

	plain, err := ExpandPath("/etc/goterm.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if plain != "/etc/goterm.yaml" {
		t.Errorf("ExpandPath(plain) = %q", plain)
	}
}

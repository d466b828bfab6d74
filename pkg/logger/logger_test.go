package logger

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Errorf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInitWithFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "goterm.log")

	if err := Init(LogConfig{Level: "debug", Format: "json", File: file}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	Info().Str("key", "value").Msg("test entry")

	if Get() == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestInitBadFile(t *testing.T) {
	err := Init(LogConfig{Level: "info", File: "/nonexistent-dir-12345/goterm.log"})
	if err == nil {
		t.Error("expected error for unwritable log file")
	}
}

func TestGetBeforeInit(t *testing.T) {
	mu.Lock()
	initialized = false
	mu.Unlock()

	if Get() == nil {
		t.Fatal("expected fallback logger before Init")
	}
}

package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goterm/internal/translate"
)

func newAiRegistry(t *testing.T) *Registry {
	t.Helper()
	e := newTestExecutor(t, true)
	r := NewRegistry(e)
	r.MustRegister(NewPwdCommand(e))
	r.MustRegister(NewLsCommand(e))
	r.MustRegister(NewMkdirCommand(e))
	r.MustRegister(NewRmCommand(e))
	return r
}

func TestAiTranslatesAndRuns(t *testing.T) {
	r := newAiRegistry(t)
	cmd := NewAiCommand("ai", translate.NewRuleTranslator(), r, false)

	res, err := cmd.Execute(context.Background(), []string{"create", "a", "folder", "called", "photos"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("ai failed: %s", res.Output)
	}
	if _, err := os.Stat(filepath.Join(r.exec.Root(), "photos")); err != nil {
		t.Errorf("translated mkdir did not run: %v", err)
	}
}

func TestAiRefusesUnsafeTranslation(t *testing.T) {
	r := newAiRegistry(t)
	cmd := NewAiCommand("ai", translate.NewRuleTranslator(), r, false)

	res, err := cmd.Execute(context.Background(), []string{"delete", "*"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.IsError || !strings.Contains(res.Output, "Refusing") {
		t.Errorf("unsafe request = %+v", res)
	}
}

func TestAiNoMatch(t *testing.T) {
	r := newAiRegistry(t)
	cmd := NewAiCommand("ai", translate.NewRuleTranslator(), r, false)

	res, err := cmd.Execute(context.Background(), []string{"reticulate", "the", "splines"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.IsError || !strings.Contains(res.Output, "understand") {
		t.Errorf("nonsense request = %+v", res)
	}
}

func TestAiConfirmationCancel(t *testing.T) {
	r := newAiRegistry(t)
	cmd := NewAiCommand("do", translate.NewRuleTranslator(), r, true)
	cmd.Confirm = func(string) bool { return false }

	res, err := cmd.Execute(context.Background(), []string{"make", "a", "directory", "called", "tmp"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Output != "Cancelled" {
		t.Errorf("output = %q, want Cancelled", res.Output)
	}
	if _, err := os.Stat(filepath.Join(r.exec.Root(), "tmp")); !os.IsNotExist(err) {
		t.Error("cancelled request still created the directory")
	}
}

func TestAiMissingRequest(t *testing.T) {
	r := newAiRegistry(t)
	cmd := NewAiCommand("ask", translate.NewRuleTranslator(), r, false)

	res, err := cmd.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.IsError {
		t.Error("empty request succeeded, want error result")
	}
}

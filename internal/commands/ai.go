package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"goterm/internal/translate"
)

// AiCommand translates a natural-language request into shell commands and
// runs them. Translated lines pass a whitelist screen first, then the usual
// gate and sandbox checks on dispatch.
type AiCommand struct {
	name       string
	translator translate.Translator
	registry   *Registry
	confirm    bool

	// Confirm, when set together with confirmation being required, is
	// asked before the planned commands run. Nil skips the prompt.
	Confirm func(prompt string) bool
}

// NewAiCommand creates a natural-language command under the given name.
// The same implementation backs ai, ask, and do.
func NewAiCommand(name string, tr translate.Translator, registry *Registry, confirmRequired bool) *AiCommand {
	return &AiCommand{
		name:       name,
		translator: tr,
		registry:   registry,
		confirm:    confirmRequired,
	}
}

func (c *AiCommand) Name() string { return c.name }

func (c *AiCommand) Help() string {
	return c.name + " <natural language> - Run commands described in plain language"
}

func (c *AiCommand) Execute(ctx context.Context, args []string) (Result, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return NewErrorResult(fmt.Sprintf("%s: missing request (try '%s list files')", c.name, c.name)), nil
	}

	lines, err := c.translator.Translate(ctx, text)
	if err != nil {
		if errors.Is(err, translate.ErrNoMatch) {
			return NewErrorResult("Could not understand the request"), nil
		}
		return NewErrorResult(fmt.Sprintf("%s: %v", c.name, err)), nil
	}

	for _, line := range lines {
		if !translate.IsSafeCommand(line) {
			return NewErrorResult(fmt.Sprintf("Refusing to run: %s", line)), nil
		}
	}

	if c.confirm && c.Confirm != nil {
		prompt := fmt.Sprintf("Planned commands:\n  %s\nRun them? (y/N): ", strings.Join(lines, "\n  "))
		if !c.Confirm(prompt) {
			return NewSuccessResult("Cancelled"), nil
		}
	}

	var b strings.Builder
	for _, line := range lines {
		fields, err := shell.Fields(line, nil)
		if err != nil || len(fields) == 0 {
			return NewErrorResult(fmt.Sprintf("Could not parse: %s", line)), nil
		}

		res, err := c.registry.Dispatch(ctx, fields[0], fields[1:])
		if err != nil {
			return Result{}, err
		}
		if res.Output != "" {
			b.WriteString(res.Output)
			b.WriteByte('\n')
		}
		if res.IsError {
			return NewErrorResult(strings.TrimRight(b.String(), "\n")), nil
		}
	}
	return NewSuccessResult(strings.TrimRight(b.String(), "\n")), nil
}

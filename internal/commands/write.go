package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"goterm/internal/executor"
	"goterm/internal/sandbox"
)

// WriteCommand writes text into a file, replacing any previous content.
type WriteCommand struct {
	exec     *executor.Executor
	maxBytes int64
}

// NewWriteCommand creates the write command. maxBytes caps the written
// content; zero means no cap.
func NewWriteCommand(exec *executor.Executor, maxBytes int64) *WriteCommand {
	return &WriteCommand{exec: exec, maxBytes: maxBytes}
}

func (c *WriteCommand) Name() string { return "write" }

func (c *WriteCommand) Help() string { return "write file text... - Write text into a file" }

func (c *WriteCommand) Execute(ctx context.Context, args []string) (Result, error) {
	_, operands := splitFlags(args)
	if len(operands) < 2 {
		return NewErrorResult("write: usage: write file text..."), nil
	}

	name := operands[0]
	content := strings.Join(operands[1:], " ") + "\n"

	if c.maxBytes > 0 && int64(len(content)) > c.maxBytes {
		return NewErrorResult(fmt.Sprintf("write: content exceeds %d byte limit", c.maxBytes)), nil
	}

	path, err := c.exec.CheckPermission(name, sandbox.KindWrite)
	if err != nil {
		return NewErrorResult(err.Error()), nil
	}

	if c.exec.DryRun() {
		return NewSuccessResult(fmt.Sprintf("DRY RUN: would write %d bytes to %s", len(content), path)), nil
	}

	if err := os.WriteFile(path.String(), []byte(content), 0644); err != nil {
		return NewErrorResult(fmt.Sprintf("write: %s: %v", name, err)), nil
	}
	return NewSuccessResult(fmt.Sprintf("Wrote %d bytes to %s", len(content), path)), nil
}

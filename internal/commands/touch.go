package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"goterm/internal/executor"
	"goterm/internal/sandbox"
)

// TouchCommand creates empty files or refreshes modification times.
type TouchCommand struct {
	exec *executor.Executor
}

// NewTouchCommand creates the touch command.
func NewTouchCommand(exec *executor.Executor) *TouchCommand {
	return &TouchCommand{exec: exec}
}

func (c *TouchCommand) Name() string { return "touch" }

func (c *TouchCommand) Help() string {
	return "touch file... - Create empty files or update their timestamps"
}

func (c *TouchCommand) Execute(ctx context.Context, args []string) (Result, error) {
	_, operands := splitFlags(args)
	if len(operands) == 0 {
		return NewErrorResult("touch: missing file operand"), nil
	}

	dry := c.exec.DryRun()
	var b strings.Builder
	ok := true
	for _, name := range operands {
		path, err := c.exec.CheckPermission(name, sandbox.KindWrite)
		if err != nil {
			fmt.Fprintf(&b, "%v\n", err)
			ok = false
			continue
		}

		if dry {
			fmt.Fprintf(&b, "DRY RUN: would touch %s\n", path)
			continue
		}

		if _, err := os.Lstat(path.String()); err == nil {
			now := time.Now()
			if err := os.Chtimes(path.String(), now, now); err != nil {
				fmt.Fprintf(&b, "touch: %s: %v\n", name, err)
				ok = false
			}
			continue
		}

		f, err := os.OpenFile(path.String(), os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			fmt.Fprintf(&b, "touch: %s: %v\n", name, err)
			ok = false
			continue
		}
		f.Close()
	}

	out := strings.TrimRight(b.String(), "\n")
	if !ok {
		return NewErrorResult(out), nil
	}
	return NewSuccessResult(out), nil
}

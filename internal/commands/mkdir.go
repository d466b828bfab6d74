package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"goterm/internal/executor"
	"goterm/internal/sandbox"
)

// MkdirCommand creates directories.
type MkdirCommand struct {
	exec *executor.Executor
}

// NewMkdirCommand creates the mkdir command.
func NewMkdirCommand(exec *executor.Executor) *MkdirCommand {
	return &MkdirCommand{exec: exec}
}

func (c *MkdirCommand) Name() string { return "mkdir" }

func (c *MkdirCommand) Help() string {
	return "mkdir [-p|--parents] [-v|--verbose] directory... - Create directories"
}

func (c *MkdirCommand) Execute(ctx context.Context, args []string) (Result, error) {
	flags, operands := splitFlags(args)
	parents := anyFlag(flags, "-p", "--parents")
	verbose := anyFlag(flags, "-v", "--verbose")

	if len(operands) == 0 {
		return NewErrorResult("mkdir: missing directory operand"), nil
	}

	dry := c.exec.DryRun()
	var b strings.Builder
	ok := true
	for _, name := range operands {
		path, err := c.exec.Resolve(name)
		if err != nil {
			fmt.Fprintf(&b, "%v\n", err)
			ok = false
			continue
		}

		if _, err := os.Lstat(path.String()); err == nil {
			fmt.Fprintf(&b, "Directory already exists: %s\n", name)
			continue
		}

		if !parents {
			if _, err := c.exec.CheckPermission(filepath.Dir(path.String()), sandbox.KindWrite); err != nil {
				fmt.Fprintf(&b, "%v\n", err)
				ok = false
				continue
			}
		}

		if dry {
			fmt.Fprintf(&b, "DRY RUN: would create directory %s\n", path)
			continue
		}

		mkErr := os.Mkdir(path.String(), 0755)
		if parents {
			mkErr = os.MkdirAll(path.String(), 0755)
		}
		if mkErr != nil {
			fmt.Fprintf(&b, "mkdir: %s: %v\n", name, mkErr)
			ok = false
			continue
		}
		if verbose {
			fmt.Fprintf(&b, "Created directory: %s\n", path)
		}
	}

	out := strings.TrimRight(b.String(), "\n")
	if !ok {
		return NewErrorResult(out), nil
	}
	return NewSuccessResult(out), nil
}

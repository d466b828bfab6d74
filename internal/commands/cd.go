package commands

import (
	"context"

	"goterm/internal/executor"
)

// CdCommand changes the session working directory. With no operand it
// returns to the sandbox root.
type CdCommand struct {
	exec *executor.Executor
}

// NewCdCommand creates the cd command.
func NewCdCommand(exec *executor.Executor) *CdCommand {
	return &CdCommand{exec: exec}
}

func (c *CdCommand) Name() string { return "cd" }

func (c *CdCommand) Help() string { return "cd [directory] - Change current directory" }

func (c *CdCommand) Execute(ctx context.Context, args []string) (Result, error) {
	target := c.exec.Root()
	if len(args) > 0 {
		target = args[0]
	}

	if err := c.exec.ChangeDir(target); err != nil {
		return NewErrorResult(err.Error()), nil
	}
	return NewSuccessResult(""), nil
}

package commands

import (
	"context"

	"goterm/internal/executor"
)

// PwdCommand prints the session working directory.
type PwdCommand struct {
	exec *executor.Executor
}

// NewPwdCommand creates the pwd command.
func NewPwdCommand(exec *executor.Executor) *PwdCommand {
	return &PwdCommand{exec: exec}
}

func (c *PwdCommand) Name() string { return "pwd" }

func (c *PwdCommand) Help() string { return "pwd - Print the current working directory" }

func (c *PwdCommand) Execute(ctx context.Context, args []string) (Result, error) {
	return NewSuccessResult(c.exec.Cwd()), nil
}

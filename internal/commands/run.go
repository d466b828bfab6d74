package commands

import (
	"context"
	"strings"

	"goterm/internal/script"
)

// RunCommand executes a JavaScript file inside the sandbox.
type RunCommand struct {
	engine *script.Engine
}

// NewRunCommand creates the run command.
func NewRunCommand(engine *script.Engine) *RunCommand {
	return &RunCommand{engine: engine}
}

func (c *RunCommand) Name() string { return "run" }

func (c *RunCommand) Help() string { return "run script.js - Execute a sandboxed JavaScript file" }

func (c *RunCommand) Execute(ctx context.Context, args []string) (Result, error) {
	_, operands := splitFlags(args)
	if len(operands) == 0 {
		return NewErrorResult("run: missing script operand"), nil
	}

	out, err := c.engine.Run(ctx, operands[0])
	out = strings.TrimRight(out, "\n")
	if err != nil {
		if out != "" {
			return NewErrorResult(out + "\n" + err.Error()), nil
		}
		return NewErrorResult(err.Error()), nil
	}
	return NewSuccessResult(out), nil
}

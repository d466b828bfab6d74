package commands

import (
	"context"
	"strings"
)

// EchoCommand prints its arguments.
type EchoCommand struct{}

// NewEchoCommand creates the echo command.
func NewEchoCommand() *EchoCommand { return &EchoCommand{} }

func (c *EchoCommand) Name() string { return "echo" }

func (c *EchoCommand) Help() string { return "echo [text...] - Print text" }

func (c *EchoCommand) Execute(ctx context.Context, args []string) (Result, error) {
	return NewSuccessResult(strings.Join(args, " ")), nil
}

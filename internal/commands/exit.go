package commands

import "context"

// ExitCommand ends the session by returning ErrExit.
type ExitCommand struct{}

// NewExitCommand creates the exit command.
func NewExitCommand() *ExitCommand { return &ExitCommand{} }

func (c *ExitCommand) Name() string { return "exit" }

func (c *ExitCommand) Help() string { return "exit - Exit the terminal" }

func (c *ExitCommand) Execute(ctx context.Context, args []string) (Result, error) {
	return NewSuccessResult("Goodbye!"), ErrExit
}

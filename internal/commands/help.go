package commands

import (
	"context"
	"fmt"
	"strings"
)

// HelpCommand shows usage for one command or a summary of all of them.
type HelpCommand struct {
	registry *Registry
}

// NewHelpCommand creates the help command over the given registry.
func NewHelpCommand(registry *Registry) *HelpCommand {
	return &HelpCommand{registry: registry}
}

func (c *HelpCommand) Name() string { return "help" }

func (c *HelpCommand) Help() string { return "help [command] - Show help for commands" }

func (c *HelpCommand) Execute(ctx context.Context, args []string) (Result, error) {
	if len(args) > 0 {
		cmd, ok := c.registry.Get(args[0])
		if !ok {
			return NewErrorResult(fmt.Sprintf("Unknown command: %s", args[0])), nil
		}
		return NewSuccessResult(cmd.Help()), nil
	}

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range c.registry.Names() {
		cmd, _ := c.registry.Get(name)
		desc := cmd.Help()
		if _, after, found := strings.Cut(desc, " - "); found {
			desc = after
		}
		fmt.Fprintf(&b, "  %-8s %s\n", name, desc)
	}
	b.WriteString("\nUse 'help <command>' for detailed help on a specific command.")
	return NewSuccessResult(b.String()), nil
}

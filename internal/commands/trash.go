package commands

import (
	"context"
	"fmt"
	"strings"

	"goterm/internal/executor"
)

// TrashCommand lists the recycle bin contents. Entries are kept forever;
// restoring one is a plain move back out of the bin.
type TrashCommand struct {
	exec *executor.Executor
}

// NewTrashCommand creates the trash command.
func NewTrashCommand(exec *executor.Executor) *TrashCommand {
	return &TrashCommand{exec: exec}
}

func (c *TrashCommand) Name() string { return "trash" }

func (c *TrashCommand) Help() string { return "trash - List recycle bin contents" }

func (c *TrashCommand) Execute(ctx context.Context, args []string) (Result, error) {
	entries, err := c.exec.TrashEntries()
	if err != nil {
		return NewErrorResult(fmt.Sprintf("trash: %v", err)), nil
	}

	if len(entries) == 0 {
		return NewSuccessResult("Recycle bin is empty"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recycle bin (%s):\n", c.exec.RecycleDir())
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		size := "-"
		if info, err := entry.Info(); err == nil && !entry.IsDir() {
			size = formatSize(info.Size())
		}
		fmt.Fprintf(&b, "  %6s  %s\n", size, name)
	}
	return NewSuccessResult(strings.TrimRight(b.String(), "\n")), nil
}

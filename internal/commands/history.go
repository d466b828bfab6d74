package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"goterm/internal/history"
)

const defaultHistoryLimit = 20

// HistoryCommand shows past command lines from the history store.
type HistoryCommand struct {
	store *history.Store
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(store *history.Store) *HistoryCommand {
	return &HistoryCommand{store: store}
}

func (c *HistoryCommand) Name() string { return "history" }

func (c *HistoryCommand) Help() string {
	return "history [n | search term] - Show recent or matching command history"
}

func (c *HistoryCommand) Execute(ctx context.Context, args []string) (Result, error) {
	_, operands := splitFlags(args)

	var entries []history.Entry
	var err error
	switch {
	case len(operands) == 0:
		entries, err = c.store.Recent(ctx, defaultHistoryLimit)
	case len(operands) == 1 && isNumber(operands[0]):
		n, _ := strconv.Atoi(operands[0])
		entries, err = c.store.Recent(ctx, n)
	default:
		entries, err = c.store.Search(ctx, strings.Join(operands, " "), defaultHistoryLimit)
	}
	if err != nil {
		return NewErrorResult(fmt.Sprintf("history: %v", err)), nil
	}

	if len(entries) == 0 {
		return NewSuccessResult("No history entries"), nil
	}

	var b strings.Builder
	for _, e := range entries {
		marker := " "
		if e.IsError {
			marker = "!"
		}
		fmt.Fprintf(&b, "%s %s  %s\n", marker, e.CreatedAt.Format("Jan 02 15:04"), e.Line)
	}
	return NewSuccessResult(strings.TrimRight(b.String(), "\n")), nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

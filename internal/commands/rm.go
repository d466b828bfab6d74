package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"goterm/internal/executor"
)

// RmCommand soft-deletes files and directories into the recycle bin.
// Nothing is destroyed; every removal is reversible by moving the entry
// back out of the bin.
type RmCommand struct {
	exec *executor.Executor

	// Confirm, when set, is asked before a recursive directory removal
	// that was not forced. A nil Confirm proceeds without asking, which
	// is the behavior for non-interactive sessions.
	Confirm func(prompt string) bool
}

// NewRmCommand creates the rm command.
func NewRmCommand(exec *executor.Executor) *RmCommand {
	return &RmCommand{exec: exec}
}

func (c *RmCommand) Name() string { return "rm" }

func (c *RmCommand) Help() string {
	return "rm [-r|--recursive] [-f|--force] [-v|--verbose] file... - Move files to the recycle bin"
}

func (c *RmCommand) Execute(ctx context.Context, args []string) (Result, error) {
	flags, operands := splitFlags(args)
	recursive := anyFlag(flags, "-r", "--recursive", "-rf", "-fr")
	force := anyFlag(flags, "-f", "--force", "-rf", "-fr")
	verbose := anyFlag(flags, "-v", "--verbose")

	if len(operands) == 0 {
		return NewErrorResult("rm: missing operand"), nil
	}

	var b strings.Builder
	ok := true
	for _, name := range operands {
		path, err := c.exec.Resolve(name)
		if err != nil {
			fmt.Fprintf(&b, "%v\n", err)
			ok = false
			continue
		}

		info, err := os.Lstat(path.String())
		if err != nil {
			if !force {
				fmt.Fprintf(&b, "File not found: %s\n", name)
				ok = false
			}
			continue
		}

		if info.IsDir() && !recursive {
			fmt.Fprintf(&b, "Is a directory (use -r for recursive): %s\n", name)
			ok = false
			continue
		}

		if info.IsDir() && recursive && !force && c.Confirm != nil {
			prompt := fmt.Sprintf("Remove directory '%s' and all its contents? (y/N): ", path)
			if !c.Confirm(prompt) {
				b.WriteString("Cancelled\n")
				continue
			}
		}

		entry, err := c.exec.Delete(name)
		if err != nil {
			fmt.Fprintf(&b, "%v\n", err)
			ok = false
			continue
		}

		switch {
		case entry.DryRun:
			fmt.Fprintf(&b, "DRY RUN: would move %s to %s\n", entry.Original, entry.Recycled)
		case verbose:
			fmt.Fprintf(&b, "Removed: %s (recycled as %s)\n", entry.Original, entry.Recycled)
		}
	}

	out := strings.TrimRight(b.String(), "\n")
	if !ok {
		return NewErrorResult(out), nil
	}
	return NewSuccessResult(out), nil
}

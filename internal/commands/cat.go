package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"goterm/internal/executor"
	"goterm/internal/sandbox"
)

// CatCommand prints file contents.
type CatCommand struct {
	exec *executor.Executor
}

// NewCatCommand creates the cat command.
func NewCatCommand(exec *executor.Executor) *CatCommand {
	return &CatCommand{exec: exec}
}

func (c *CatCommand) Name() string { return "cat" }

func (c *CatCommand) Help() string { return "cat file... - Print file contents" }

func (c *CatCommand) Execute(ctx context.Context, args []string) (Result, error) {
	_, operands := splitFlags(args)
	if len(operands) == 0 {
		return NewErrorResult("cat: missing file operand"), nil
	}

	var b strings.Builder
	ok := true
	for _, name := range operands {
		path, err := c.exec.CheckPermission(name, sandbox.KindRead)
		if err != nil {
			fmt.Fprintf(&b, "%v\n", err)
			ok = false
			continue
		}

		info, err := os.Stat(path.String())
		if err != nil {
			fmt.Fprintf(&b, "cat: %s: %v\n", name, err)
			ok = false
			continue
		}
		if info.IsDir() {
			fmt.Fprintf(&b, "cat: %s: is a directory\n", name)
			ok = false
			continue
		}

		data, err := os.ReadFile(path.String())
		if err != nil {
			fmt.Fprintf(&b, "cat: %s: %v\n", name, err)
			ok = false
			continue
		}
		b.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			b.WriteByte('\n')
		}
	}

	out := strings.TrimRight(b.String(), "\n")
	if !ok {
		return NewErrorResult(out), nil
	}
	return NewSuccessResult(out), nil
}

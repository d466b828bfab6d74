package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"goterm/internal/executor"
	"goterm/internal/sandbox"
)

// LsCommand lists directory contents.
type LsCommand struct {
	exec *executor.Executor
}

// NewLsCommand creates the ls command.
func NewLsCommand(exec *executor.Executor) *LsCommand {
	return &LsCommand{exec: exec}
}

func (c *LsCommand) Name() string { return "ls" }

func (c *LsCommand) Help() string {
	return "ls [-a|--all] [-l|--long] [path] - List directory contents"
}

func (c *LsCommand) Execute(ctx context.Context, args []string) (Result, error) {
	flags, operands := splitFlags(args)
	showAll := anyFlag(flags, "-a", "--all", "-la", "-al")
	longFormat := anyFlag(flags, "-l", "--long", "-la", "-al")

	target := "."
	if len(operands) > 0 {
		target = operands[0]
	}

	path, err := c.exec.CheckPermission(target, sandbox.KindRead)
	if err != nil {
		return NewErrorResult(err.Error()), nil
	}

	info, err := os.Stat(path.String())
	if err != nil {
		return NewErrorResult(fmt.Sprintf("ls: %v", err)), nil
	}

	if !info.IsDir() {
		if longFormat {
			return NewSuccessResult(longLine(path.String(), info)), nil
		}
		return NewSuccessResult(displayName(info)), nil
	}

	entries, err := os.ReadDir(path.String())
	if err != nil {
		return NewErrorResult(fmt.Sprintf("ls: %v", err)), nil
	}

	// Directories first, then case-insensitive by name.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	var b strings.Builder
	for _, entry := range entries {
		if !showAll && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			fmt.Fprintf(&b, "?  %s\n", entry.Name())
			continue
		}
		if longFormat {
			b.WriteString(longLine(filepath.Join(path.String(), entry.Name()), fi))
		} else {
			b.WriteString(displayName(fi))
		}
		b.WriteByte('\n')
	}
	return NewSuccessResult(strings.TrimRight(b.String(), "\n")), nil
}

func longLine(path string, info os.FileInfo) string {
	size := "-"
	if !info.IsDir() {
		size = formatSize(info.Size())
	}
	return fmt.Sprintf("%s  %6s  %s  %s",
		info.Mode().String(), size, info.ModTime().Format("Jan 02 15:04"), displayName(info))
}

func displayName(info os.FileInfo) string {
	if info.IsDir() {
		return info.Name() + "/"
	}
	return info.Name()
}

// formatSize renders a byte count with a single-letter unit, dropping the
// fraction when the value is whole.
func formatSize(size int64) string {
	units := []string{"B", "K", "M", "G", "T"}
	v := float64(size)
	for _, unit := range units {
		if v < 1024 {
			if v == float64(int64(v)) {
				return fmt.Sprintf("%d%s", int64(v), unit)
			}
			return fmt.Sprintf("%.1f%s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.1fP", v)
}

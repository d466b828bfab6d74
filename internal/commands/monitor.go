package commands

import (
	"context"
	"fmt"

	"goterm/internal/executor"
	"goterm/internal/monitor"
)

// MonitorCommand prints a system and sandbox health snapshot.
type MonitorCommand struct {
	exec *executor.Executor
}

// NewMonitorCommand creates the monitor command.
func NewMonitorCommand(exec *executor.Executor) *MonitorCommand {
	return &MonitorCommand{exec: exec}
}

func (c *MonitorCommand) Name() string { return "monitor" }

func (c *MonitorCommand) Help() string {
	return "monitor - Show system, disk, and recycle bin statistics"
}

func (c *MonitorCommand) Execute(ctx context.Context, args []string) (Result, error) {
	stats, err := monitor.Snapshot(c.exec.Root(), c.exec.RecycleDir())
	if err != nil {
		return NewErrorResult(fmt.Sprintf("monitor: %v", err)), nil
	}
	return NewSuccessResult(stats.Render()), nil
}

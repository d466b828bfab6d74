package commands

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"goterm/internal/executor"
)

// Registry manages the set of available commands and dispatches invocations.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	exec     *executor.Executor
}

// NewRegistry creates an empty registry bound to the session executor.
// Every dispatched invocation passes the executor's argument gate before the
// command runs.
func NewRegistry(exec *executor.Executor) *Registry {
	return &Registry{
		commands: make(map[string]Command),
		exec:     exec,
	}
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil")
	}
	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	r.commands[name] = cmd
	return nil
}

// MustRegister adds a command and panics on error. Used for built-in
// registration during startup.
func (r *Registry) MustRegister(cmd Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Get retrieves a command by name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Dispatch validates args through the executor's gate and runs the named
// command. An unknown name or a gate rejection yields an error result; the
// gate runs before any command code touches the arguments.
func (r *Registry) Dispatch(ctx context.Context, name string, args []string) (Result, error) {
	cmd, ok := r.Get(name)
	if !ok {
		return NewErrorResult(fmt.Sprintf("Unknown command: %s (try 'help')", name)), nil
	}

	if err := r.exec.ValidateArgs(args); err != nil {
		return NewErrorResult(err.Error()), nil
	}

	return cmd.Execute(ctx, args)
}

// Package commands implements the built-in shell commands. Each command is a
// self-contained unit dispatched by name through a Registry, with all path
// access funneled through the session executor.
package commands

import (
	"context"
	"errors"
	"strings"
)

// ErrExit signals that the session should terminate. It is returned by the
// exit command and handled by the caller, never treated as a failure.
var ErrExit = errors.New("exit requested")

// Command defines the interface that all shell commands implement.
type Command interface {
	// Name returns the unique name the command is invoked by.
	Name() string

	// Help returns a one-line usage summary in "name args - description" form.
	Help() string

	// Execute runs the command with the given arguments.
	Execute(ctx context.Context, args []string) (Result, error)
}

// Result represents the outcome of a command execution.
type Result struct {
	// Output is the text produced for the user.
	Output string `json:"output"`

	// IsError indicates a user-visible failure (bad operand, denied path).
	IsError bool `json:"is_error"`
}

// NewSuccessResult creates a successful result with the given output.
func NewSuccessResult(output string) Result {
	return Result{Output: output}
}

// NewErrorResult creates a failed result with the given message.
func NewErrorResult(msg string) Result {
	return Result{Output: msg, IsError: true}
}

// String returns a printable representation of the result.
func (r Result) String() string {
	if r.IsError {
		return "[error] " + r.Output
	}
	return r.Output
}

// splitFlags separates dash-prefixed flags from positional operands. Flags
// keep their literal spelling so callers can accept both short and long
// forms, the same way the original flag handling worked.
func splitFlags(args []string) (map[string]bool, []string) {
	flags := make(map[string]bool)
	var operands []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && arg != "-" {
			flags[arg] = true
		} else {
			operands = append(operands, arg)
		}
	}
	return flags, operands
}

func anyFlag(flags map[string]bool, names ...string) bool {
	for _, n := range names {
		if flags[n] {
			return true
		}
	}
	return false
}

package sandbox

import (
	"errors"
	"fmt"
)

// Sentinel errors for the sandbox package.
var (
	// ErrSandboxViolation is returned when a path escapes the allowed root.
	ErrSandboxViolation = errors.New("sandbox violation")

	// ErrPermissionDenied is returned when the advisory permission check fails.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDeleteFailed is returned when moving a path into the recycle bin fails.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrArgumentRejected is returned when the argument gate blocks a command
	// under safe mode.
	ErrArgumentRejected = errors.New("argument rejected")
)

// ViolationError reports a path that resolves outside the allowed root.
type ViolationError struct {
	Path string
	Root string
}

// Error implements the error interface.
func (e *ViolationError) Error() string {
	return fmt.Sprintf("access denied: %s is outside allowed root %s", e.Path, e.Root)
}

// Is allows errors.Is to match against ErrSandboxViolation.
func (e *ViolationError) Is(target error) bool {
	return target == ErrSandboxViolation
}

// Unwrap returns the underlying sentinel error.
func (e *ViolationError) Unwrap() error {
	return ErrSandboxViolation
}

// PermissionDeniedError reports a failed advisory permission check.
type PermissionDeniedError struct {
	Path string
	Kind Kind
}

// Error implements the error interface.
func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: %s on %s", e.Kind, e.Path)
}

// Is allows errors.Is to match against ErrPermissionDenied.
func (e *PermissionDeniedError) Is(target error) bool {
	return target == ErrPermissionDenied
}

// Unwrap returns the underlying sentinel error.
func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// DeleteFailedError reports an I/O failure while recycling a path.
type DeleteFailedError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *DeleteFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("delete failed: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("delete failed: %s", e.Path)
}

// Is allows errors.Is to match against ErrDeleteFailed.
func (e *DeleteFailedError) Is(target error) bool {
	return target == ErrDeleteFailed
}

// Unwrap returns the underlying cause or sentinel error.
func (e *DeleteFailedError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrDeleteFailed
}

// ArgumentRejectedError reports an argument blocked by the denylist gate.
type ArgumentRejectedError struct {
	Arg     string
	Pattern string
}

// Error implements the error interface.
func (e *ArgumentRejectedError) Error() string {
	return fmt.Sprintf("argument rejected: %q matches denied pattern %q", e.Arg, e.Pattern)
}

// Is allows errors.Is to match against ErrArgumentRejected.
func (e *ArgumentRejectedError) Is(target error) bool {
	return target == ErrArgumentRejected
}

// Unwrap returns the underlying sentinel error.
func (e *ArgumentRejectedError) Unwrap() error {
	return ErrArgumentRejected
}

// Package executor binds the sandbox layers together into one session-scoped
// facade. Each executor carries its own working directory, so concurrent
// sessions (REPL, gateway connections, scripts) never interfere through
// process-global state.
package executor

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"goterm/internal/config"
	"goterm/internal/sandbox"
)

// Executor runs sandboxed filesystem operations for one session.
type Executor struct {
	sandbox  *sandbox.Sandbox
	recycler *sandbox.Recycler
	gate     *sandbox.Gate

	mu  sync.Mutex
	cwd string

	dryRun atomic.Bool
}

// New creates an executor from the sandbox configuration. The working
// directory starts at the allowed root.
func New(cfg config.SandboxConfig) (*Executor, error) {
	sb, err := sandbox.New(cfg.AllowedRoot, cfg.RecycleBin)
	if err != nil {
		return nil, fmt.Errorf("init sandbox: %w", err)
	}

	e := &Executor{
		sandbox:  sb,
		recycler: sandbox.NewRecycler(sb),
		gate:     sandbox.NewGate(cfg.SafeMode),
		cwd:      sb.Root(),
	}
	e.dryRun.Store(cfg.DryRun)
	return e, nil
}

// Root returns the sandbox allowed root.
func (e *Executor) Root() string { return e.sandbox.Root() }

// RecycleDir returns the recycle bin directory.
func (e *Executor) RecycleDir() string { return e.sandbox.RecycleDir() }

// SafeMode reports whether the argument gate blocks denylisted arguments.
func (e *Executor) SafeMode() bool { return e.gate.SafeMode() }

// DryRun reports whether mutations are currently simulated.
func (e *Executor) DryRun() bool { return e.dryRun.Load() }

// SetDryRun toggles dry run mode for subsequent operations. Operations
// already in flight keep the mode they started with.
func (e *Executor) SetDryRun(v bool) { e.dryRun.Store(v) }

// Cwd returns the session working directory.
func (e *Executor) Cwd() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cwd
}

// Resolve turns a raw path into a canonical path inside the allowed root,
// relative paths resolving against the session working directory.
func (e *Executor) Resolve(raw string) (sandbox.ResolvedPath, error) {
	return e.sandbox.Resolve(e.Cwd(), raw)
}

// CheckPermission resolves raw and verifies the requested access, returning
// a PermissionDeniedError when the advisory check fails.
func (e *Executor) CheckPermission(raw string, kind sandbox.Kind) (sandbox.ResolvedPath, error) {
	path, err := e.Resolve(raw)
	if err != nil {
		return "", err
	}
	if !e.sandbox.CheckPermission(path, kind) {
		return "", &sandbox.PermissionDeniedError{Path: path.String(), Kind: kind}
	}
	return path, nil
}

// ChangeDir moves the session working directory. The target must resolve
// inside the root, exist, be a directory, and be readable.
func (e *Executor) ChangeDir(raw string) error {
	path, err := e.Resolve(raw)
	if err != nil {
		return err
	}

	info, err := os.Stat(path.String())
	if err != nil {
		return fmt.Errorf("cd: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cd: %s is not a directory", path)
	}
	if !e.sandbox.CheckPermission(path, sandbox.KindRead) {
		return &sandbox.PermissionDeniedError{Path: path.String(), Kind: sandbox.KindRead}
	}

	e.mu.Lock()
	e.cwd = path.String()
	e.mu.Unlock()
	return nil
}

// Delete soft-deletes raw into the recycle bin. The dry run mode is read
// once at the start so a concurrent toggle cannot split the operation.
func (e *Executor) Delete(raw string) (sandbox.RecycleEntry, error) {
	dry := e.dryRun.Load()

	path, err := e.Resolve(raw)
	if err != nil {
		return sandbox.RecycleEntry{}, err
	}
	if !e.sandbox.CheckPermission(path, sandbox.KindDelete) {
		return sandbox.RecycleEntry{}, &sandbox.PermissionDeniedError{Path: path.String(), Kind: sandbox.KindDelete}
	}
	return e.recycler.Delete(path, dry)
}

// ValidateArgs runs the denylist gate over raw command arguments.
func (e *Executor) ValidateArgs(args []string) error {
	return e.gate.Validate(args)
}

// TrashEntries lists the current recycle bin contents.
func (e *Executor) TrashEntries() ([]os.DirEntry, error) {
	return e.recycler.Entries()
}

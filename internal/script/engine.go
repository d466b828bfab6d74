// Package script runs user JavaScript inside the sandbox. Scripts get a
// small `term` host API whose filesystem calls all route through the
// session executor, so a script can never reach outside the allowed root
// and deletions stay reversible.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dop251/goja"

	"goterm/internal/executor"
	"goterm/internal/sandbox"
	"goterm/pkg/logger"
)

// Engine executes scripts with a per-run timeout and write size cap.
type Engine struct {
	exec     *executor.Executor
	timeout  time.Duration
	maxWrite int64
}

// NewEngine creates a script engine over the session executor.
func NewEngine(exec *executor.Executor, timeout time.Duration, maxWrite int64) *Engine {
	return &Engine{exec: exec, timeout: timeout, maxWrite: maxWrite}
}

// Run loads and executes the script at scriptPath, returning everything the
// script printed through console.log. Execution is interrupted when the
// timeout elapses or ctx is cancelled.
func (e *Engine) Run(ctx context.Context, scriptPath string) (string, error) {
	path, err := e.exec.CheckPermission(scriptPath, sandbox.KindRead)
	if err != nil {
		return "", err
	}

	src, err := os.ReadFile(path.String())
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}

	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	var out strings.Builder
	if err := e.register(vm, &out); err != nil {
		return "", fmt.Errorf("setup script api: %w", err)
	}

	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-execCtx.Done():
			vm.Interrupt("execution interrupted: " + execCtx.Err().Error())
		case <-done:
		}
	}()

	start := time.Now()
	_, err = vm.RunScript(filepath.Base(path.String()), string(src))
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return out.String(), fmt.Errorf("script interrupted after %s: %w", e.timeout, execCtx.Err())
		}
		return out.String(), fmt.Errorf("script error: %w", err)
	}

	logger.Debug().Str("script", path.String()).Dur("elapsed", time.Since(start)).Msg("script finished")
	return out.String(), nil
}

// register installs console.log and the term host API on the VM.
func (e *Engine) register(vm *goja.Runtime, out *strings.Builder) error {
	console := vm.NewObject()
	logFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		out.WriteString(strings.Join(parts, " "))
		out.WriteByte('\n')
		return goja.Undefined()
	}
	if err := console.Set("log", logFn); err != nil {
		return err
	}
	if err := vm.Set("console", console); err != nil {
		return err
	}

	term := vm.NewObject()
	if err := term.Set("cwd", func(goja.FunctionCall) goja.Value {
		return vm.ToValue(e.exec.Cwd())
	}); err != nil {
		return err
	}
	if err := term.Set("fs", e.fsObject(vm)); err != nil {
		return err
	}
	return vm.Set("term", term)
}

// fsObject builds the term.fs API. Every call resolves its path through the
// executor, so sandbox and permission rules apply identically to scripts
// and interactive commands.
func (e *Engine) fsObject(vm *goja.Runtime) *goja.Object {
	fsObj := vm.NewObject()

	_ = fsObj.Set("read", func(call goja.FunctionCall) goja.Value {
		path := e.argPath(vm, call, sandbox.KindRead)
		content, err := os.ReadFile(path.String())
		if err != nil {
			if os.IsNotExist(err) {
				return goja.Null()
			}
			panic(vm.NewTypeError(fmt.Sprintf("read failed: %v", err)))
		}
		return vm.ToValue(string(content))
	})

	_ = fsObj.Set("write", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(vm.NewTypeError("path and content are required"))
		}
		path := e.argPath(vm, call, sandbox.KindWrite)
		content := call.Arguments[1].String()

		if e.maxWrite > 0 && int64(len(content)) > e.maxWrite {
			panic(vm.NewTypeError(fmt.Sprintf("content exceeds max size of %d bytes", e.maxWrite)))
		}
		if e.exec.DryRun() {
			logger.Info().Str("path", path.String()).Msg("dry run: script write skipped")
			return goja.Undefined()
		}
		if err := os.WriteFile(path.String(), []byte(content), 0644); err != nil {
			panic(vm.NewTypeError(fmt.Sprintf("write failed: %v", err)))
		}
		return goja.Undefined()
	})

	_ = fsObj.Set("exists", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("path is required"))
		}
		path, err := e.exec.Resolve(call.Arguments[0].String())
		if err != nil {
			return vm.ToValue(false)
		}
		_, err = os.Lstat(path.String())
		return vm.ToValue(err == nil)
	})

	_ = fsObj.Set("list", func(call goja.FunctionCall) goja.Value {
		path := e.argPath(vm, call, sandbox.KindRead)
		entries, err := os.ReadDir(path.String())
		if err != nil {
			panic(vm.NewTypeError(fmt.Sprintf("list failed: %v", err)))
		}
		names := make([]string, len(entries))
		for i, entry := range entries {
			names[i] = entry.Name()
		}
		return vm.ToValue(names)
	})

	_ = fsObj.Set("remove", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("path is required"))
		}
		entry, err := e.exec.Delete(call.Arguments[0].String())
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		return vm.ToValue(entry.Recycled)
	})

	return fsObj
}

func (e *Engine) argPath(vm *goja.Runtime, call goja.FunctionCall, kind sandbox.Kind) sandbox.ResolvedPath {
	if len(call.Arguments) < 1 {
		panic(vm.NewTypeError("path is required"))
	}
	path, err := e.exec.CheckPermission(call.Arguments[0].String(), kind)
	if err != nil {
		panic(vm.NewTypeError(err.Error()))
	}
	return path
}

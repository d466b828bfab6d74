package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/term"
	"mvdan.cc/sh/v3/shell"

	"goterm/internal/commands"
	"goterm/internal/config"
	"goterm/internal/history"
	"goterm/pkg/logger"
)

// aliases maps shorthand command names to their expansions.
var aliases = map[string][]string{
	"ll":   {"ls", "-l"},
	"la":   {"ls", "-a"},
	"quit": {"exit"},
}

// expandAlias rewrites the leading field through the alias table, keeping
// any further arguments.
func expandAlias(fields []string) []string {
	if expansion, ok := aliases[fields[0]]; ok {
		return append(append([]string{}, expansion...), fields[1:]...)
	}
	return fields
}

// runRepl starts the interactive shell on stdin/stdout.
func runRepl(ctx context.Context) error {
	cfg := config.GetConfig()
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	exec, registry, err := app.NewSession()
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)

	if interactive {
		confirm := func(prompt string) bool {
			fmt.Print(prompt)
			if !scanner.Scan() {
				return false
			}
			answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
			return answer == "y" || answer == "yes"
		}
		wireConfirmations(registry, confirm)

		fmt.Printf("goterm - sandboxed to %s (type 'help' for commands)\n", exec.Root())
		if exec.DryRun() {
			fmt.Println("dry run mode: mutations are simulated")
		}
	}

	for {
		if interactive {
			fmt.Print(prompt(exec.Root(), exec.Cwd(), exec.DryRun()))
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields, err := shell.Fields(line, nil)
		if err != nil || len(fields) == 0 {
			fmt.Println("could not parse command line")
			continue
		}
		fields = expandAlias(fields)

		res, err := registry.Dispatch(ctx, fields[0], fields[1:])
		exited := errors.Is(err, commands.ErrExit)
		if err != nil && !exited {
			res = commands.NewErrorResult(err.Error())
		}

		if app.History() != nil {
			hErr := app.History().Append(ctx, history.Entry{
				SessionID: sessionID,
				Line:      line,
				IsError:   res.IsError,
			})
			if hErr != nil {
				logger.Warn().Err(hErr).Msg("history append failed")
			}
		}

		if res.Output != "" {
			fmt.Println(res.String())
		}
		if exited {
			break
		}
	}

	return scanner.Err()
}

// wireConfirmations attaches the interactive prompt to the commands that
// ask before acting.
func wireConfirmations(registry *commands.Registry, confirm func(string) bool) {
	if cmd, ok := registry.Get("rm"); ok {
		if rm, ok := cmd.(*commands.RmCommand); ok {
			rm.Confirm = confirm
		}
	}
	for _, name := range []string{"ai", "ask", "do"} {
		if cmd, ok := registry.Get(name); ok {
			if ai, ok := cmd.(*commands.AiCommand); ok {
				ai.Confirm = confirm
			}
		}
	}
}

// prompt renders the shell prompt with the cwd relative to the root.
func prompt(root, cwd string, dryRun bool) string {
	rel, err := filepath.Rel(root, cwd)
	if err != nil || rel == "." {
		rel = "~"
	} else {
		rel = "~/" + filepath.ToSlash(rel)
	}
	if dryRun {
		return fmt.Sprintf("goterm:%s (dry-run)$ ", rel)
	}
	return fmt.Sprintf("goterm:%s$ ", rel)
}

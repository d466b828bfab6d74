package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/shell"

	"goterm/internal/config"
	"goterm/internal/history"
)

// NewExecCmd creates the exec command, which runs a single command line
// non-interactively.
func NewExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command line>",
		Short: "Run one command and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(config.GetConfig())
			if err != nil {
				return err
			}
			defer app.Close()

			_, registry, err := app.NewSession()
			if err != nil {
				return err
			}

			line := strings.Join(args, " ")
			fields, err := shell.Fields(line, nil)
			if err != nil || len(fields) == 0 {
				return fmt.Errorf("could not parse command line: %q", line)
			}
			fields = expandAlias(fields)

			res, err := registry.Dispatch(cmd.Context(), fields[0], fields[1:])
			if err != nil {
				return err
			}

			if app.History() != nil {
				app.History().Append(cmd.Context(), history.Entry{
					SessionID: uuid.NewString(),
					Line:      line,
					IsError:   res.IsError,
				})
			}

			if res.Output != "" {
				fmt.Println(res.Output)
			}
			if res.IsError {
				return fmt.Errorf("command failed")
			}
			return nil
		},
	}
}

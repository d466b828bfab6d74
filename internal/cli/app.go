package cli

import (
	"fmt"

	"goterm/internal/commands"
	"goterm/internal/config"
	"goterm/internal/executor"
	"goterm/internal/history"
	"goterm/internal/script"
	"goterm/internal/translate"
	"goterm/pkg/logger"
)

// App holds the shared process-wide pieces: configuration, the history
// store, and its retention job. Sessions (REPL, exec, gateway clients) are
// created from it on demand.
type App struct {
	cfg       *config.Config
	hist      *history.Store
	retention *history.Retention
}

// NewApp wires up shared state from the loaded configuration.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	if cfg.History.Enabled {
		path := cfg.History.Path
		if path == "" {
			var err error
			path, err = config.DefaultHistoryPath()
			if err != nil {
				return nil, err
			}
		}

		store, err := history.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		a.hist = store

		a.retention = history.NewRetention(store, cfg.History.GetRetention())
		if err := a.retention.Start(); err != nil {
			logger.Warn().Err(err).Msg("history retention disabled")
			a.retention = nil
		}
	}

	return a, nil
}

// History returns the shared history store, nil when disabled.
func (a *App) History() *history.Store { return a.hist }

// Config returns the loaded configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Close releases shared resources.
func (a *App) Close() error {
	if a.retention != nil {
		a.retention.Stop()
	}
	if a.hist != nil {
		return a.hist.Close()
	}
	return nil
}

// NewSession creates an isolated executor with a fully populated command
// registry. Every caller gets its own working directory and dry run state.
func (a *App) NewSession() (*executor.Executor, *commands.Registry, error) {
	exec, err := executor.New(a.cfg.Sandbox)
	if err != nil {
		return nil, nil, err
	}

	registry := commands.NewRegistry(exec)
	registry.MustRegister(commands.NewPwdCommand(exec))
	registry.MustRegister(commands.NewLsCommand(exec))
	registry.MustRegister(commands.NewCdCommand(exec))
	registry.MustRegister(commands.NewMkdirCommand(exec))
	registry.MustRegister(commands.NewRmCommand(exec))
	registry.MustRegister(commands.NewTouchCommand(exec))
	registry.MustRegister(commands.NewCatCommand(exec))
	registry.MustRegister(commands.NewEchoCommand())
	registry.MustRegister(commands.NewWriteCommand(exec, a.cfg.Script.MaxWriteSize))
	registry.MustRegister(commands.NewTrashCommand(exec))
	registry.MustRegister(commands.NewMonitorCommand(exec))
	registry.MustRegister(commands.NewHelpCommand(registry))
	registry.MustRegister(commands.NewExitCommand())

	if a.hist != nil {
		registry.MustRegister(commands.NewHistoryCommand(a.hist))
	}

	if a.cfg.Script.Enabled {
		engine := script.NewEngine(exec, a.cfg.Script.GetTimeout(), a.cfg.Script.MaxWriteSize)
		registry.MustRegister(commands.NewRunCommand(engine))
	}

	if a.cfg.AI.Enabled {
		tr := translate.NewRuleTranslator()
		for _, name := range []string{"ai", "ask", "do"} {
			registry.MustRegister(commands.NewAiCommand(name, tr, registry, a.cfg.AI.ConfirmationRequired))
		}
	}

	return exec, registry, nil
}

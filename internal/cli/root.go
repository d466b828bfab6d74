// Package cli implements the goterm command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"goterm/internal/config"
	"goterm/pkg/logger"
)

// GlobalFlags are the flags shared by every subcommand.
type GlobalFlags struct {
	ConfigPath string
	Root       string
	Verbose    bool
	Quiet      bool
	DryRun     bool
	Unsafe     bool
}

var globalFlags GlobalFlags

// NewRootCmd creates the root command. Running goterm with no subcommand
// starts the interactive shell.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "goterm",
		Short: "goterm - a sandboxed terminal with reversible deletes",
		Long: `goterm is a restricted shell confined to a single allowed root
directory. Deletions move files into a recycle bin instead of destroying
them, and every path argument is resolved and checked before use.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "init" {
				return nil
			}
			return setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.Root, "root", "r", "", "override the allowed root directory")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "quiet mode")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.DryRun, "dry-run", false, "simulate mutations without touching the filesystem")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Unsafe, "unsafe", false, "log dangerous-looking arguments instead of blocking them")

	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewExecCmd())
	rootCmd.AddCommand(NewServeCmd())

	return rootCmd
}

// setup loads configuration, applies flag overrides, and initializes the
// logger.
func setup() error {
	configPath := globalFlags.ConfigPath
	if configPath == "" {
		var err error
		configPath, err = config.DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if globalFlags.Root != "" {
		cfg.Sandbox.AllowedRoot = globalFlags.Root
	}
	if globalFlags.DryRun {
		cfg.Sandbox.DryRun = true
	}
	if globalFlags.Unsafe {
		cfg.Sandbox.SafeMode = false
	}

	logLevel := cfg.Log.Level
	if globalFlags.Verbose {
		logLevel = "debug"
	}
	if globalFlags.Quiet {
		logLevel = "error"
	}

	return logger.Init(logger.LogConfig{
		Level:  logLevel,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
}

// Execute runs the CLI.
func Execute() error {
	defer logger.Close()
	return NewRootCmd().Execute()
}

package config

import (
	"github.com/spf13/viper"
)

// SetDefaults registers default values for all configuration keys.
func SetDefaults() {
	viper.SetDefault("version", SchemaVersion)

	// Sandbox
	viper.SetDefault("sandbox.allowed_root", ".")
	viper.SetDefault("sandbox.recycle_bin", ".recycle_bin")
	viper.SetDefault("sandbox.safe_mode", true)
	viper.SetDefault("sandbox.dry_run", false)

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.file", "")

	// History
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", "")
	viper.SetDefault("history.retention", "720h")

	// Gateway
	viper.SetDefault("gateway.enabled", false)
	viper.SetDefault("gateway.host", "127.0.0.1")
	viper.SetDefault("gateway.port", 8080)

	// Script engine
	viper.SetDefault("script.enabled", true)
	viper.SetDefault("script.timeout", "30s")
	viper.SetDefault("script.max_write_size", int64(10*1024*1024))

	// Natural-language translation
	viper.SetDefault("ai.enabled", true)
	viper.SetDefault("ai.confirmation_required", true)
}

// DefaultConfig returns a fully populated configuration with default values,
// used by `goterm init` to write the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Version: SchemaVersion,
		Sandbox: SandboxConfig{
			AllowedRoot: ".",
			RecycleBin:  ".recycle_bin",
			SafeMode:    true,
			DryRun:      false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		History: HistoryConfig{
			Enabled:   true,
			Retention: "720h",
		},
		Gateway: GatewayConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    8080,
		},
		Script: ScriptConfig{
			Enabled:      true,
			Timeout:      "30s",
			MaxWriteSize: 10 * 1024 * 1024,
		},
		AI: TranslateConfig{
			Enabled:              true,
			ConfirmationRequired: true,
		},
	}
}

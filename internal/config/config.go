// Package config provides configuration loading and persistence for goterm.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the configuration schema version written by `goterm init`.
// Loaded files with a higher major version are rejected.
const SchemaVersion = "1.0.0"

// Config is the root configuration structure.
type Config struct {
	Version string          `mapstructure:"version" yaml:"version"`
	Sandbox SandboxConfig   `mapstructure:"sandbox" yaml:"sandbox"`
	Log     LogConfig       `mapstructure:"log" yaml:"log"`
	History HistoryConfig   `mapstructure:"history" yaml:"history"`
	Gateway GatewayConfig   `mapstructure:"gateway" yaml:"gateway"`
	Script  ScriptConfig    `mapstructure:"script" yaml:"script"`
	AI      TranslateConfig `mapstructure:"ai" yaml:"ai"`
}

// SandboxConfig holds the filesystem confinement settings. AllowedRoot is
// the single directory the shell may operate in; everything else is derived
// from or subordinate to it.
type SandboxConfig struct {
	AllowedRoot string `mapstructure:"allowed_root" yaml:"allowed_root"`
	RecycleBin  string `mapstructure:"recycle_bin" yaml:"recycle_bin"`
	SafeMode    bool   `mapstructure:"safe_mode" yaml:"safe_mode"`
	DryRun      bool   `mapstructure:"dry_run" yaml:"dry_run"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// HistoryConfig holds command history settings.
type HistoryConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Path      string `mapstructure:"path" yaml:"path"`
	Retention string `mapstructure:"retention" yaml:"retention"` // e.g. "720h", empty disables pruning
}

// GetRetention parses the Retention field, defaulting to 30 days.
func (c *HistoryConfig) GetRetention() time.Duration {
	if c.Retention == "" {
		return 30 * 24 * time.Hour
	}
	d, err := time.ParseDuration(c.Retention)
	if err != nil {
		return 30 * 24 * time.Hour
	}
	return d
}

// GatewayConfig holds the HTTP gateway settings.
type GatewayConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Host    string `mapstructure:"host" yaml:"host"`
	Port    int    `mapstructure:"port" yaml:"port"`
}

// Addr returns the host:port listen address.
func (c *GatewayConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ScriptConfig holds the embedded JS engine settings.
type ScriptConfig struct {
	Enabled      bool   `mapstructure:"enabled" yaml:"enabled"`
	Timeout      string `mapstructure:"timeout" yaml:"timeout"`
	MaxWriteSize int64  `mapstructure:"max_write_size" yaml:"max_write_size"`
}

// GetTimeout parses the Timeout field, defaulting to 30 seconds.
func (c *ScriptConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// TranslateConfig holds settings for the natural-language command translator.
type TranslateConfig struct {
	Enabled              bool `mapstructure:"enabled" yaml:"enabled"`
	ConfirmationRequired bool `mapstructure:"confirmation_required" yaml:"confirmation_required"`
}

var (
	globalConfig *Config
	configPath   string
	mu           sync.RWMutex
)

// Load loads configuration with precedence ENV > file > defaults.
func Load(path string) (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	SetDefaults()

	viper.SetEnvPrefix("GOTERM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		expandedPath, err := ExpandPath(path)
		if err != nil {
			return nil, err
		}
		configPath = expandedPath

		viper.SetConfigFile(expandedPath)
		if err := viper.ReadInConfig(); err != nil {
			// A missing file falls back to defaults; a broken one does not.
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, err
			}
			var pathErr *os.PathError
			if !errors.As(err, &pathErr) && !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := checkSchemaVersion(cfg.Version); err != nil {
		return nil, err
	}

	globalConfig = &cfg
	return &cfg, nil
}

// checkSchemaVersion rejects config files written by an incompatible (newer
// major) schema. An empty version is treated as current.
func checkSchemaVersion(version string) error {
	if version == "" {
		return nil
	}
	have, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid config version %q: %w", version, err)
	}
	want := semver.MustParse(SchemaVersion)
	if have.Major() > want.Major() {
		return fmt.Errorf("config schema version %s is newer than supported %s", version, SchemaVersion)
	}
	return nil
}

// GetConfig returns the currently loaded configuration.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return globalConfig
}

// Save persists the current configuration to the loaded config path.
func Save() error {
	mu.Lock()
	defer mu.Unlock()

	if configPath == "" {
		return errors.New("config path not set")
	}
	if globalConfig == nil {
		return errors.New("config not loaded")
	}
	return SaveTo(globalConfig, configPath)
}

// SaveTo serializes a configuration to YAML at the given path.
func SaveTo(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Reset clears loaded state. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	configPath = ""
	viper.Reset()
}

// stateDirName is the per-user directory holding the config file, the
// history database, and log output.
const stateDirName = ".goterm"

// DefaultConfigDir returns the per-user state directory (~/.goterm).
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, stateDirName), nil
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() (string, error) { return stateFile("config.yaml") }

// DefaultHistoryPath returns the default history database location.
func DefaultHistoryPath() (string, error) { return stateFile("history.db") }

func stateFile(name string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ExpandPath expands a leading ~ to the user home directory.
func ExpandPath(path string) (string, error) {
	switch {
	case path == "~":
		return os.UserHomeDir()
	case strings.HasPrefix(path, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	default:
		return path, nil
	}
}

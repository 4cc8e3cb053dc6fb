// SPDX-License-Identifier: MPL-2.0

// Package config loads the tool-level configuration (as opposed to the
// per-project descriptor owned by internal/project). The configuration
// root is materialized by an explicit Init call in the root command and
// threaded as a value; there is no lazily-created global state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"modkit/internal/resolve"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for config and cache paths.
	AppName = "modkit"
	// ConfigFileName is the name of the config file.
	ConfigFileName = "config.toml"
)

// Config is the tool-level configuration.
type Config struct {
	// JavaCmd is the JVM executable used to launch the platform. The
	// MODKIT_JAVA environment variable overrides it.
	JavaCmd string `mapstructure:"java_cmd" toml:"java_cmd"`
	// Repositories are the dependency repository base URLs, in lookup
	// order.
	Repositories []string `mapstructure:"repositories" toml:"repositories"`
	// CacheDir is the local artifact cache root. Empty means the
	// platform user cache directory.
	CacheDir string `mapstructure:"cache_dir" toml:"cache_dir,omitempty"`
	// RunTimeoutSeconds bounds a `run` subprocess; 0 means unbounded.
	RunTimeoutSeconds int `mapstructure:"run_timeout_seconds" toml:"run_timeout_seconds"`
	// Verbose enables debug logging when not already set by flag.
	Verbose bool `mapstructure:"verbose" toml:"verbose"`
}

// RunTimeout returns the configured run timeout as a duration.
func (c *Config) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutSeconds) * time.Second
}

// DefaultConfig returns the configuration used when no config file
// exists yet.
func DefaultConfig() *Config {
	return &Config{
		JavaCmd:      "java",
		Repositories: resolve.DefaultRepositories(),
	}
}

// Root is the materialized configuration root, produced once by Init
// and passed explicitly to everything that needs it.
type Root struct {
	// Dir is the configuration directory.
	Dir string
	// ConfigFile is the resolved config file path.
	ConfigFile string
	// Config is the effective configuration.
	Config *Config
}

// EffectiveCacheDir returns the artifact cache root, falling back to
// the platform user cache directory.
func (r Root) EffectiveCacheDir() (string, error) {
	if r.Config.CacheDir != "" {
		return r.Config.CacheDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user cache directory: %w", err)
	}
	return filepath.Join(base, AppName, "repo"), nil
}

// ConfigDir returns the modkit configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Init materializes the configuration root exactly once per process:
// it creates the config directory if missing, writes a default
// config.toml on first run, and loads the effective configuration.
// A non-empty overrideFile bypasses the default location entirely and
// must already exist.
func Init(overrideFile string) (Root, error) {
	var cfgFile, cfgDir string

	if overrideFile != "" {
		if _, err := os.Stat(overrideFile); err != nil {
			return Root{}, fmt.Errorf("config file not found: %s: %w", overrideFile, err)
		}
		cfgFile = overrideFile
		cfgDir = filepath.Dir(overrideFile)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return Root{}, err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Root{}, fmt.Errorf("failed to create config directory: %w", err)
		}
		cfgDir = dir
		cfgFile = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			if writeErr := writeDefaultConfig(cfgFile); writeErr != nil {
				return Root{}, writeErr
			}
		}
	}

	cfg, err := load(cfgFile)
	if err != nil {
		return Root{}, err
	}

	return Root{Dir: cfgDir, ConfigFile: cfgFile, Config: cfg}, nil
}

// load reads the config file into a Config on top of the defaults.
func load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("java_cmd", defaults.JavaCmd)
	v.SetDefault("repositories", defaults.Repositories)
	v.SetDefault("cache_dir", defaults.CacheDir)
	v.SetDefault("run_timeout_seconds", defaults.RunTimeoutSeconds)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// writeDefaultConfig writes the default configuration to path.
func writeDefaultConfig(path string) error {
	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}
	header := "# modkit configuration file\n# See https://github.com/modkit/modkit for documentation.\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

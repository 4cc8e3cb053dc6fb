// SPDX-License-Identifier: MPL-2.0

// Package project loads the project descriptor (project.toml) and
// derives every canonical build location from it. The descriptor is
// read-only input: the build pipeline never writes it back.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"modkit/internal/resolve"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DescriptorFileName is the project descriptor file name.
const DescriptorFileName = "project.toml"

// ErrInvalidConfig is the sentinel wrapped by all configuration
// validation failures, detectable with errors.Is.
var ErrInvalidConfig = errors.New("invalid project configuration")

// Config is the project configuration for one module. All fields are
// populated from project.toml at load time and treated as immutable
// afterwards.
type Config struct {
	// Owner, Name, and Version form the module identity. All three are
	// required and the triple must be unique per build root.
	Owner   string `toml:"owner"`
	Name    string `toml:"name"`
	Version string `toml:"version"`

	// Main is the module entry point recorded in the descriptor.
	Main string `toml:"main"`
	// Description, Homepage, and Licenses are descriptor metadata.
	Description string   `toml:"description,omitempty"`
	Homepage    string   `toml:"homepage,omitempty"`
	Licenses    []string `toml:"licenses,omitempty"`
	// Extra holds pass-through descriptor keys beyond the enumerated
	// schema (e.g. "worker", "auto-redeploy").
	Extra map[string]any `toml:"extra,omitempty"`

	// SourcePaths and ResourcePaths are trees copied into the staging
	// directory, relativized against each root. Missing roots are
	// skipped.
	SourcePaths   []string `toml:"source_paths,omitempty"`
	ResourcePaths []string `toml:"resource_paths,omitempty"`

	// CompileOutput is where the external compiler is directed to put
	// class files before staging. Defaults to build/classes.
	CompileOutput string `toml:"compile_output,omitempty"`
	// TargetPath is the root for packaged output. Defaults to target.
	TargetPath string `toml:"target_path,omitempty"`

	// Dependencies are the module's declared library dependencies.
	Dependencies []resolve.Coordinate `toml:"dependencies,omitempty"`

	// Root is the absolute directory containing project.toml. Set by
	// Load; not part of the descriptor.
	Root string `toml:"-"`
}

// Load reads and validates the project descriptor in dir. A .env file
// beside the descriptor is loaded into the process environment first
// (missing .env is not an error), so MODKIT_JAVA and friends can be
// project-scoped.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	if err := godotenv.Load(filepath.Join(absDir, ".env")); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	path := filepath.Join(absDir, DescriptorFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Root = absDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.CompileOutput == "" {
		c.CompileOutput = filepath.Join("build", "classes")
	}
	if c.TargetPath == "" {
		c.TargetPath = "target"
	}
}

// Validate checks the configuration invariants that must hold before
// any I/O happens.
func (c *Config) Validate() error {
	if _, err := c.Identity(); err != nil {
		return err
	}
	for _, dep := range c.Dependencies {
		if err := dep.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Identity returns the module identity string owner~name~version.
func (c *Config) Identity() (string, error) {
	return Identity(c.Owner, c.Name, c.Version)
}

// Identity builds the identity string for an explicit triple. All
// three parts must be non-empty.
func Identity(owner, name, version string) (string, error) {
	if owner == "" || name == "" || version == "" {
		return "", fmt.Errorf("%w: owner, name, and version must all be set (got %q, %q, %q)",
			ErrInvalidConfig, owner, name, version)
	}
	return owner + "~" + name + "~" + version, nil
}

// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for modkit.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"modkit/internal/config"
	"modkit/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// projectDir is the directory holding project.toml
	projectDir string

	// cfgRoot is the configuration root, materialized once in
	// initRoot and threaded to every command that needs it.
	cfgRoot config.Root

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "modkit",
		Short: "Build, package, and run platform modules",
		Long: TitleStyle.Render("modkit") + SubtitleStyle.Render(" - module build and packaging tool") + `

modkit stages a project's compiled output, resources, and library
dependencies into a runnable module directory, packages it as a
distributable zip bundle, and can launch the runtime platform
directly against the staged build tree.

Projects are described by a project.toml next to the sources.

` + SubtitleStyle.Render("Typical flow:") + `
  1. modkit build       Stage the module under build/mods/
  2. modkit package     Write mod.json and the zip bundle
  3. modkit run         Launch the platform against the staged module`,
		PersistentPreRunE: initRoot,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config dir)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", ".", "project directory containing project.toml")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(pulldepsCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRoot materializes the configuration root exactly once per
// process and configures logging. Every command receives the root
// through cfgRoot rather than loading configuration on demand. A
// broken config file is surfaced as a warning and the defaults apply.
func initRoot(_ *cobra.Command, _ []string) error {
	root, err := config.Init(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		root = config.Root{Config: config.DefaultConfig()}
	}
	cfgRoot = root

	if !verbose {
		verbose = root.Config.Verbose
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	return nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

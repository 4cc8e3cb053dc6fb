// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// pulldepsCmd resolves dependencies into the shared deps directory.
var pulldepsCmd = &cobra.Command{
	Use:   "pulldeps",
	Short: "Resolve dependencies into build/mods/deps/",
	Long: `Resolve the project's declared dependencies and copy the jars into
the shared build/mods/deps/ directory.

This is a standalone workflow for inspecting or vendoring a project's
resolved classpath; 'modkit build' copies dependencies into the
module's own lib/ directory instead.

Examples:
  modkit pulldeps
  modkit pulldeps -C ./services/worker`,
	Args: cobra.NoArgs,
	RunE: runPulldeps,
}

func runPulldeps(cmd *cobra.Command, _ []string) error {
	fmt.Println(TitleStyle.Render("Pull Dependencies"))

	cfg, err := loadProject()
	if err != nil {
		return err
	}

	if len(cfg.Dependencies) == 0 {
		fmt.Printf("%s No dependencies declared in %s\n", warningIcon, "project.toml")
		return nil
	}

	builder, err := newBuilder(cfg)
	if err != nil {
		return err
	}

	jars, err := builder.Resolver.Resolve(cmd.Context(), cfg.Dependencies)
	if err != nil {
		return fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	destDir := cfg.DepsCacheDir()
	if err := builder.CopyDependencies(destDir, jars); err != nil {
		return fmt.Errorf("failed to copy dependencies: %w", err)
	}

	fmt.Printf("%s Pulled %d dependency jar(s)\n", successIcon, len(jars))
	fmt.Println()
	fmt.Printf("%s Directory: %s\n", infoIcon, PathStyle.Render(destDir))

	return nil
}

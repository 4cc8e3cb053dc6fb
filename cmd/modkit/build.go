// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// buildCmd stages the module under build/mods/.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Stage the module under build/mods/",
	Long: `Stage the module: compile sources, copy source and resource trees,
and copy resolved dependency jars into the module's lib/ directory.

The staging directory is build/mods/<owner>~<name>~<version>/. Staging
reuses an existing directory and overwrites files in place; it never
deletes files left over from a previous build. Use 'modkit clean' to
start from an empty tree.

Examples:
  modkit build
  modkit build -C ./services/worker`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, _ []string) error {
	fmt.Println(TitleStyle.Render("Build Module"))

	cfg, err := loadProject()
	if err != nil {
		return err
	}

	builder, err := newBuilder(cfg)
	if err != nil {
		return err
	}

	jars, err := builder.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to stage module: %w", err)
	}

	staging, err := cfg.StagingDir()
	if err != nil {
		return err
	}

	fmt.Printf("%s Module staged successfully\n", successIcon)
	fmt.Println()
	fmt.Printf("%s Staging dir: %s\n", infoIcon, PathStyle.Render(staging))
	fmt.Printf("%s Dependencies: %d\n", infoIcon, len(jars))

	return nil
}

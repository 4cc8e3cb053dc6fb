// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cleanCmd removes the module staging directory.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the module's staging directory",
	Long: `Remove the module's staging directory under build/mods/.

Staging never deletes files on its own, so removing a source or
resource file leaves its staged copy behind until the next clean. Run
clean before build to guarantee the staged tree (and any archive built
from it) matches the current sources exactly.

Examples:
  modkit clean
  modkit clean -C ./services/worker`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}

	builder, err := newBuilder(cfg)
	if err != nil {
		return err
	}

	staging, err := cfg.StagingDir()
	if err != nil {
		return err
	}

	if err := builder.Clean(); err != nil {
		return fmt.Errorf("failed to clean: %w", err)
	}

	fmt.Printf("%s Removed %s\n", successIcon, PathStyle.Render(staging))
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"modkit/internal/archive"
	"modkit/internal/descriptor"

	"github.com/spf13/cobra"
)

// packageCmd produces the distributable module bundle.
var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Package the module as a distributable zip bundle",
	Long: `Package the module: stage it (staging is idempotent), write the
mod.json descriptor, and assemble the zip bundle containing every
classpath entry plus a lib/ directory with all dependency jars.

The bundle is written to <target>/mods/<name>-<version>.zip. Entries
are written in sorted name order, so rebuilding unchanged content
produces a byte-identical archive.

Examples:
  modkit package
  modkit package -C ./services/worker`,
	Args: cobra.NoArgs,
	RunE: runPackage,
}

func runPackage(cmd *cobra.Command, _ []string) error {
	fmt.Println(TitleStyle.Render("Package Module"))

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

	descPath, err := cfg.DescriptorPath()
	if err != nil {
		return err
	}
	if err := descriptor.FromProject(cfg).Write(descPath); err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}

	roots := archive.EntryRoots(cfg.Root, cfg.CompileOutput, cfg.SourcePaths)
	entries, err := archive.CollectEntries(roots)
	if err != nil {
		return fmt.Errorf("failed to collect classpath entries: %w", err)
	}

	dest, err := cfg.ArchivePath()
	if err != nil {
		return err
	}
	if err := archive.Build(dest, entries, jars); err != nil {
		return fmt.Errorf("failed to build archive: %w", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("failed to stat output file: %w", err)
	}

	fmt.Printf("%s Module packaged successfully\n", successIcon)
	fmt.Println()
	fmt.Printf("%s Descriptor: %s\n", infoIcon, PathStyle.Render(descPath))
	fmt.Printf("%s Bundle: %s\n", infoIcon, PathStyle.Render(dest))
	fmt.Printf("%s Size: %s\n", infoIcon, formatFileSize(info.Size()))

	return nil
}

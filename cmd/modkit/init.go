// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"modkit/internal/project"

	"github.com/spf13/cobra"
)

var (
	// initOwner, initName, initVersion seed the scaffolded identity.
	initOwner   string
	initName    string
	initVersion string

	// initCmd scaffolds a project.toml in the project directory.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a project.toml in the project directory",
		Long: `Create a starter project.toml describing the module: its identity
(owner, name, version), entry point, source and resource trees, and
dependencies.

Fails if a project.toml already exists.

Examples:
  modkit init --owner acme --name worker
  modkit init -C ./services/worker --owner acme --name worker --module-version 2.0.0`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().StringVar(&initOwner, "owner", "example", "module owner")
	initCmd.Flags().StringVar(&initName, "name", "", "module name (default: project directory name)")
	initCmd.Flags().StringVar(&initVersion, "module-version", "1.0.0", "module version")
}

func runInit(_ *cobra.Command, _ []string) error {
	fmt.Println(TitleStyle.Render("Init Project"))

	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}

	name := initName
	if name == "" {
		name = filepath.Base(absDir)
	}

	path := filepath.Join(absDir, project.DescriptorFileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists at %s", project.DescriptorFileName, path)
	}

	content := fmt.Sprintf(`# Module descriptor for %s
# See https://github.com/modkit/modkit for documentation.

owner = %q
name = %q
version = %q

# Entry point recorded in mod.json, loaded by the platform.
main = "app.js"

source_paths = ["src"]
resource_paths = ["resources"]

# Declared dependencies, resolved into the module's lib/ directory.
# [[dependencies]]
# group = "io.vertx"
# artifact = "mod-web-server"
# version = "2.0.0"
`, name, initOwner, name, initVersion)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("%s Created %s\n", successIcon, PathStyle.Render(path))
	fmt.Println()
	fmt.Printf("%s Edit the entry point, then run 'modkit build'\n", infoIcon)

	return nil
}

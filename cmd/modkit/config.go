// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var (
	// configCmd groups configuration subcommands.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage tool configuration",
	}

	// configShowCmd prints the effective configuration.
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective tool configuration",
		Long: `Show the effective tool configuration after merging the config file
over the built-in defaults.

Examples:
  modkit config show
  modkit --config ./modkit.toml config show`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	fmt.Println(TitleStyle.Render("Configuration"))
	fmt.Printf("%s File: %s\n", infoIcon, PathStyle.Render(cfgRoot.ConfigFile))
	fmt.Println()

	data, err := toml.Marshal(cfgRoot.Config)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Print(string(data))

	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"modvet/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage modvet configuration",
	Long: `Manage modvet configuration.

Configuration is stored in:
  - Linux: ~/.config/modvet/config.toml
  - macOS: ~/Library/Application Support/modvet/config.toml
  - Windows: %APPDATA%\modvet\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("render configuration: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Scaffold()
			if errors.Is(err, config.ErrConfigExists) {
				fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("Config already exists: ")+path)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Created ")+path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.FilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
}

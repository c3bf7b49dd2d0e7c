// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"modvet/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output on stderr
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the loaded configuration, available to all subcommands.
	cfg = config.DefaultConfig()

	// logger writes CLI diagnostics to stderr; per-run pipeline traces
	// are embedded in the report instead.
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "modvet",
		Short: "A mod archive inspector",
		Long: TitleStyle.Render("modvet") + SubtitleStyle.Render(" - A mod archive inspector") + `

modvet checks game mod archives and folders before they reach the
game: file naming, contained file types and sizes, the modDesc.xml
descriptor, map crop data, and localized metadata. The result is a
single report with badges and a flat list of issue flags.

` + SubtitleStyle.Render("Examples:") + `
  modvet inspect FS22_myMod.zip        Inspect one mod archive
  modvet inspect --pretty mods/*.zip   Styled summary for many mods
  modvet explain PERF_PNG_TOO_MANY     Explain one issue flag
  modvet savegame savegame1.zip        Extract a save game's farms
  modvet config show                   Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/modvet/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(savegameCmd)
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
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
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

// initRootConfig loads the configuration before any command runs.
func initRootConfig() {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	loaded, err := config.Load(cfgFile)
	if err != nil {
		// A broken config never blocks an inspection; the defaults do.
		logger.Warn("configuration not loaded", "err", err)
		return
	}
	cfg = loaded
}

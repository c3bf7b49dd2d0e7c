// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"modvet/pkg/savegame"
)

var (
	savegamePretty bool

	savegameCmd = &cobra.Command{
		Use:   "savegame <path>...",
		Short: "Extract farm records from save games",
		Long: `Extract the farm roster from save-game archives or folders,
without running the full mod inspection pipeline.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSavegame,
	}
)

func init() {
	savegameCmd.Flags().BoolVarP(&savegamePretty, "pretty", "p", false, "indent the JSON output")
}

func runSavegame(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		info, err := os.Stat(path)
		isFolder := err == nil && info.IsDir()

		rec := savegame.Parse(path, isFolder)

		out, err := rec.ToJSON()
		if savegamePretty {
			out, err = rec.ToJSONPretty()
		}
		if err != nil {
			return fmt.Errorf("render save-game record for %s: %w", path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"modvet/pkg/flagset"
)

var explainCmd = &cobra.Command{
	Use:   "explain <flag>",
	Short: "Explain an issue flag",
	Long: `Explain a single issue flag from a report, e.g.

  modvet explain PERF_PNG_TOO_MANY

Run without arguments to list every known flag.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, f := range flagset.All() {
			fmt.Fprintln(cmd.OutOrStdout(), ValueStyle.Render(string(f)))
		}
		return nil
	}

	name := flagset.Flag(strings.ToUpper(args[0]))
	category, known := flagset.CategoryOf(name)
	if !known {
		return fmt.Errorf("unknown flag %q, run 'modvet explain' for the full list", args[0])
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n", name, categoryLabel(category), flagset.Describe(name))
	rendered, err := glamour.Render(md, "auto")
	if err != nil {
		// Glamour needs a usable terminal profile; plain text always works.
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

func categoryLabel(c flagset.Category) string {
	switch c {
	case flagset.CategoryBroken:
		return "broken: the artifact cannot be used as a mod"
	case flagset.CategoryProblem:
		return "problem: usable, but should be fixed"
	default:
		return "info"
	}
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"modvet/pkg/inspect"
	"modvet/pkg/modrecord"
)

var (
	inspectLocale   string
	inspectPretty   bool
	inspectChecksum bool
	inspectSaveGame bool

	inspectCmd = &cobra.Command{
		Use:   "inspect <path>...",
		Short: "Inspect mod archives or folders",
		Long: `Inspect one or more mod artifacts (zip archives or unpacked folders)
and print a report per artifact. Artifacts are processed independently;
a broken artifact never aborts the rest.

The default output is one JSON report per artifact. With --pretty a
styled summary is printed instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInspect,
	}
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectLocale, "locale", "l", "", "locale for title/description resolution (default from config)")
	inspectCmd.Flags().BoolVarP(&inspectPretty, "pretty", "p", false, "print a styled summary instead of JSON")
	inspectCmd.Flags().BoolVar(&inspectChecksum, "checksum", false, "compute an MD5 checksum of each archive")
	inspectCmd.Flags().BoolVar(&inspectSaveGame, "savegame", false, "embed a farm summary for detected save games")
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts := inspect.Options{
		Locale:          cfg.Locale,
		Checksum:        cfg.Checksum || inspectChecksum,
		IncludeSaveGame: cfg.SaveGame || inspectSaveGame,
	}
	if inspectLocale != "" {
		opts.Locale = inspectLocale
	}

	pretty := inspectPretty || cfg.Output == "pretty"
	broken := 0

	for _, path := range args {
		logger.Debug("inspecting artifact", "path", path)
		rec := inspect.FileWithOptions(path, opts)
		if rec.CanNotUse {
			broken++
		}

		if pretty {
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(rec))
			continue
		}
		out, err := rec.ToJSON()
		if err != nil {
			return fmt.Errorf("render report for %s: %w", path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}

	if broken > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d artifacts unusable", broken, len(args))}
	}
	return nil
}

// renderReport formats one report as a styled terminal summary.
func renderReport(rec *modrecord.Report) string {
	var b strings.Builder

	verdict := SuccessStyle.Render("usable")
	if rec.CanNotUse {
		verdict = ErrorStyle.Render("not usable")
	}

	b.WriteString(TitleStyle.Render(rec.FileDetail.ShortName))
	b.WriteString("  " + verdict + "\n")
	b.WriteString(SubtitleStyle.Render("title:   ") + rec.L10N.Title + "\n")
	b.WriteString(SubtitleStyle.Render("author:  ") + rec.ModDesc.Author)
	b.WriteString(SubtitleStyle.Render("  version: ") + rec.ModDesc.Version + "\n")

	if badges := rec.BadgeArray.Names(); len(badges) > 0 {
		b.WriteString(SubtitleStyle.Render("badges:  ") + ValueStyle.Render(strings.Join(badges, " ")) + "\n")
	}
	if len(rec.Issues) > 0 {
		b.WriteString(SubtitleStyle.Render("issues:") + "\n")
		for _, issue := range rec.Issues {
			b.WriteString("  " + WarningStyle.Render(issue) + "\n")
		}
	}
	return b.String()
}

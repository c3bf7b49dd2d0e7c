// SPDX-License-Identifier: MPL-2.0

// Package l10n resolves the report's title and description for a
// requested locale. Resolution always succeeds: it walks a fixed
// fallback chain and lands on a literal placeholder when nothing in the
// descriptor matches.
package l10n

import (
	"modvet/internal/descriptor"
	"modvet/pkg/flagset"
	"modvet/pkg/modrecord"
)

// FallbackTitle is the title placeholder when no locale resolves.
const FallbackTitle = "--"

// Resolve picks the title and description for locale, trying the
// requested locale, then English, then German. It raises the l10n flag
// when the title falls through to the placeholder or the description
// resolves empty. Resolve runs on every pipeline exit path, so a nil
// or empty map set is valid input.
func Resolve(maps descriptor.L10N, locale string, rec *modrecord.Report, reg *flagset.Registry) {
	rec.L10N = modrecord.LocalizedStrings{
		Title:       lookup(maps.Title, locale, FallbackTitle),
		Description: lookup(maps.Description, locale, ""),
	}

	if rec.L10N.Title == FallbackTitle || rec.L10N.Description == "" {
		reg.Raise(flagset.L10NNotSet)
	}
}

func lookup(m map[string]string, locale, fallback string) string {
	for _, key := range []string{locale, "en", "de"} {
		if v, ok := m[key]; ok && v != "" {
			return v
		}
	}
	return fallback
}

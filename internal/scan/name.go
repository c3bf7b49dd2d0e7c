// SPDX-License-Identifier: MPL-2.0

// Package scan implements the artifact-level checks of the inspection
// pipeline: file name validation, the file-classification walk with its
// per-type quotas and size policies, the lua malware scan, and zip-pack
// detection.
package scan

import (
	"path/filepath"
	"regexp"
	"strings"

	"modvet/pkg/flagset"
	"modvet/pkg/modrecord"
)

// archiveExt is the only archive extension the game loads.
const archiveExt = "zip"

// unsupportedArchiveExts are archive formats players commonly download
// but the game cannot read.
var unsupportedArchiveExts = map[string]struct{}{
	"rar": {},
	"7z":  {},
}

var (
	unzipPattern   = regexp.MustCompile(`(?i)unzip`)
	digitPattern   = regexp.MustCompile(`^\d`)
	goodName       = regexp.MustCompile(`^[A-Za-z_]\w+$`)
	copyNamePattern = regexp.MustCompile(`^([A-Za-z]\w+)(?: - .+$| \(.+$)`)
)

// ValidateName checks the artifact's name against the game's loading
// rules, raising broken flags onto reg as it goes. It returns false when
// the name alone makes the artifact unusable. It never fails with an
// error: every outcome is expressed through the return value and flags.
func ValidateName(detail *modrecord.FileDetail, reg *flagset.Registry) bool {
	if !detail.IsFolder {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(detail.FullPath), "."))
		if ext != archiveExt {
			if _, known := unsupportedArchiveExts[ext]; known {
				reg.Raise(flagset.UnsupportedArchive)
			} else {
				reg.Raise(flagset.GarbageFile)
			}
			return false
		}
	}

	if unzipPattern.MatchString(detail.ShortName) {
		// Suspicious, but not terminal: "unzip me" packs sometimes carry
		// a loadable mod name.
		reg.Raise(flagset.LikelyZipPack)
	}

	if digitPattern.MatchString(detail.ShortName) {
		reg.Raise(flagset.NameStartsDigit)
		return false
	}

	if !goodName.MatchString(detail.ShortName) {
		if m := copyNamePattern.FindStringSubmatch(detail.ShortName); m != nil {
			reg.Raise(flagset.LikelyCopy)
			detail.CopyName = &m[1]
		}
		return false
	}

	return true
}

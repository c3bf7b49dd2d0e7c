// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"regexp"
	"strings"

	"modvet/internal/archive"
	"modvet/internal/trace"
	"modvet/pkg/flagset"
	"modvet/pkg/modrecord"
)

// knownGoodTags are the file extensions the game actually reads. The
// empty tag covers extension-less files.
var knownGoodTags = map[string]struct{}{
	"": {}, "png": {}, "dds": {}, "i3d": {}, "shapes": {}, "lua": {},
	"gdm": {}, "cache": {}, "xml": {}, "grle": {}, "pdf": {}, "txt": {},
	"gls": {}, "anim": {}, "ogg": {},
}

// quotaLimits caps how many files of a type are acceptable before the
// matching TOO_MANY flag is raised. Read-only policy table.
var quotaLimits = map[string]int{
	"grle": 10,
	"pdf":  1,
	"png":  128,
	"txt":  2,
}

// quotaFlags maps quota-tracked tags to their TOO_MANY flags.
var quotaFlags = map[string]flagset.Flag{
	"grle": flagset.GRLETooMany,
	"pdf":  flagset.PDFTooMany,
	"png":  flagset.PNGTooMany,
	"txt":  flagset.TXTTooMany,
}

// sizeLimits caps the byte size of individual files. Read-only policy table.
var sizeLimits = map[string]int64{
	"cache":  10 * 1024 * 1024,
	"dds":    12 * 1024 * 1024,
	"gdm":    18 * 1024 * 1024,
	"shapes": 256 * 1024 * 1024,
	"xml":    256 * 1024,
}

// oversizeFlags maps size-checked tags to their TOO_BIG flags. The cache
// tag intentionally reports under the I3D label — report consumers key
// on that historical mapping.
var oversizeFlags = map[string]flagset.Flag{
	"cache":  flagset.I3DTooBig,
	"dds":    flagset.DDSTooBig,
	"gdm":    flagset.GDMTooBig,
	"shapes": flagset.ShapesTooBig,
	"xml":    flagset.XMLTooBig,
}

// piracyTags are payload extensions associated with pirated content.
var piracyTags = map[string]struct{}{
	"l64": {},
	"dat": {},
}

// maliciousCall matches lua calls that delete files or folders.
var maliciousCall = regexp.MustCompile(`(?m)\.delete(File|Folder)`)

// knownSafeNames are mods with legitimate uses of the deletion calls;
// their scripts are not scanned at all.
var knownSafeNames = map[string]struct{}{
	"FS22_001_NoDelete":        {},
	"FS22_AutoDrive":           {},
	"FS22_Courseplay":          {},
	"FS22_FSG_Companion":       {},
	"FS22_VehicleControlAddon": {},
	"MultiOverlayV3":           {},
	"MultiOverlayV4":           {},
	"VehicleInspector":         {},
	"FS19_AutoDrive":           {},
	"FS19_Courseplay":          {},
	"FS19_GlobalCompany":       {},
}

// Classify walks every entry of the artifact, filling the report's
// classification lists, counting script files, enforcing the size
// policy, and tracking per-type quotas. Quota flags are raised once,
// after the walk, when a type's count exceeded its limit. Each run owns
// its own quota state; the policy tables above are never mutated.
func Classify(h archive.Handle, entries []archive.Entry, rec *modrecord.Report, reg *flagset.Registry, logc *trace.Collector) {
	detail := rec.FileDetail

	// Per-run remaining-count tracker, seeded from the policy table.
	remaining := make(map[string]int, len(quotaLimits))
	for tag, limit := range quotaLimits {
		remaining[tag] = limit
	}

	_, skipLuaScan := knownSafeNames[detail.ShortName]

	for _, entry := range entries {
		if entry.IsDir {
			continue
		}

		if strings.ContainsRune(entry.Name, ' ') {
			detail.SpaceFiles = append(detail.SpaceFiles, entry.Name)
			reg.Raise(flagset.SpaceInFile)
		}

		tag := entry.Extension()
		if _, known := knownGoodTags[tag]; !known {
			if _, piracy := piracyTags[tag]; piracy {
				reg.Raise(flagset.MightBePiracy)
			}
			detail.ExtraFiles = append(detail.ExtraFiles, entry.Name)
			reg.Raise(flagset.HasExtra)
			continue
		}

		switch tag {
		case "png":
			remaining["png"]--
			if !strings.HasSuffix(entry.Name, "_weight.png") {
				detail.ImageNonDDS = append(detail.ImageNonDDS, entry.Name)
				detail.PNGTexture = append(detail.PNGTexture, entry.Name)
			}
		case "dds":
			detail.ImageDDS = append(detail.ImageDDS, entry.Name)
			checkSize(entry, detail, reg)
		case "i3d":
			detail.I3DFiles = append(detail.I3DFiles, entry.Name)
		case "lua":
			rec.ModDesc.ScriptFiles++
			if !skipLuaScan {
				scanLua(h, entry.Name, reg, logc)
			}
		case "cache", "gdm", "shapes", "xml":
			checkSize(entry, detail, reg)
		case "grle", "pdf", "txt":
			remaining[tag]--
		}
	}

	for tag, flag := range quotaFlags {
		if remaining[tag] < 0 {
			reg.Raise(flag)
		}
	}
}

// checkSize applies the size policy to one entry, recording oversized
// files and raising the type's TOO_BIG flag.
func checkSize(entry archive.Entry, detail *modrecord.FileDetail, reg *flagset.Registry) {
	limit, ok := sizeLimits[entry.Extension()]
	if !ok || entry.Size <= limit {
		return
	}
	detail.TooBigFiles = append(detail.TooBigFiles, entry.Name)
	reg.Raise(oversizeFlags[entry.Extension()])
}

// scanLua reads one script and raises the malicious-code info flag when
// it contains file/folder deletion calls. Read failures are logged and
// otherwise ignored.
func scanLua(h archive.Handle, name string, reg *flagset.Registry, logc *trace.Collector) {
	content, err := h.ReadText(name)
	if err != nil {
		logc.Warning("lua script unreadable, skipping scan", "file", name)
		return
	}
	if maliciousCall.MatchString(content) {
		reg.Raise(flagset.MaliciousCode)
	}
}

// DetectZipPack recognizes archives that are packs of zipped mods
// rather than a single mod: at least one contained zip file, no xml
// files, no directories, and at most one non-zip file. It returns the
// contained zip entries, or nil when the artifact is not a pack.
func DetectZipPack(entries []archive.Entry) []modrecord.ZipPackFile {
	var zips []modrecord.ZipPackFile
	nonZipBudget := 2
	sawZip := false

	for _, entry := range entries {
		if entry.IsDir {
			return nil
		}
		switch entry.Extension() {
		case "xml":
			return nil
		case "zip":
			sawZip = true
			zips = append(zips, modrecord.ZipPackFile{Name: entry.Name, Size: entry.Size})
		default:
			nonZipBudget--
		}
	}

	if nonZipBudget <= 0 || !sawZip {
		return nil
	}
	return zips
}

// SPDX-License-Identifier: MPL-2.0

// Package flagset defines the closed set of diagnostic flags a mod
// inspection can raise, partitioned into three fixed categories:
//
//   - broken: the artifact cannot be used as a mod at all
//   - problem: usable, but with a quality/performance/policy concern
//   - info: purely informational, never blocking
//
// Flag names are unique across all categories and match the historical
// wire format, so a report's issue list is stable across tool versions.
// A Registry tracks the flags raised during a single inspection run;
// flags are monotonic — once raised they are never cleared.
package flagset

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Flag is the wire name of a single diagnostic signal.
type Flag string

// Broken flags — the artifact is not usable as a mod.
const (
	GarbageFile          Flag = "FILE_ERROR_GARBAGE_FILE"
	LikelyCopy           Flag = "FILE_ERROR_LIKELY_COPY"
	LikelyZipPack        Flag = "FILE_ERROR_LIKELY_ZIP_PACK"
	NameInvalid          Flag = "FILE_ERROR_NAME_INVALID"
	NameStartsDigit      Flag = "FILE_ERROR_NAME_STARTS_DIGIT"
	UnreadableArchive    Flag = "FILE_ERROR_UNREADABLE_ZIP"
	UnsupportedArchive   Flag = "FILE_ERROR_UNSUPPORTED_ARCHIVE"
	DescriptorMissing    Flag = "NOT_MOD_MODDESC_MISSING"
	DescriptorParseError Flag = "NOT_MOD_MODDESC_PARSE_ERROR"
	DescriptorVersionOld Flag = "NOT_MOD_MODDESC_VERSION_OLD_OR_MISSING"
)

// Problem flags — the artifact works, but something should be fixed.
const (
	MightBePiracy Flag = "INFO_MIGHT_BE_PIRACY"
	NoModIcon     Flag = "MOD_ERROR_NO_MOD_ICON"
	NoModVersion  Flag = "MOD_ERROR_NO_MOD_VERSION"
	SpaceInFile   Flag = "PERF_SPACE_IN_FILE"
	L10NNotSet    Flag = "PERF_L10N_NOT_SET"
	DDSTooBig     Flag = "PERF_DDS_TOO_BIG"
	GDMTooBig     Flag = "PERF_GDM_TOO_BIG"
	I3DTooBig     Flag = "PERF_I3D_TOO_BIG"
	ShapesTooBig  Flag = "PERF_SHAPES_TOO_BIG"
	XMLTooBig     Flag = "PERF_XML_TOO_BIG"
	HasExtra      Flag = "PERF_HAS_EXTRA"
	GRLETooMany   Flag = "PERF_GRLE_TOO_MANY"
	PDFTooMany    Flag = "PERF_PDF_TOO_MANY"
	PNGTooMany    Flag = "PERF_PNG_TOO_MANY"
	TXTTooMany    Flag = "PERF_TXT_TOO_MANY"
)

// Info flags — never blocking.
const (
	IsSaveGame           Flag = "FILE_IS_A_SAVEGAME"
	NoMultiplayerUnzipped Flag = "INFO_NO_MULTIPLAYER_UNZIPPED"
	MaliciousCode        Flag = "MALICIOUS_CODE"
)

// Category identifies which of the three partitions a flag belongs to.
type Category int

const (
	// CategoryBroken marks flags that make the artifact unusable.
	CategoryBroken Category = iota
	// CategoryProblem marks quality/performance/policy concerns.
	CategoryProblem
	// CategoryInfo marks purely informational signals.
	CategoryInfo
)

// categories is the fixed, process-wide flag → category table. It is
// populated once at init and never mutated afterwards.
var categories = map[Flag]Category{
	GarbageFile:          CategoryBroken,
	LikelyCopy:           CategoryBroken,
	LikelyZipPack:        CategoryBroken,
	NameInvalid:          CategoryBroken,
	NameStartsDigit:      CategoryBroken,
	UnreadableArchive:    CategoryBroken,
	UnsupportedArchive:   CategoryBroken,
	DescriptorMissing:    CategoryBroken,
	DescriptorParseError: CategoryBroken,
	DescriptorVersionOld: CategoryBroken,

	MightBePiracy: CategoryProblem,
	NoModIcon:     CategoryProblem,
	NoModVersion:  CategoryProblem,
	SpaceInFile:   CategoryProblem,
	L10NNotSet:    CategoryProblem,
	DDSTooBig:     CategoryProblem,
	GDMTooBig:     CategoryProblem,
	I3DTooBig:     CategoryProblem,
	ShapesTooBig:  CategoryProblem,
	XMLTooBig:     CategoryProblem,
	HasExtra:      CategoryProblem,
	GRLETooMany:   CategoryProblem,
	PDFTooMany:    CategoryProblem,
	PNGTooMany:    CategoryProblem,
	TXTTooMany:    CategoryProblem,

	IsSaveGame:            CategoryInfo,
	NoMultiplayerUnzipped: CategoryInfo,
	MaliciousCode:         CategoryInfo,
}

// All returns every known flag name, sorted.
func All() []Flag {
	all := maps.Keys(categories)
	slices.Sort(all)
	return all
}

// CategoryOf reports the category a flag belongs to. The second return
// value is false for unknown names.
func CategoryOf(f Flag) (Category, bool) {
	c, ok := categories[f]
	return c, ok
}

// Registry tracks the flags raised during a single inspection run.
// It is owned by one pipeline run and must not be shared between
// concurrent inspections. The zero value is not usable; call NewRegistry.
type Registry struct {
	raised map[Flag]struct{}
}

// NewRegistry returns an empty per-run registry.
func NewRegistry() *Registry {
	return &Registry{raised: make(map[Flag]struct{})}
}

// Raise marks a flag as set. Raising an already-raised flag is a no-op;
// unknown flag names are ignored so the raised set stays within the
// closed tables above.
func (r *Registry) Raise(f Flag) {
	if _, ok := categories[f]; !ok {
		return
	}
	r.raised[f] = struct{}{}
}

// Has reports whether a flag has been raised.
func (r *Registry) Has(f Flag) bool {
	_, ok := r.raised[f]
	return ok
}

// AnyBroken reports whether at least one broken-category flag is raised.
func (r *Registry) AnyBroken() bool { return r.any(CategoryBroken) }

// AnyProblem reports whether at least one problem-category flag is raised.
func (r *Registry) AnyProblem() bool { return r.any(CategoryProblem) }

func (r *Registry) any(c Category) bool {
	for f := range r.raised {
		if categories[f] == c {
			return true
		}
	}
	return false
}

// Names returns the raised flag names as a sorted, category-erased list.
// Sorting keeps report output deterministic; the semantic result is a set.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.raised))
	for f := range r.raised {
		names = append(names, string(f))
	}
	slices.Sort(names)
	return names
}

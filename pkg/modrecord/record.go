// SPDX-License-Identifier: MPL-2.0

// Package modrecord defines the externally visible result of a mod
// inspection: the ModReport value, its nested file/descriptor detail
// structures, and the derived badge list.
//
// Field names and JSON tags follow the historical report wire format:
// camelCase keys, `badgeArray` serialized as a list of badge names, and
// `issues` as a flat, category-erased list of flag names. A report is a
// pure value — it holds no references back into the pipeline that
// produced it.
package modrecord

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"modvet/pkg/flagset"
)

// DefaultAuthor is the author placeholder when modDesc.xml declares none.
const DefaultAuthor = "--"

// DefaultVersion is the version placeholder when modDesc.xml declares none.
const DefaultVersion = "0.0.0.0"

// Report is the complete inspection result for one artifact.
type Report struct {
	// BadgeArray is the derived, human-facing badge list.
	BadgeArray Badges `json:"badgeArray"`
	// CanNotUse is true when the artifact cannot be loaded as a mod.
	CanNotUse bool `json:"canNotUse"`
	// FileDetail holds the physical facts about the artifact.
	FileDetail *FileDetail `json:"fileDetail"`
	// Issues is the flat set of raised flag names, sorted.
	Issues []string `json:"issues"`
	// L10N holds the resolved title and description for the requested locale.
	L10N LocalizedStrings `json:"l10n"`
	// LogLines is the ordered trace of the inspection run.
	LogLines []string `json:"logLines"`
	// MD5Sum is the optional content checksum (nil unless requested,
	// and always nil for folders or descriptor-less artifacts).
	MD5Sum *string `json:"md5Sum"`
	// ModDesc holds the metadata declared by modDesc.xml.
	ModDesc *Descriptor `json:"modDesc"`
	// SaveGame holds the optional save-game record when the artifact
	// turned out to be a save rather than a mod.
	SaveGame *json.RawMessage `json:"saveGame,omitempty"`
	// UUID is the md5 digest of the artifact's full path.
	UUID string `json:"uuid"`
}

// FileDetail collects per-artifact physical facts. It is created empty
// at pipeline start, mutated only by the file classifier, and read-only
// afterwards.
type FileDetail struct {
	CopyName    *string       `json:"copyName"`
	ExtraFiles  []string      `json:"extraFiles"`
	FileDate    string        `json:"fileDate"`
	FileSize    int64         `json:"fileSize"`
	FullPath    string        `json:"fullPath"`
	I3DFiles    []string      `json:"i3dFiles"`
	ImageDDS    []string      `json:"imageDDS"`
	ImageNonDDS []string      `json:"imageNonDDS"`
	IsFolder    bool          `json:"isFolder"`
	IsSaveGame  bool          `json:"isSaveGame"`
	IsModPack   bool          `json:"isModPack"`
	PNGTexture  []string      `json:"pngTexture"`
	ShortName   string        `json:"shortName"`
	SpaceFiles  []string      `json:"spaceFiles"`
	TooBigFiles []string      `json:"tooBigFiles"`
	ZipFiles    []ZipPackFile `json:"zipFiles"`
}

// ZipPackFile is one zip file contained inside a suspected mod pack.
type ZipPackFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Descriptor holds the metadata declared by modDesc.xml, filled with
// safe defaults before extraction and never mutated after the pipeline
// finishes.
type Descriptor struct {
	Actions       map[string]string   `json:"actions"`
	Binds         map[string][]string `json:"binds"`
	Author        string              `json:"author"`
	ScriptFiles   int                 `json:"scriptFiles"`
	StoreItems    int                 `json:"storeItems"`
	CropInfo      []Crop              `json:"cropInfo"`
	CropWeather   CropWeather         `json:"cropWeather"`
	Depend        []string            `json:"depend"`
	DescVersion   int                 `json:"descVersion"`
	IconFileName  *string             `json:"iconFileName"`
	IconImage     *string             `json:"iconImage"`
	MapConfigFile *string             `json:"mapConfigFile"`
	MapIsSouth    bool                `json:"mapIsSouth"`
	MultiPlayer   bool                `json:"multiPlayer"`
	Version       string              `json:"version"`
}

// Crop is the derived growth calendar for one crop on a map mod.
type Crop struct {
	Name           string `json:"name"`
	GrowthTime     int    `json:"growthTime"`
	HarvestPeriods []int  `json:"harvestPeriods"`
	PlantPeriods   []int  `json:"plantPeriods"`
}

// CropWeather maps season name to {"min": …, "max": …} temperatures.
type CropWeather map[string]map[string]int

// LocalizedStrings is the locale-resolved title/description pair.
type LocalizedStrings struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Badges is the set of derived report badges. It serializes as an
// ordered list of the badge names that are true.
type Badges struct {
	Broken   bool
	Folder   bool
	Malware  bool
	NoMP     bool
	NotMod   bool
	PCOnly   bool
	Problem  bool
	SaveGame bool
}

// MarshalJSON emits the active badge names in a fixed order.
func (b Badges) MarshalJSON() ([]byte, error) {
	names := b.Names()
	return json.Marshal(names)
}

// Names returns the active badge names in a fixed order.
func (b Badges) Names() []string {
	names := []string{}
	if b.Broken {
		names = append(names, "broken")
	}
	if b.Folder {
		names = append(names, "folder")
	}
	if b.Malware {
		names = append(names, "malware")
	}
	if b.NoMP {
		names = append(names, "noMP")
	}
	if b.NotMod {
		names = append(names, "notmod")
	}
	if b.PCOnly {
		names = append(names, "pconly")
	}
	if b.Problem {
		names = append(names, "problem")
	}
	if b.SaveGame {
		names = append(names, "savegame")
	}
	return names
}

// New creates a report skeleton for an artifact at fullPath. The short
// name is the file stem for archives and the folder name for folders.
func New(fullPath string, isFolder bool) *Report {
	base := filepath.Base(fullPath)
	short := base
	if !isFolder {
		short = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &Report{
		CanNotUse: true,
		FileDetail: &FileDetail{
			ExtraFiles:  []string{},
			FullPath:    fullPath,
			I3DFiles:    []string{},
			ImageDDS:    []string{},
			ImageNonDDS: []string{},
			IsFolder:    isFolder,
			PNGTexture:  []string{},
			ShortName:   short,
			SpaceFiles:  []string{},
			TooBigFiles: []string{},
			ZipFiles:    []ZipPackFile{},
		},
		Issues: []string{},
		ModDesc: &Descriptor{
			Actions: map[string]string{},
			Binds:   map[string][]string{},
			Author:  DefaultAuthor,
			Depend:  []string{},
			Version: DefaultVersion,
		},
		UUID: fmt.Sprintf("%x", md5.Sum([]byte(fullPath))),
	}
}

// Assemble folds the raised flags into the report: the flat issue list,
// the badge set, and the usability verdict. It is a pure function of
// the accumulated state and is the last pipeline step.
func (r *Report) Assemble(reg *flagset.Registry) {
	r.Issues = reg.Names()

	b := Badges{
		NotMod: reg.Has(flagset.DescriptorMissing),
		PCOnly: r.ModDesc.ScriptFiles > 0,
	}

	if r.FileDetail.IsSaveGame {
		// Save games are reported as automatically usable; broken and
		// problem badges are suppressed regardless of raised flags.
		b.SaveGame = true
		r.CanNotUse = false
	} else {
		b.Folder = r.FileDetail.IsFolder
		b.Malware = reg.Has(flagset.MaliciousCode)
		b.Broken = reg.AnyBroken()
		b.Problem = reg.AnyProblem()
		b.NoMP = r.FileDetail.IsFolder && !r.ModDesc.MultiPlayer
		r.CanNotUse = b.Broken
	}

	r.BadgeArray = b
}

// ToJSON renders the report as compact JSON.
func (r *Report) ToJSON() (string, error) {
	out, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(out), nil
}

// ToJSONPretty renders the report as indented JSON.
func (r *Report) ToJSONPretty() (string, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(out), nil
}

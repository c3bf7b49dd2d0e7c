// SPDX-License-Identifier: MPL-2.0

package modrecord

import (
	"encoding/json"
	"strings"
	"testing"

	"modvet/pkg/flagset"
)

func TestNewShortName(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		isFolder bool
		want     string
	}{
		{name: "zip file", path: "/mods/FS22_Example.zip", want: "FS22_Example"},
		{name: "folder keeps full base", path: "/mods/FS22_Example", isFolder: true, want: "FS22_Example"},
		{name: "dotted folder name", path: "/mods/FS22.Example", isFolder: true, want: "FS22.Example"},
		{name: "no extension file", path: "/mods/README", want: "README"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.path, tt.isFolder)
			if r.FileDetail.ShortName != tt.want {
				t.Errorf("ShortName = %q, want %q", r.FileDetail.ShortName, tt.want)
			}
		})
	}
}

func TestNewUUIDIsPathDigest(t *testing.T) {
	a := New("/mods/A.zip", false)
	b := New("/mods/A.zip", false)
	c := New("/mods/B.zip", false)

	if a.UUID != b.UUID {
		t.Error("same path should produce the same uuid")
	}
	if a.UUID == c.UUID {
		t.Error("different paths should produce different uuids")
	}
	if len(a.UUID) != 32 {
		t.Errorf("uuid length = %d, want 32 hex chars", len(a.UUID))
	}
}

func TestAssembleBadges(t *testing.T) {
	tests := []struct {
		name       string
		raise      []flagset.Flag
		mutate     func(*Report)
		wantBadges []string
		wantUsable bool
	}{
		{
			name:       "clean zip mod",
			wantBadges: []string{},
			wantUsable: true,
		},
		{
			name:       "broken flag sets broken badge and canNotUse",
			raise:      []flagset.Flag{flagset.GarbageFile},
			wantBadges: []string{"broken"},
		},
		{
			name:  "savegame suppresses broken and problem",
			raise: []flagset.Flag{flagset.IsSaveGame, flagset.GarbageFile, flagset.PNGTooMany},
			mutate: func(r *Report) {
				r.FileDetail.IsSaveGame = true
			},
			wantBadges: []string{"savegame"},
			wantUsable: true,
		},
		{
			name: "folder without multiplayer",
			mutate: func(r *Report) {
				r.FileDetail.IsFolder = true
			},
			wantBadges: []string{"folder", "noMP"},
			wantUsable: true,
		},
		{
			name: "multiplayer folder still shows folder badge",
			mutate: func(r *Report) {
				r.FileDetail.IsFolder = true
				r.ModDesc.MultiPlayer = true
			},
			wantBadges: []string{"folder"},
			wantUsable: true,
		},
		{
			name:       "missing descriptor marks notmod",
			raise:      []flagset.Flag{flagset.DescriptorMissing},
			wantBadges: []string{"broken", "notmod"},
		},
		{
			name:  "scripts mark pconly",
			mutate: func(r *Report) { r.ModDesc.ScriptFiles = 3 },
			wantBadges: []string{"pconly"},
			wantUsable: true,
		},
		{
			name:       "malware info flag",
			raise:      []flagset.Flag{flagset.MaliciousCode},
			wantBadges: []string{"malware"},
			wantUsable: true,
		},
		{
			name:       "problem flag",
			raise:      []flagset.Flag{flagset.SpaceInFile},
			wantBadges: []string{"problem"},
			wantUsable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("/mods/FS22_Test.zip", false)
			if tt.mutate != nil {
				tt.mutate(r)
			}
			reg := flagset.NewRegistry()
			for _, f := range tt.raise {
				reg.Raise(f)
			}

			r.Assemble(reg)

			got := r.BadgeArray.Names()
			if strings.Join(got, ",") != strings.Join(tt.wantBadges, ",") {
				t.Errorf("badges = %v, want %v", got, tt.wantBadges)
			}
			if r.CanNotUse == tt.wantUsable {
				t.Errorf("CanNotUse = %v, want %v", r.CanNotUse, !tt.wantUsable)
			}
		})
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	r := New("/mods/FS22_Test.zip", false)
	reg := flagset.NewRegistry()
	reg.Raise(flagset.PNGTooMany)

	r.Assemble(reg)
	first, err := r.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	r.Assemble(reg)
	second, err := r.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Error("assembling twice changed the report")
	}
}

func TestReportJSONShape(t *testing.T) {
	r := New("/mods/FS22_Test.zip", false)
	r.Assemble(flagset.NewRegistry())

	out, err := r.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}

	for _, key := range []string{"badgeArray", "canNotUse", "fileDetail", "issues", "l10n", "md5Sum", "modDesc", "uuid"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("report JSON missing key %q", key)
		}
	}

	if _, ok := decoded["badgeArray"].([]any); !ok {
		t.Error("badgeArray should serialize as a list of names")
	}
}

// SPDX-License-Identifier: MPL-2.0

package mapdata

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/beevik/etree"

	"modvet/internal/archive"
	"modvet/internal/trace"
	"modvet/pkg/modrecord"
)

// memHandle is an in-memory archive.Handle for extraction tests.
type memHandle struct {
	files map[string]string
}

func (m *memHandle) IsFolder() bool { return false }

func (m *memHandle) Exists(name string) bool {
	_, ok := m.files[name]
	return ok
}

func (m *memHandle) List() []archive.Entry { return nil }

func (m *memHandle) ReadText(name string) (string, error) {
	content, ok := m.files[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", archive.ErrNotFound, name)
	}
	return content, nil
}

func (m *memHandle) ReadBin(name string) ([]byte, error) {
	content, err := m.ReadText(name)
	return []byte(content), err
}

func (m *memHandle) ReadXML(name string) (*etree.Document, error) {
	raw, err := m.ReadBin(name)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil || doc.Root() == nil {
		return nil, fmt.Errorf("%w: %s", archive.ErrParse, name)
	}
	return doc, nil
}

func (m *memHandle) Close() error { return nil }

func strPtr(s string) *string { return &s }

const customEnvironment = `<environment>
  <latitude>-34.5</latitude>
  <weather>
    <season name="spring">
      <variation minTemperature="4" maxTemperature="15"/>
      <variation minTemperature="7" maxTemperature="19"/>
    </season>
    <season name="winter">
      <variation minTemperature="-8" maxTemperature="6"/>
    </season>
  </weather>
</environment>`

func TestReaderCustomEnvironment(t *testing.T) {
	r := NewReader(nil, nil, strPtr(customEnvironment), "")

	if !r.IsSouth() {
		t.Error("negative latitude not detected as southern")
	}

	spring := r.Weather()["spring"]
	if spring["min"] != 4 || spring["max"] != 19 {
		t.Errorf("spring = %v, want min 4 max 19 across variations", spring)
	}
	winter := r.Weather()["winter"]
	if winter["min"] != -8 || winter["max"] != 6 {
		t.Errorf("winter = %v", winter)
	}
}

func TestReaderBaseGameFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantMin int // winter min of the resolved table
	}{
		{name: "declared alpine key", key: "mapAlpine", wantMin: -12},
		{name: "unknown key uses default", key: "mapXX", wantMin: -11},
		{name: "empty key uses default", key: "", wantMin: -11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(nil, nil, nil, tt.key)
			if got := r.Weather()["winter"]["min"]; got != tt.wantMin {
				t.Errorf("winter min = %d, want %d", got, tt.wantMin)
			}
			if r.IsSouth() {
				t.Error("base-game fallback marked southern")
			}
		})
	}
}

func TestReaderBaseGameCrops(t *testing.T) {
	r := NewReader(nil, nil, nil, "mapUS")

	crops := r.Crops()
	if len(crops) != len(baseGameCrops) {
		t.Fatalf("crops = %d, want %d stock entries", len(crops), len(baseGameCrops))
	}
	var wheat *modrecord.Crop
	for i := range crops {
		if crops[i].Name == "wheat" {
			wheat = &crops[i]
		}
	}
	if wheat == nil {
		t.Fatal("stock crops missing wheat")
	}
	if !reflect.DeepEqual(wheat.HarvestPeriods, []int{5, 6}) {
		t.Errorf("wheat harvest = %v", wheat.HarvestPeriods)
	}
	if !reflect.DeepEqual(wheat.PlantPeriods, []int{7, 8}) {
		t.Errorf("wheat plant = %v", wheat.PlantPeriods)
	}
}

const customFruitTypes = `<map>
  <fruitTypes>
    <fruitType name="wheat">
      <harvest minHarvestingGrowthState="6" maxHarvestingGrowthState="6"/>
      <growth numGrowthStates="6"/>
    </fruitType>
    <fruitType name="meadow">
      <harvest minHarvestingGrowthState="1" maxHarvestingGrowthState="4"/>
      <growth numGrowthStates="4"/>
    </fruitType>
    <fruitType name="grape">
      <harvest minHarvestingGrowthState="7" maxHarvestingGrowthState="7"/>
      <growth numGrowthStates="7"/>
      <preparing minGrowthState="5" maxGrowthState="6"/>
    </fruitType>
  </fruitTypes>
</map>`

const customGrowth = `<growth>
  <fruits>
    <fruit name="wheat">
      <period index="1" plantingAllowed="true">
        <update range="1" add="2"/>
      </period>
      <period index="2">
        <update range="1-3" add="3"/>
      </period>
      <period index="3"/>
      <period index="4">
        <update set="true" range="1"/>
      </period>
    </fruit>
    <fruit name="meadow">
      <period index="1" plantingAllowed="true"/>
    </fruit>
    <fruit name="nobuilder">
      <period index="1" plantingAllowed="true"/>
    </fruit>
  </fruits>
</growth>`

func TestReaderCustomGrowth(t *testing.T) {
	r := NewReader(strPtr(customFruitTypes), strPtr(customGrowth), nil, "mapUS")

	crops := r.Crops()
	if len(crops) != 1 {
		t.Fatalf("crops = %v, want only wheat (meadow skipped, nobuilder dropped)", crops)
	}

	wheat := crops[0]
	if wheat.Name != "wheat" || wheat.GrowthTime != 6 {
		t.Errorf("wheat = %+v", wheat)
	}
	if !reflect.DeepEqual(wheat.PlantPeriods, []int{1}) {
		t.Errorf("plant periods = %v", wheat.PlantPeriods)
	}
	// Period 2 grows to state 6 (range upper bound 3 + add 3), period 3
	// has no update and stays harvestable, period 4 dies back to 1.
	if !reflect.DeepEqual(wheat.HarvestPeriods, []int{2, 3}) {
		t.Errorf("harvest periods = %v", wheat.HarvestPeriods)
	}
}

func TestDecodeMaxRange(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"4", 4},
		{"2-7", 7},
		{"", 0},
		{"x", 0},
	}
	for _, tt := range tests {
		if got := decodeMaxRange(tt.in); got != tt.want {
			t.Errorf("decodeMaxRange(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

const mapConfigBaseGame = `<map>
  <fruitTypes filename="$data/maps/maps_fruitTypes.xml"/>
  <growth filename="$data/maps/maps_growth.xml"/>
  <environment filename="$data/maps/mapAlpine/environment.xml"/>
</map>`

func TestExtractBaseGameReferences(t *testing.T) {
	h := &memHandle{files: map[string]string{"maps/config.xml": mapConfigBaseGame}}
	rec := modrecord.New("/mods/FS22_map.zip", false)
	rec.ModDesc.MapConfigFile = strPtr("maps/config.xml")

	Extract(h, rec, trace.New())

	if got := rec.ModDesc.CropWeather["winter"]["min"]; got != -12 {
		t.Errorf("winter min = %d, want alpine table", got)
	}
	if len(rec.ModDesc.CropInfo) != len(baseGameCrops) {
		t.Errorf("crop info = %d entries, want stock set", len(rec.ModDesc.CropInfo))
	}
	if rec.ModDesc.MapIsSouth {
		t.Error("base-game environment marked southern")
	}
}

func TestExtractCustomEnvironment(t *testing.T) {
	h := &memHandle{files: map[string]string{
		"maps/config.xml": `<map><environment filename="maps/env.xml"/></map>`,
		"maps/env.xml":    customEnvironment,
	}}
	rec := modrecord.New("/mods/FS22_south.zip", false)
	rec.ModDesc.MapConfigFile = strPtr("maps/config.xml")

	Extract(h, rec, trace.New())

	if !rec.ModDesc.MapIsSouth {
		t.Error("custom southern environment not detected")
	}
	if got := rec.ModDesc.CropWeather["winter"]["max"]; got != 6 {
		t.Errorf("winter max = %d", got)
	}
}

func TestExtractMissingConfigDegrades(t *testing.T) {
	h := &memHandle{files: map[string]string{}}
	rec := modrecord.New("/mods/FS22_missing.zip", false)
	rec.ModDesc.MapConfigFile = strPtr("maps/config.xml")
	logc := trace.New()

	Extract(h, rec, logc)

	if got := rec.ModDesc.CropWeather["winter"]["min"]; got != -11 {
		t.Errorf("winter min = %d, want default table", got)
	}
	if len(rec.ModDesc.CropInfo) != len(baseGameCrops) {
		t.Error("missing config did not fall back to stock crops")
	}
	if len(logc.Lines()) == 0 {
		t.Error("missing config not logged")
	}
}

func TestExtractNoMapConfigDeclared(t *testing.T) {
	h := &memHandle{files: map[string]string{}}
	rec := modrecord.New("/mods/FS22_plain.zip", false)

	Extract(h, rec, trace.New())

	if rec.ModDesc.CropWeather != nil || rec.ModDesc.CropInfo != nil {
		t.Error("non-map mod gained crop data")
	}
}

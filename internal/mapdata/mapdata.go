// SPDX-License-Identifier: MPL-2.0

// Package mapdata derives crop calendars, seasonal weather, and
// hemisphere orientation for map mods. The extraction is best effort in
// every direction: a missing or unparseable file falls back to the
// stock base-game tables and never fails the inspection.
package mapdata

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"modvet/internal/archive"
	"modvet/internal/trace"
	"modvet/pkg/modrecord"
)

// baseGamePrefix marks a map-config file reference that points into the
// game's own data instead of the mod archive.
const baseGamePrefix = "$data"

// baseGameKeyPattern pulls the stock map tag out of a base-game
// environment reference like "$data/maps/mapUS/environment.xml".
var baseGameKeyPattern = regexp.MustCompile(`(map[A-Z][A-Za-z]+)`)

// Reader resolves weather, crop calendars, and orientation from up to
// three map support files. Nil payloads and parse failures fall back to
// the base-game tables under fallbackKey (or the stock default when the
// key is empty or unknown).
type Reader struct {
	weather modrecord.CropWeather
	crops   []modrecord.Crop
	isSouth bool
}

// NewReader builds a Reader from the optional fruit-types, growth, and
// environment payloads plus the base-game fallback tag.
func NewReader(fruitTypes, growth, environment *string, fallbackKey string) *Reader {
	r := &Reader{}
	r.resolveWeather(environment, fallbackKey)
	r.resolveCrops(fruitTypes, growth)
	return r
}

// Weather returns the seasonal temperature table.
func (r *Reader) Weather() modrecord.CropWeather { return r.weather }

// Crops returns the derived growth calendar.
func (r *Reader) Crops() []modrecord.Crop { return r.crops }

// IsSouth reports whether the map lies in the southern hemisphere.
func (r *Reader) IsSouth() bool { return r.isSouth }

// Extract reads the declared map config and absorbs the derived map
// facts into the descriptor. Every failure is logged and degrades to
// base-game data.
func Extract(h archive.Handle, rec *modrecord.Report, logc *trace.Collector) {
	desc := rec.ModDesc
	if desc.MapConfigFile == nil {
		return
	}

	var fruitFile, growthFile, envFile *string
	fallbackKey := ""

	doc, err := h.ReadXML(*desc.MapConfigFile)
	if err != nil {
		logc.Warning("map config not readable", "file", *desc.MapConfigFile, "err", err)
	} else {
		fruitFile = customEntry(doc, "fruitTypes")
		growthFile = customEntry(doc, "growth")
		envFile = customEntry(doc, "environment")
		fallbackKey = baseGameKey(doc)
	}

	reader := NewReader(
		readOptional(h, fruitFile, logc),
		readOptional(h, growthFile, logc),
		readOptional(h, envFile, logc),
		fallbackKey,
	)

	desc.CropWeather = reader.Weather()
	desc.CropInfo = reader.Crops()
	desc.MapIsSouth = reader.IsSouth()
}

// customEntry returns the referenced filename for tag when the map
// config points at a file shipped inside the mod. Base-game references
// and missing declarations yield nil.
func customEntry(doc *etree.Document, tag string) *string {
	el := doc.FindElement("//" + tag)
	if el == nil {
		return nil
	}
	name := el.SelectAttrValue("filename", "")
	if name == "" || strings.HasPrefix(name, baseGamePrefix) {
		return nil
	}
	return &name
}

// baseGameKey extracts the stock map tag when the environment reference
// points into the base game ("" otherwise).
func baseGameKey(doc *etree.Document) string {
	el := doc.FindElement("//environment")
	if el == nil {
		return ""
	}
	name := el.SelectAttrValue("filename", "")
	if !strings.HasPrefix(name, baseGamePrefix) {
		return ""
	}
	return baseGameKeyPattern.FindString(name)
}

// readOptional reads a referenced support file, degrading to nil on any
// failure.
func readOptional(h archive.Handle, name *string, logc *trace.Collector) *string {
	if name == nil {
		return nil
	}
	text, err := h.ReadText(*name)
	if err != nil {
		logc.Warning("map support file not readable", "file", *name, "err", err)
		return nil
	}
	return &text
}

func (r *Reader) resolveWeather(environment *string, fallbackKey string) {
	doc := parsePayload(environment)
	if doc == nil {
		key := fallbackKey
		if _, ok := baseGameWeather[key]; !ok {
			key = defaultWeatherKey
		}
		r.weather = weatherForKey(key)
		return
	}

	if el := doc.FindElement("//latitude"); el != nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(el.Text()), 64); err == nil && v < 0 {
			r.isSouth = true
		}
	}

	r.weather = modrecord.CropWeather{}
	for _, season := range doc.FindElements("//season") {
		name := season.SelectAttrValue("name", "")
		if name == "" {
			continue
		}
		minTemp, maxTemp := 127, -127
		for _, variation := range season.FindElements(".//variation") {
			lo, loErr := strconv.Atoi(variation.SelectAttrValue("minTemperature", ""))
			hi, hiErr := strconv.Atoi(variation.SelectAttrValue("maxTemperature", ""))
			if loErr != nil || hiErr != nil {
				continue
			}
			minTemp = min(minTemp, lo)
			maxTemp = max(maxTemp, hi)
		}
		r.weather[name] = map[string]int{"min": minTemp, "max": maxTemp}
	}
}

func (r *Reader) resolveCrops(fruitTypes, growth *string) {
	growthDoc := parsePayload(growth)
	if growthDoc == nil {
		r.crops = append([]modrecord.Crop{}, baseGameCrops...)
		return
	}

	stages := parseStages(fruitTypes)
	byName := map[string]cropStages{}
	for _, s := range stages {
		byName[s.name] = s
	}

	crops := []modrecord.Crop{}
	for _, fruit := range growthDoc.FindElements("//fruit") {
		name := fruit.SelectAttrValue("name", "unknown")
		if _, skip := skipCropTypes[name]; skip {
			continue
		}
		stage, ok := byName[name]
		if !ok {
			continue
		}
		crops = append(crops, buildCalendar(fruit, stage))
	}
	r.crops = crops
}

// buildCalendar walks one fruit's period list and derives the months in
// which it can be planted and harvested. The growth state carried
// across periods starts at zero; an update that sets a state at or
// below the state count is a die-back, anything added on top extends
// the running maximum.
func buildCalendar(fruit *etree.Element, stage cropStages) modrecord.Crop {
	crop := modrecord.Crop{
		Name:           stage.name,
		GrowthTime:     stage.states,
		HarvestPeriods: []int{},
		PlantPeriods:   []int{},
	}

	lastMaxState := 0
	for _, period := range fruit.SelectElements("period") {
		index, err := strconv.Atoi(period.SelectAttrValue("index", ""))
		if err != nil || index == 0 {
			continue
		}

		if period.SelectAttrValue("plantingAllowed", "") == "true" {
			crop.PlantPeriods = append(crop.PlantPeriods, index)
		}

		dieBack := false
		for _, update := range period.SelectElements("update") {
			if update.SelectAttr("set") != nil {
				if set := decodeMaxRange(update.SelectAttrValue("range", "")); set <= stage.states {
					lastMaxState = set
					dieBack = true
				}
			}
			if add := update.SelectAttrValue("add", ""); add != "" && !dieBack {
				grown, _ := strconv.Atoi(add)
				lastMaxState = max(lastMaxState, decodeMaxRange(update.SelectAttrValue("range", ""))+grown)
			}
		}

		if lastMaxState >= stage.minHarvest && lastMaxState <= stage.maxHarvest {
			crop.HarvestPeriods = append(crop.HarvestPeriods, index)
		}
	}
	return crop
}

// parseStages reads the fruit-type definitions, falling back to the
// base-game stages when the payload is absent or malformed.
func parseStages(fruitTypes *string) []cropStages {
	doc := parsePayload(fruitTypes)
	if doc == nil {
		return baseGameStages
	}

	stages := []cropStages{}
	for _, el := range doc.FindElements("//fruitType") {
		name := el.SelectAttrValue("name", "unknown")
		if _, skip := skipCropTypes[name]; skip {
			continue
		}
		stage := cropStages{
			name:       name,
			minHarvest: childAttrInt(el, "harvest", "minHarvestingGrowthState", 20),
			maxHarvest: childAttrInt(el, "harvest", "maxHarvestingGrowthState", 20),
			states:     childAttrInt(el, "growth", "numGrowthStates", 20),
		}

		// Crops with a preparing step (cutting, defoliating) are
		// harvestable in the preparing window instead.
		for _, prep := range el.SelectElements("preparing") {
			if v := prep.SelectAttrValue("minGrowthState", ""); v != "" {
				if n, err := strconv.Atoi(v); err == nil {
					stage.minHarvest = n
				}
			}
			if v := prep.SelectAttrValue("maxGrowthState", ""); v != "" {
				if n, err := strconv.Atoi(v); err == nil {
					stage.maxHarvest = n
				}
			}
		}
		stages = append(stages, stage)
	}
	return stages
}

// childAttrInt returns the named attribute of the first child element
// with tag that carries it.
func childAttrInt(el *etree.Element, tag, attr string, fallback int) int {
	for _, child := range el.SelectElements(tag) {
		if v := child.SelectAttrValue(attr, ""); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return fallback
}

// decodeMaxRange decodes a period-update range attribute: "a-b" means
// the upper bound b, a bare number is itself, anything else is zero.
func decodeMaxRange(value string) int {
	if idx := strings.IndexByte(value, '-'); idx >= 0 {
		value = value[idx+1:]
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

// parsePayload parses an optional XML payload, yielding nil for absent
// or malformed input.
func parsePayload(payload *string) *etree.Document {
	if payload == nil {
		return nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(*payload); err != nil || doc.Root() == nil {
		return nil
	}
	return doc
}

// SPDX-License-Identifier: MPL-2.0

package mapdata

import "modvet/pkg/modrecord"

// defaultWeatherKey is the base-game map whose weather table is used
// when a map mod references no usable environment definition.
const defaultWeatherKey = "mapUS"

// skipCropTypes are growth entries that are not player-farmable crops.
var skipCropTypes = map[string]struct{}{
	"meadow":  {},
	"unknown": {},
}

// cropStages describes one crop's growth-state window: the number of
// growth states and the inclusive state range in which it is
// harvestable.
type cropStages struct {
	name       string
	minHarvest int
	maxHarvest int
	states     int
}

// baseGameStages are the stock crop growth definitions, used when a map
// mod does not ship its own fruit-type file.
var baseGameStages = []cropStages{
	{name: "wheat", minHarvest: 8, maxHarvest: 8, states: 8},
	{name: "barley", minHarvest: 7, maxHarvest: 7, states: 7},
	{name: "canola", minHarvest: 9, maxHarvest: 9, states: 9},
	{name: "oat", minHarvest: 5, maxHarvest: 5, states: 5},
	{name: "maize", minHarvest: 7, maxHarvest: 7, states: 7},
	{name: "sunflower", minHarvest: 8, maxHarvest: 8, states: 8},
	{name: "soybean", minHarvest: 7, maxHarvest: 7, states: 7},
	{name: "potato", minHarvest: 6, maxHarvest: 6, states: 6},
	{name: "sugarbeet", minHarvest: 8, maxHarvest: 8, states: 8},
	{name: "sugarcane", minHarvest: 8, maxHarvest: 8, states: 8},
	{name: "cotton", minHarvest: 9, maxHarvest: 9, states: 9},
	{name: "sorghum", minHarvest: 5, maxHarvest: 5, states: 5},
	{name: "grape", minHarvest: 10, maxHarvest: 11, states: 7},
	{name: "olive", minHarvest: 9, maxHarvest: 10, states: 7},
	{name: "poplar", minHarvest: 14, maxHarvest: 14, states: 14},
	{name: "grass", minHarvest: 3, maxHarvest: 4, states: 4},
	{name: "oilseedradish", minHarvest: 2, maxHarvest: 2, states: 2},
}

// baseGameCrops is the stock growth calendar, used when a map mod does
// not ship its own growth file. Periods are 1-based month indexes
// starting in March.
var baseGameCrops = []modrecord.Crop{
	{Name: "wheat", GrowthTime: 8, HarvestPeriods: []int{5, 6}, PlantPeriods: []int{7, 8}},
	{Name: "barley", GrowthTime: 7, HarvestPeriods: []int{4, 5}, PlantPeriods: []int{7, 8}},
	{Name: "canola", GrowthTime: 9, HarvestPeriods: []int{5, 6}, PlantPeriods: []int{6, 7}},
	{Name: "oat", GrowthTime: 5, HarvestPeriods: []int{5, 6}, PlantPeriods: []int{1, 2}},
	{Name: "maize", GrowthTime: 7, HarvestPeriods: []int{8, 9}, PlantPeriods: []int{2, 3}},
	{Name: "sunflower", GrowthTime: 8, HarvestPeriods: []int{8, 9}, PlantPeriods: []int{1, 2}},
	{Name: "soybean", GrowthTime: 7, HarvestPeriods: []int{8, 9}, PlantPeriods: []int{2, 3}},
	{Name: "potato", GrowthTime: 6, HarvestPeriods: []int{6, 7}, PlantPeriods: []int{1, 2}},
	{Name: "sugarbeet", GrowthTime: 8, HarvestPeriods: []int{8, 9}, PlantPeriods: []int{1, 2}},
	{Name: "sugarcane", GrowthTime: 8, HarvestPeriods: []int{8, 9}, PlantPeriods: []int{1, 2}},
	{Name: "cotton", GrowthTime: 9, HarvestPeriods: []int{8, 9}, PlantPeriods: []int{1, 12}},
	{Name: "sorghum", GrowthTime: 5, HarvestPeriods: []int{6, 7}, PlantPeriods: []int{2, 3}},
	{Name: "grape", GrowthTime: 7, HarvestPeriods: []int{7, 8}, PlantPeriods: []int{1, 2, 3}},
	{Name: "olive", GrowthTime: 7, HarvestPeriods: []int{8}, PlantPeriods: []int{1, 2, 3, 4}},
	{Name: "poplar", GrowthTime: 14, HarvestPeriods: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, PlantPeriods: []int{1, 2, 3, 4, 5, 6}},
	{Name: "grass", GrowthTime: 4, HarvestPeriods: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, PlantPeriods: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
	{Name: "oilseedradish", GrowthTime: 2, HarvestPeriods: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, PlantPeriods: []int{1, 2, 3, 4, 5, 6, 7, 8}},
}

// baseGameWeather holds the seasonal temperature ranges of the stock
// maps, keyed by base-game map tag.
var baseGameWeather = map[string]modrecord.CropWeather{
	"mapUS": {
		"spring": {"min": 6, "max": 18},
		"summer": {"min": 13, "max": 34},
		"autumn": {"min": 5, "max": 25},
		"winter": {"min": -11, "max": 10},
	},
	"mapFR": {
		"spring": {"min": 6, "max": 18},
		"summer": {"min": 13, "max": 34},
		"autumn": {"min": 5, "max": 25},
		"winter": {"min": -11, "max": 10},
	},
	"mapAlpine": {
		"spring": {"min": 5, "max": 18},
		"summer": {"min": 10, "max": 30},
		"autumn": {"min": 4, "max": 22},
		"winter": {"min": -12, "max": 8},
	},
}

// weatherForKey copies the base-game weather table for key. Unknown
// keys yield an empty table rather than nil so the report always
// carries a weather object once map extraction ran.
func weatherForKey(key string) modrecord.CropWeather {
	out := modrecord.CropWeather{}
	for season, temps := range baseGameWeather[key] {
		out[season] = map[string]int{"min": temps["min"], "max": temps["max"]}
	}
	return out
}

// SPDX-License-Identifier: MPL-2.0

// Package savegame extracts a farm summary from a save-game artifact's
// farms.xml. It runs its own mini pipeline with its own error codes;
// save games are not mods and share nothing with the mod flag set.
package savegame

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"modvet/internal/archive"
)

// Error codes carried in the record's errorList.
const (
	ErrUnreadable   = "SAVE_ERROR_UNREADABLE"
	ErrFarmsMissing = "SAVE_ERROR_MISSING_FARMS"
	ErrFarmsParse   = "SAVE_ERROR_PARSE_FARMS"
)

// farmsFile is the file a save game keeps its farm roster in.
const farmsFile = "farms.xml"

// unownedFarmID keys the synthetic entry for unowned land.
const unownedFarmID = 0

// Farm is one farm's financial summary.
type Farm struct {
	Name  string `json:"name"`
	Cash  int64  `json:"cash"`
	Loan  int64  `json:"loan"`
	Color int    `json:"color"`
}

// Record is the extraction result for one save game. IsValid is false
// whenever the error list is non-empty.
type Record struct {
	ErrorList  []string     `json:"errorList"`
	Farms      map[int]Farm `json:"farms"`
	IsValid    bool         `json:"isValid"`
	SingleFarm bool         `json:"singleFarm"`
}

func newRecord() *Record {
	return &Record{
		ErrorList: []string{},
		Farms: map[int]Farm{
			unownedFarmID: {Name: "--unowned--", Color: 1},
		},
		IsValid:    true,
		SingleFarm: true,
	}
}

func (r *Record) addIssue(code string) {
	r.IsValid = false
	r.ErrorList = append(r.ErrorList, code)
	sort.Strings(r.ErrorList)
}

// ToJSON renders the record as compact JSON.
func (r *Record) ToJSON() (string, error) {
	out, err := json.Marshal(r)
	return string(out), err
}

// ToJSONPretty renders the record as indented JSON.
func (r *Record) ToJSONPretty() (string, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	return string(out), err
}

// Parse opens the save-game artifact at path and extracts its farm
// roster. Failures are recorded on the result, never returned.
func Parse(path string, isFolder bool) *Record {
	rec := newRecord()

	h, err := archive.Open(path, isFolder)
	if err != nil {
		rec.addIssue(ErrUnreadable)
		return rec
	}
	defer h.Close()

	return ParseHandle(h)
}

// ParseHandle extracts the farm roster from an already-opened artifact.
func ParseHandle(h archive.Handle) *Record {
	rec := newRecord()

	doc, err := h.ReadXML(farmsFile)
	switch {
	case err == nil:
	case errors.Is(err, archive.ErrNotFound):
		rec.addIssue(ErrFarmsMissing)
		return rec
	default:
		rec.addIssue(ErrFarmsParse)
		return rec
	}

	for _, el := range doc.FindElements("//farm") {
		id, err := strconv.Atoi(el.SelectAttrValue("farmId", ""))
		if err != nil {
			continue
		}
		name := el.SelectAttrValue("name", "")
		if name == "" {
			continue
		}

		rec.Farms[id] = Farm{
			Name:  name,
			Cash:  attrMoney(el.SelectAttrValue("money", "")),
			Loan:  attrMoney(el.SelectAttrValue("loan", "")),
			Color: 1,
		}
	}

	rec.SingleFarm = len(rec.Farms) <= 2
	return rec
}

// attrMoney parses a currency attribute: the game writes floats, the
// record keeps whole units.
func attrMoney(value string) int64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

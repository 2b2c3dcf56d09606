package qd

import (
	"strings"

	"github.com/lab-visualizer/backend/internal/models"
)

// SegmentKind selects which segmentation algorithm a family uses.
type SegmentKind int

const (
	// SegmentTwoAxis detects temperature/field sweeps under drift
	// tolerances.
	SegmentTwoAxis SegmentKind = iota
	// SegmentDCTriggered closes a frequency-sweep run wherever the DC
	// moment readout is present (ACMS).
	SegmentDCTriggered
)

// Family is the per-instrument-family configuration driving the shared
// segmentation and mapping engine: record constructors, the map-column
// marker, and the default result projection table.
type Family struct {
	Name      string
	Segment   SegmentKind
	MapMarker string

	NewRecord func() models.DataRecord
	NewResult func() models.ResultRecord

	// ResultPaths maps source paths within a data record to result field
	// names.
	ResultPaths map[string]string
}

// Families holds the supported Quantum Design instrument families.
var Families = map[string]Family{
	"ETO": {
		Name:      "ETO",
		Segment:   SegmentTwoAxis,
		MapMarker: "ETO Channel",
		NewRecord: func() models.DataRecord { return &models.ETORecord{} },
		NewResult: func() models.ResultRecord { return &models.ETOResult{} },
		ResultPaths: map[string]string{
			"temperature":             "temperature",
			"magnetic_field":          "magnetic_field",
			"channels[0].resistance":  "resistance0",
			"channels[1].resistance":  "resistance1",
		},
	},
	"ACT": {
		Name:      "ACT",
		Segment:   SegmentTwoAxis,
		MapMarker: "Map",
		NewRecord: func() models.DataRecord { return &models.ACTRecord{} },
		NewResult: func() models.ResultRecord { return &models.ACTResult{} },
		ResultPaths: map[string]string{
			"temperature":             "temperature",
			"magnetic_field":          "magnetic_field",
			"channels[0].resistivity": "resistivity0",
			"channels[1].resistivity": "resistivity1",
		},
	},
	"ACMS": {
		Name:      "ACMS",
		Segment:   SegmentDCTriggered,
		MapMarker: "Map",
		NewRecord: func() models.DataRecord { return &models.ACMSRecord{} },
		NewResult: func() models.ResultRecord { return &models.ACMSResult{} },
		ResultPaths: map[string]string{
			"temperature":              "temperature",
			"magnetic_field":           "magnetic_field",
			"excitation":               "excitation",
			"frequency":                "frequency",
			"moment":                   "moment",
			"moment_derivative":        "moment_derivative",
			"moment_second_derivative": "moment_second_derivative",
		},
	},
	"MPMS": {
		Name:      "MPMS",
		Segment:   SegmentTwoAxis,
		MapMarker: "Map",
		NewRecord: func() models.DataRecord { return &models.MPMSRecord{} },
		NewResult: func() models.ResultRecord { return &models.MPMSResult{} },
		ResultPaths: map[string]string{
			"temperature":    "temperature",
			"magnetic_field": "magnetic_field",
			"moment":         "moment",
		},
	},
	"Resistivity": {
		Name:      "Resistivity",
		Segment:   SegmentTwoAxis,
		MapMarker: "Map",
		NewRecord: func() models.DataRecord { return &models.ResistivityRecord{} },
		NewResult: func() models.ResultRecord { return &models.ResistivityResult{} },
		ResultPaths: map[string]string{
			"temperature":          "temperature",
			"magnetic_field":       "magnetic_field",
			"bridge_1_resistivity": "bridge_1_resistivity",
			"bridge_2_resistivity": "bridge_2_resistivity",
		},
	},
}

// FamilyForApp picks the instrument family from the BYAPP header value.
func FamilyForApp(byapp string) (Family, bool) {
	app := strings.ToLower(byapp)
	switch {
	case strings.Contains(app, "eto"), strings.Contains(app, "electrical transport"):
		return Families["ETO"], true
	case strings.Contains(app, "acms"):
		return Families["ACMS"], true
	case strings.Contains(app, "mpms"), strings.Contains(app, "squid"):
		return Families["MPMS"], true
	case strings.Contains(app, "resistivity"):
		return Families["Resistivity"], true
	case strings.Contains(app, "act"):
		return Families["ACT"], true
	}
	return Family{}, false
}

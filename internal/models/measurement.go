package models

import "time"

// Sample is the INFO SAMPLEn_* metadata block from a measurement header.
type Sample struct {
	Name           string `json:"name,omitempty"`
	Type           string `json:"type,omitempty"`
	Material       string `json:"material,omitempty"`
	Comment        string `json:"comment,omitempty"`
	LeadSeparation string `json:"leadSeparation,omitempty"`
	CrossSection   string `json:"crossSection,omitempty"`
}

// Measurement is the full parse result for one instrument data file:
// header metadata, the reconstructed step sequence, per-run data records
// and their flattened result projections.
type Measurement struct {
	FileID   string `json:"fileId,omitempty"`
	FileName string `json:"fileName"`
	Family   string `json:"family"`
	Software string `json:"software,omitempty"`

	// OpenTime is nil when FILEOPENTIME was absent or in no accepted
	// format.
	OpenTime *time.Time `json:"openTime,omitempty"`

	Samples []Sample `json:"samples,omitempty"`

	TemperatureTolerance float64 `json:"temperatureTolerance"` // K
	FieldTolerance       float64 `json:"fieldTolerance"`       // Oe

	// Steps come from the companion sequence file when one is present,
	// otherwise they are reconstructed from the data table.
	Steps             []Step `json:"steps"`
	StepsFromSequence bool   `json:"stepsFromSequence"`

	Runs    []Run          `json:"runs"`
	Data    []DataRecord   `json:"data"`
	Results []ResultRecord `json:"results"`

	Warnings []ParseError `json:"warnings,omitempty"`
}

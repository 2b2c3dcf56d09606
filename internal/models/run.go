package models

import (
	"fmt"
	"strconv"
)

// SweepType identifies which axis varies within a run.
type SweepType string

const (
	SweepUndefined   SweepType = "undefined"
	SweepTemperature SweepType = "temperature"
	SweepField       SweepType = "field"
	SweepFrequency   SweepType = "frequency"
	SweepAmplitude   SweepType = "amplitude"
)

// Run is a maximal contiguous index range [Start, End) over the raw table
// sharing one sweep type. Representative values are display-rounded at the
// boundary; they never feed back into segmentation.
type Run struct {
	Type  SweepType `json:"type"`
	Start int       `json:"start"`
	End   int       `json:"end"`

	// Value is the representative value of the steady axis: the field
	// (rounded to the nearest 10) for temperature sweeps, the temperature
	// (rounded to one decimal) for field sweeps. Invalid when the sweep
	// type stayed undefined.
	Value Float `json:"value"`

	// Tuple holds the (temperature, field, frequency, amplitude)
	// representative values for multi-axis instruments such as ACMS.
	Tuple []float64 `json:"tuple,omitempty"`
}

// DisplayName builds the human-readable run name used for record naming.
func (r Run) DisplayName() string {
	switch r.Type {
	case SweepTemperature:
		return fmt.Sprintf("Temperature sweep at %s Oe.", fnum(r.Value.Value))
	case SweepField:
		return fmt.Sprintf("Field sweep at %s K.", fnum(r.Value.Value))
	case SweepFrequency:
		if len(r.Tuple) == 4 {
			return fmt.Sprintf(
				"Frequency sweep at Temperature %s K, Field %s Oe, and Amplitude %s Oe.",
				fnum(r.Tuple[0]), fnum(r.Tuple[1]), fnum(r.Tuple[3]))
		}
	case SweepAmplitude:
		if len(r.Tuple) == 4 {
			return fmt.Sprintf(
				"Amplitude sweep at Temperature %s K, Field %s Oe, and Frequency %s Hz.",
				fnum(r.Tuple[0]), fnum(r.Tuple[1]), fnum(r.Tuple[2]))
		}
	}
	return "Measurement run."
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

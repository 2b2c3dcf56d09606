package models

// StepKind classifies one instruction of a command sequence.
type StepKind string

const (
	StepRemark           StepKind = "remark"
	StepWait             StepKind = "wait"
	StepSetPosition      StepKind = "set_position"
	StepSetTemperature   StepKind = "set_temperature"
	StepSetMagneticField StepKind = "set_magnetic_field"
	StepScanField        StepKind = "scan_field"
	StepScanFieldEnd     StepKind = "scan_field_end"
	StepScanTemp         StepKind = "scan_temp"
	StepScanTempEnd      StepKind = "scan_temp_end"
	StepACTResistance    StepKind = "act_resistance"
	StepETOResistance    StepKind = "eto_resistance"
	StepGeneric          StepKind = "generic"
)

// StepMeta carries the fields every step has. Concrete step types embed it.
type StepMeta struct {
	Kind StepKind `json:"kind"`
	Name string   `json:"name"`
}

// Meta implements Step.
func (m StepMeta) Meta() StepMeta { return m }

// Step is one instruction in a command sequence, immutable once built.
type Step interface {
	Meta() StepMeta
}

// GenericStep is a step reconstructed from the data table rather than a
// sequence file; only its name is known.
type GenericStep struct {
	StepMeta
}

// RemarkStep is a free-text remark line.
type RemarkStep struct {
	StepMeta
	Remark string `json:"remark"`
}

// WaitStep pauses the sequence until its conditions settle.
type WaitStep struct {
	StepMeta
	DelaySeconds         float64 `json:"delaySeconds"`
	ConditionTemperature bool    `json:"conditionTemperature"`
	ConditionField       bool    `json:"conditionField"`
	ConditionPosition    bool    `json:"conditionPosition"`
	ConditionChamber     bool    `json:"conditionChamber"`
	OnError              string  `json:"onError"`
}

// SetPositionStep moves the sample rotator.
type SetPositionStep struct {
	StepMeta
	Position float64 `json:"position"` // degree
	Rate     float64 `json:"rate"`     // degree/s
	Mode     string  `json:"mode"`
}

// SetTemperatureStep drives the cryostat to a setpoint.
type SetTemperatureStep struct {
	StepMeta
	Setpoint float64 `json:"setpoint"` // K
	Rate     float64 `json:"rate"`     // K/s, converted from the K/min in the file
	Mode     string  `json:"mode"`
}

// SetMagneticFieldStep drives the magnet to a setpoint.
type SetMagneticFieldStep struct {
	StepMeta
	Setpoint float64 `json:"setpoint"` // Oe
	Rate     float64 `json:"rate"`     // Oe/min, as recorded
	Approach string  `json:"approach"`
	EndMode  string  `json:"endMode"`
}

// ScanFieldStep opens a field scan loop.
type ScanFieldStep struct {
	StepMeta
	InitialField  float64 `json:"initialField"` // Oe
	FinalField    float64 `json:"finalField"`   // Oe
	Rate          float64 `json:"rate"`         // Oe/min
	NumberOfSteps int     `json:"numberOfSteps"`
	SpacingCode   string  `json:"spacingCode"`
	Approach      string  `json:"approach"`
	EndMode       string  `json:"endMode"`
}

// ScanFieldEndStep closes a field scan loop.
type ScanFieldEndStep struct {
	StepMeta
}

// ScanTempStep opens a temperature scan loop.
type ScanTempStep struct {
	StepMeta
	InitialTemp   float64 `json:"initialTemp"` // K
	FinalTemp     float64 `json:"finalTemp"`   // K
	Rate          float64 `json:"rate"`        // K/s
	NumberOfSteps int     `json:"numberOfSteps"`
	SpacingCode   string  `json:"spacingCode"`
	Approach      string  `json:"approach"`
}

// ScanTempEndStep closes a temperature scan loop.
type ScanTempEndStep struct {
	StepMeta
}

// ACTResistanceStep configures an AC Transport resistance measurement.
// Parameters are per-channel parallel pairs.
type ACTResistanceStep struct {
	StepMeta
	MeasurementActive   [2]bool    `json:"measurementActive"`
	Excitation          [2]float64 `json:"excitation"` // A
	Frequency           [2]float64 `json:"frequency"`  // Hz
	Duration            [2]float64 `json:"duration"`   // s
	ConstantCurrentMode [2]bool    `json:"constantCurrentMode"`
	LowResistanceMode   [2]bool    `json:"lowResistanceMode"`
	Autorange           [2]string  `json:"autorange"`
	FixedGain           [2]float64 `json:"fixedGain"` // V
}

// ETOResistanceStep configures an Electrical Transport Option measurement.
// Parameters are per-channel parallel pairs; the on-disk encoding is
// variable width per channel.
type ETOResistanceStep struct {
	StepMeta
	Mode                 [2]string  `json:"mode"`
	ExcitationAmplitude  [2]float64 `json:"excitationAmplitude"` // A or V
	ExcitationFrequency  [2]float64 `json:"excitationFrequency"` // Hz
	SampleWiring         [2]string  `json:"sampleWiring"`
	PreampAutorange      [2]bool    `json:"preampAutorange"`
	AveragingTime        [2]float64 `json:"averagingTime"` // s
	NumberOfMeasurements [2]int     `json:"numberOfMeasurements"`
}

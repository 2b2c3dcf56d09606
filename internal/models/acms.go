package models

// ACMSRecord is one run of an AC Measurement System magnetometry run.
// ACMS tables have no channel columns; susceptibility readouts land in
// scalar series and free-form map columns.
type ACMSRecord struct {
	RecordBase

	Frequency              Series `json:"frequency,omitempty"`
	Amplitude              Series `json:"amplitude,omitempty"`
	MomentDC               Series `json:"momentDc,omitempty"`
	MomentStdErr           Series `json:"momentStdErr,omitempty"`
	MomentDerivative       Series `json:"momentDerivative,omitempty"`
	MomentSecondDerivative Series `json:"momentSecondDerivative,omitempty"`
	Moment                 Series `json:"moment,omitempty"`
	Phase                  Series `json:"phase,omitempty"`
	CalcoilDerivative       Series `json:"calcoilDerivative,omitempty"`
	CalcoilSecondDerivative Series `json:"calcoilSecondDerivative,omitempty"`
	Calcoil                Series `json:"calcoil,omitempty"`
	CCPhase                Series `json:"ccPhase,omitempty"`
	Count                  Series `json:"count,omitempty"`
	Gain                   Series `json:"gain,omitempty"`
	MeasureType            Series `json:"measureType,omitempty"`
	Elapsed                Series `json:"elapsed,omitempty"`
	SampleCenter           Series `json:"sampleCenter,omitempty"`
	MaxSignal              Series `json:"maxSignal,omitempty"`
	PPMSStatus             Series `json:"ppmsStatus,omitempty"`
	DSPStatus              Series `json:"dspStatus,omitempty"`
	MinTemperature         Series `json:"minTemperature,omitempty"`
	MaxTemperature         Series `json:"maxTemperature,omitempty"`
	MinField               Series `json:"minField,omitempty"`
	MaxField               Series `json:"maxField,omitempty"`
	DCPosition             Series `json:"dcPosition,omitempty"`
	PPMSTemperature        Series `json:"ppmsTemperature,omitempty"`
	PPMSPosition           Series `json:"ppmsPosition,omitempty"`
	Pressure               Series `json:"pressure,omitempty"`

	Maps []*MapRecord `json:"maps,omitempty"`
}

// Fields implements Record.
func (r *ACMSRecord) Fields() map[string]*Series {
	return r.baseFields(map[string]*Series{
		"frequency":                 &r.Frequency,
		"amplitude":                 &r.Amplitude,
		"moment_dc":                 &r.MomentDC,
		"moment_std_err":            &r.MomentStdErr,
		"moment_derivative":         &r.MomentDerivative,
		"moment_second_derivative":  &r.MomentSecondDerivative,
		"moment":                    &r.Moment,
		"phase":                     &r.Phase,
		"calcoil_derivative":        &r.CalcoilDerivative,
		"calcoil_second_derivative": &r.CalcoilSecondDerivative,
		"calcoil":                   &r.Calcoil,
		"cc_phase":                  &r.CCPhase,
		"count":                     &r.Count,
		"gain":                      &r.Gain,
		"measure_type":              &r.MeasureType,
		"elapsed":                   &r.Elapsed,
		"sample_center":             &r.SampleCenter,
		"max_signal":                &r.MaxSignal,
		"ppms_status":               &r.PPMSStatus,
		"dsp_status":                &r.DSPStatus,
		"min_temperature":           &r.MinTemperature,
		"max_temperature":           &r.MaxTemperature,
		"min_field":                 &r.MinField,
		"max_field":                 &r.MaxField,
		"dc_position":               &r.DCPosition,
		"ppms_temperature":          &r.PPMSTemperature,
		"ppms_position":             &r.PPMSPosition,
		"pressure":                  &r.Pressure,
	})
}

// AddMap implements MapOwner.
func (r *ACMSRecord) AddMap(name string, data Series) {
	r.Maps = append(r.Maps, &MapRecord{Name: name, Data: data})
}

// Subrecords implements DataRecord.
func (r *ACMSRecord) Subrecords(name string) []Record {
	if name == "maps" {
		return subrecords(r.Maps)
	}
	return nil
}

// ACMSResult is the flattened per-run projection for ACMS measurements.
type ACMSResult struct {
	ResultBase

	Temperature            Series `json:"temperature,omitempty"`
	MagneticField          Series `json:"magneticField,omitempty"`
	Excitation             Series `json:"excitation,omitempty"`
	Frequency              Series `json:"frequency,omitempty"`
	Moment                 Series `json:"moment,omitempty"`
	MomentDerivative       Series `json:"momentDerivative,omitempty"`
	MomentSecondDerivative Series `json:"momentSecondDerivative,omitempty"`
}

// Fields implements Record.
func (r *ACMSResult) Fields() map[string]*Series {
	return map[string]*Series{
		"temperature":              &r.Temperature,
		"magnetic_field":           &r.MagneticField,
		"excitation":               &r.Excitation,
		"frequency":                &r.Frequency,
		"moment":                   &r.Moment,
		"moment_derivative":        &r.MomentDerivative,
		"moment_second_derivative": &r.MomentSecondDerivative,
	}
}

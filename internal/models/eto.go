package models

// ETORecord is one run of an Electrical Transport Option measurement.
type ETORecord struct {
	RecordBase

	SamplePosition     Series `json:"samplePosition,omitempty"`
	ChamberPressure    Series `json:"chamberPressure,omitempty"`
	ETOMeasurementMode Series `json:"etoMeasurementMode,omitempty"`
	TemperatureStatus  Series `json:"temperatureStatus,omitempty"`
	FieldStatus        Series `json:"fieldStatus,omitempty"`
	ChamberStatus      Series `json:"chamberStatus,omitempty"`
	ETOStatusCode      Series `json:"etoStatusCode,omitempty"`

	Channels []*ETOChannel `json:"channels,omitempty"`
	Maps     []*MapRecord  `json:"maps,omitempty"`
}

// ETOChannel holds the per-lead-pair columns of an ETO run.
type ETOChannel struct {
	Name string `json:"name"`

	Resistance        Series `json:"resistance,omitempty"`
	ResistanceStdDev  Series `json:"resistanceStdDev,omitempty"`
	PhaseAngle        Series `json:"phaseAngle,omitempty"`
	IVCurrent         Series `json:"ivCurrent,omitempty"`
	IVVoltage         Series `json:"ivVoltage,omitempty"`
	Frequency         Series `json:"frequency,omitempty"`
	AveragingTime     Series `json:"averagingTime,omitempty"`
	ACCurrent         Series `json:"acCurrent,omitempty"`
	DCCurrent         Series `json:"dcCurrent,omitempty"`
	CurrentAmpl       Series `json:"currentAmpl,omitempty"`
	InPhaseCurrent    Series `json:"inPhaseCurrent,omitempty"`
	QuadratureCurrent Series `json:"quadratureCurrent,omitempty"`
	Gain              Series `json:"gain,omitempty"`
	SecondHarmonic    Series `json:"secondHarmonic,omitempty"`
	ThirdHarmonic     Series `json:"thirdHarmonic,omitempty"`
}

// Fields implements Record.
func (c *ETOChannel) Fields() map[string]*Series {
	return map[string]*Series{
		"resistance":         &c.Resistance,
		"resistance std dev": &c.ResistanceStdDev,
		"phase angle":        &c.PhaseAngle,
		"i v current":        &c.IVCurrent,
		"i v voltage":        &c.IVVoltage,
		"frequency":          &c.Frequency,
		"averaging time":     &c.AveragingTime,
		"ac current":         &c.ACCurrent,
		"dc current":         &c.DCCurrent,
		"current ampl":       &c.CurrentAmpl,
		"in phase current":   &c.InPhaseCurrent,
		"quadrature current": &c.QuadratureCurrent,
		"gain":               &c.Gain,
		"second harmonic":    &c.SecondHarmonic,
		"third harmonic":     &c.ThirdHarmonic,
	}
}

// Fields implements Record.
func (r *ETORecord) Fields() map[string]*Series {
	return r.baseFields(map[string]*Series{
		"sample_position":      &r.SamplePosition,
		"chamber_pressure":     &r.ChamberPressure,
		"eto_measurement_mode": &r.ETOMeasurementMode,
		"temperature_status":   &r.TemperatureStatus,
		"field_status":         &r.FieldStatus,
		"chamber_status":       &r.ChamberStatus,
		"eto_status_code":      &r.ETOStatusCode,
	})
}

// AddChannel implements ChannelOwner.
func (r *ETORecord) AddChannel(name string) Record {
	ch := &ETOChannel{Name: name}
	r.Channels = append(r.Channels, ch)
	return ch
}

// AddMap implements MapOwner.
func (r *ETORecord) AddMap(name string, data Series) {
	r.Maps = append(r.Maps, &MapRecord{Name: name, Data: data})
}

// Subrecords implements DataRecord.
func (r *ETORecord) Subrecords(name string) []Record {
	switch name {
	case "channels":
		return subrecords(r.Channels)
	case "maps":
		return subrecords(r.Maps)
	}
	return nil
}

// ETOResult is the flattened per-run projection for ETO measurements.
type ETOResult struct {
	ResultBase

	Temperature   Series `json:"temperature,omitempty"`
	MagneticField Series `json:"magneticField,omitempty"`
	Resistance0   Series `json:"resistance0,omitempty"`
	Resistance1   Series `json:"resistance1,omitempty"`
}

// Fields implements Record.
func (r *ETOResult) Fields() map[string]*Series {
	return map[string]*Series{
		"temperature":    &r.Temperature,
		"magnetic_field": &r.MagneticField,
		"resistance0":    &r.Resistance0,
		"resistance1":    &r.Resistance1,
	}
}

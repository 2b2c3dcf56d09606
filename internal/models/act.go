package models

// ACTRecord is one run of an AC Transport measurement.
type ACTRecord struct {
	RecordBase

	Status           Series `json:"status,omitempty"`
	SamplePosition   Series `json:"samplePosition,omitempty"`
	Excitation       Series `json:"excitation,omitempty"`
	Frequency        Series `json:"frequency,omitempty"`
	ACTStatus        Series `json:"actStatus,omitempty"`
	ACTGain          Series `json:"actGain,omitempty"`
	Bridge1Resistance Series `json:"bridge1Resistance,omitempty"`
	Bridge2Resistance Series `json:"bridge2Resistance,omitempty"`
	Bridge3Resistance Series `json:"bridge3Resistance,omitempty"`
	Bridge4Resistance Series `json:"bridge4Resistance,omitempty"`
	Bridge1Excitation Series `json:"bridge1Excitation,omitempty"`
	Bridge2Excitation Series `json:"bridge2Excitation,omitempty"`
	Bridge3Excitation Series `json:"bridge3Excitation,omitempty"`
	Bridge4Excitation Series `json:"bridge4Excitation,omitempty"`
	Signal1Vin       Series `json:"signal1Vin,omitempty"`
	Signal2Vin       Series `json:"signal2Vin,omitempty"`
	DigitalInputs    Series `json:"digitalInputs,omitempty"`
	Drive1Iout       Series `json:"drive1Iout,omitempty"`
	Drive2Iout       Series `json:"drive2Iout,omitempty"`
	Drive1Ipower     Series `json:"drive1Ipower,omitempty"`
	Drive2Ipower     Series `json:"drive2Ipower,omitempty"`
	Pressure         Series `json:"pressure,omitempty"`

	Channels []*ACTChannel `json:"channels,omitempty"`
	Maps     []*MapRecord  `json:"maps,omitempty"`
}

// ACTChannel holds the per-channel columns of an ACT run.
type ACTChannel struct {
	Name string `json:"name"`

	Volts             Series `json:"volts,omitempty"`
	VStdDev           Series `json:"vStdDev,omitempty"`
	Resistivity       Series `json:"resistivity,omitempty"`
	ResistivityStdDev Series `json:"resistivityStdDev,omitempty"`
	Hall              Series `json:"hall,omitempty"`
	HallStdDev        Series `json:"hallStdDev,omitempty"`
	CritCur           Series `json:"critCur,omitempty"`
	CritCurStdDev     Series `json:"critCurStdDev,omitempty"`
	SecondHarmonic    Series `json:"secondHarmonic,omitempty"`
	ThirdHarmonic     Series `json:"thirdHarmonic,omitempty"`
	QuadError         Series `json:"quadError,omitempty"`
	DriveSignal       Series `json:"driveSignal,omitempty"`
}

// Fields implements Record.
func (c *ACTChannel) Fields() map[string]*Series {
	return map[string]*Series{
		"volts":               &c.Volts,
		"v std dev":           &c.VStdDev,
		"resistivity":         &c.Resistivity,
		"resistivity std dev": &c.ResistivityStdDev,
		"hall":                &c.Hall,
		"hall std dev":        &c.HallStdDev,
		"crit cur":            &c.CritCur,
		"crit cur std dev":    &c.CritCurStdDev,
		"second harmonic":     &c.SecondHarmonic,
		"third harmonic":      &c.ThirdHarmonic,
		"quad error":          &c.QuadError,
		"drive signal":        &c.DriveSignal,
	}
}

// Fields implements Record.
func (r *ACTRecord) Fields() map[string]*Series {
	return r.baseFields(map[string]*Series{
		"status":              &r.Status,
		"sample_position":     &r.SamplePosition,
		"excitation":          &r.Excitation,
		"frequency":           &r.Frequency,
		"act_status":          &r.ACTStatus,
		"act_gain":            &r.ACTGain,
		"bridge_1_resistance": &r.Bridge1Resistance,
		"bridge_2_resistance": &r.Bridge2Resistance,
		"bridge_3_resistance": &r.Bridge3Resistance,
		"bridge_4_resistance": &r.Bridge4Resistance,
		"bridge_1_excitation": &r.Bridge1Excitation,
		"bridge_2_excitation": &r.Bridge2Excitation,
		"bridge_3_excitation": &r.Bridge3Excitation,
		"bridge_4_excitation": &r.Bridge4Excitation,
		"signal_1_vin":        &r.Signal1Vin,
		"signal_2_vin":        &r.Signal2Vin,
		"digital_inputs":      &r.DigitalInputs,
		"drive_1_iout":        &r.Drive1Iout,
		"drive_2_iout":        &r.Drive2Iout,
		"drive_1_ipower":      &r.Drive1Ipower,
		"drive_2_ipower":      &r.Drive2Ipower,
		"pressure":            &r.Pressure,
	})
}

// AddChannel implements ChannelOwner.
func (r *ACTRecord) AddChannel(name string) Record {
	ch := &ACTChannel{Name: name}
	r.Channels = append(r.Channels, ch)
	return ch
}

// AddMap implements MapOwner.
func (r *ACTRecord) AddMap(name string, data Series) {
	r.Maps = append(r.Maps, &MapRecord{Name: name, Data: data})
}

// Subrecords implements DataRecord.
func (r *ACTRecord) Subrecords(name string) []Record {
	switch name {
	case "channels":
		return subrecords(r.Channels)
	case "maps":
		return subrecords(r.Maps)
	}
	return nil
}

// ACTResult is the flattened per-run projection for ACT measurements.
type ACTResult struct {
	ResultBase

	Temperature   Series `json:"temperature,omitempty"`
	MagneticField Series `json:"magneticField,omitempty"`
	Resistivity0  Series `json:"resistivity0,omitempty"`
	Resistivity1  Series `json:"resistivity1,omitempty"`
}

// Fields implements Record.
func (r *ACTResult) Fields() map[string]*Series {
	return map[string]*Series{
		"temperature":    &r.Temperature,
		"magnetic_field": &r.MagneticField,
		"resistivity0":   &r.Resistivity0,
		"resistivity1":   &r.Resistivity1,
	}
}

package models

// ResistivityRecord is one run of a four-bridge resistivity measurement.
// All readouts are scalar columns; there are no channel or map columns.
type ResistivityRecord struct {
	RecordBase

	Status           Series `json:"status,omitempty"`
	SamplePosition   Series `json:"samplePosition,omitempty"`
	NumberOfReadings Series `json:"numberOfReadings,omitempty"`

	Bridge1Resistance  Series `json:"bridge1Resistance,omitempty"`
	Bridge1Resistivity Series `json:"bridge1Resistivity,omitempty"`
	Bridge1StdDev      Series `json:"bridge1StdDev,omitempty"`
	Bridge1Excitation  Series `json:"bridge1Excitation,omitempty"`
	Bridge2Resistance  Series `json:"bridge2Resistance,omitempty"`
	Bridge2Resistivity Series `json:"bridge2Resistivity,omitempty"`
	Bridge2StdDev      Series `json:"bridge2StdDev,omitempty"`
	Bridge2Excitation  Series `json:"bridge2Excitation,omitempty"`
	Bridge3Resistance  Series `json:"bridge3Resistance,omitempty"`
	Bridge3Resistivity Series `json:"bridge3Resistivity,omitempty"`
	Bridge3StdDev      Series `json:"bridge3StdDev,omitempty"`
	Bridge3Excitation  Series `json:"bridge3Excitation,omitempty"`
	Bridge4Resistance  Series `json:"bridge4Resistance,omitempty"`
	Bridge4Resistivity Series `json:"bridge4Resistivity,omitempty"`
	Bridge4StdDev      Series `json:"bridge4StdDev,omitempty"`
	Bridge4Excitation  Series `json:"bridge4Excitation,omitempty"`
}

// Fields implements Record.
func (r *ResistivityRecord) Fields() map[string]*Series {
	return r.baseFields(map[string]*Series{
		"status":               &r.Status,
		"sample_position":      &r.SamplePosition,
		"number_of_readings":   &r.NumberOfReadings,
		"bridge_1_resistance":  &r.Bridge1Resistance,
		"bridge_1_resistivity": &r.Bridge1Resistivity,
		"bridge_1_std_dev":     &r.Bridge1StdDev,
		"bridge_1_excitation":  &r.Bridge1Excitation,
		"bridge_2_resistance":  &r.Bridge2Resistance,
		"bridge_2_resistivity": &r.Bridge2Resistivity,
		"bridge_2_std_dev":     &r.Bridge2StdDev,
		"bridge_2_excitation":  &r.Bridge2Excitation,
		"bridge_3_resistance":  &r.Bridge3Resistance,
		"bridge_3_resistivity": &r.Bridge3Resistivity,
		"bridge_3_std_dev":     &r.Bridge3StdDev,
		"bridge_3_excitation":  &r.Bridge3Excitation,
		"bridge_4_resistance":  &r.Bridge4Resistance,
		"bridge_4_resistivity": &r.Bridge4Resistivity,
		"bridge_4_std_dev":     &r.Bridge4StdDev,
		"bridge_4_excitation":  &r.Bridge4Excitation,
	})
}

// Subrecords implements DataRecord.
func (r *ResistivityRecord) Subrecords(string) []Record { return nil }

// ResistivityResult is the flattened per-run projection for resistivity
// measurements.
type ResistivityResult struct {
	ResultBase

	Temperature        Series `json:"temperature,omitempty"`
	MagneticField      Series `json:"magneticField,omitempty"`
	Bridge1Resistivity Series `json:"bridge1Resistivity,omitempty"`
	Bridge2Resistivity Series `json:"bridge2Resistivity,omitempty"`
}

// Fields implements Record.
func (r *ResistivityResult) Fields() map[string]*Series {
	return map[string]*Series{
		"temperature":          &r.Temperature,
		"magnetic_field":       &r.MagneticField,
		"bridge_1_resistivity": &r.Bridge1Resistivity,
		"bridge_2_resistivity": &r.Bridge2Resistivity,
	}
}

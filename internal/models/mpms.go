package models

// MPMSRecord is one run of an MPMS SQUID magnetometry measurement.
type MPMSRecord struct {
	RecordBase

	Moment                 Series `json:"moment,omitempty"`
	MomentStdErr           Series `json:"momentStdErr,omitempty"`
	TransportAction        Series `json:"transportAction,omitempty"`
	AveragingTime          Series `json:"averagingTime,omitempty"`
	Frequency              Series `json:"frequency,omitempty"`
	PeakAmplitude          Series `json:"peakAmplitude,omitempty"`
	CenterPosition         Series `json:"centerPosition,omitempty"`
	LockinSignalDerivative Series `json:"lockinSignalDerivative,omitempty"`
	LockinSignal           Series `json:"lockinSignal,omitempty"`
	Range                  Series `json:"range,omitempty"`
	MomentQuadSignal       Series `json:"momentQuadSignal,omitempty"`
	MinTemperature         Series `json:"minTemperature,omitempty"`
	MaxTemperature         Series `json:"maxTemperature,omitempty"`
	MinField               Series `json:"minField,omitempty"`
	MaxField               Series `json:"maxField,omitempty"`
	Mass                   Series `json:"mass,omitempty"`
	MotorLag               Series `json:"motorLag,omitempty"`
	Pressure               Series `json:"pressure,omitempty"`
	MeasureCount           Series `json:"measureCount,omitempty"`
	MeasurementNumber      Series `json:"measurementNumber,omitempty"`
	SquidStatus            Series `json:"squidStatus,omitempty"`
	MotorStatus            Series `json:"motorStatus,omitempty"`
	MeasureStatus          Series `json:"measureStatus,omitempty"`
	MotorCurrent           Series `json:"motorCurrent,omitempty"`
	MotorTemperature       Series `json:"motorTemperature,omitempty"`
	TemperatureStatus      Series `json:"temperatureStatus,omitempty"`
	FieldStatus            Series `json:"fieldStatus,omitempty"`
	ChamberStatus          Series `json:"chamberStatus,omitempty"`
	ChamberTemp            Series `json:"chamberTemp,omitempty"`
	AverageTemp            Series `json:"averageTemp,omitempty"`
	RotationAngle          Series `json:"rotationAngle,omitempty"`
	RotatorState           Series `json:"rotatorState,omitempty"`
	SamplePosition         Series `json:"samplePosition,omitempty"`
	ChamberPressure        Series `json:"chamberPressure,omitempty"`

	Maps   []*MapRecord  `json:"maps,omitempty"`
	DCData *MPMSDCRecord `json:"dcData,omitempty"`
}

// MPMSDCRecord is the singular DC-fit sub-record of an MPMS run,
// populated from the full column set of the run's block.
type MPMSDCRecord struct {
	DCMomentFixedCtr     Series `json:"dcMomentFixedCtr,omitempty"`
	DCMomentErrFixedCtr  Series `json:"dcMomentErrFixedCtr,omitempty"`
	DCMomentFreeCtr      Series `json:"dcMomentFreeCtr,omitempty"`
	DCMomentErrFreeCtr   Series `json:"dcMomentErrFreeCtr,omitempty"`
	DCFixedFit           Series `json:"dcFixedFit,omitempty"`
	DCFreeFit            Series `json:"dcFreeFit,omitempty"`
	DCCalculatedCenter   Series `json:"dcCalculatedCenter,omitempty"`
	DCCalculatedCenterErr Series `json:"dcCalculatedCenterErr,omitempty"`
	DCScanLength         Series `json:"dcScanLength,omitempty"`
	DCScanTime           Series `json:"dcScanTime,omitempty"`
	DCNumberOfPoints     Series `json:"dcNumberOfPoints,omitempty"`
	DCSquidDrift         Series `json:"dcSquidDrift,omitempty"`
	DCMinV               Series `json:"dcMinV,omitempty"`
	DCMaxV               Series `json:"dcMaxV,omitempty"`
	DCScansPerMeasure    Series `json:"dcScansPerMeasure,omitempty"`
}

// Fields implements Record.
func (d *MPMSDCRecord) Fields() map[string]*Series {
	return map[string]*Series{
		"dc_moment_fixed_ctr":      &d.DCMomentFixedCtr,
		"dc_moment_err_fixed_ctr":  &d.DCMomentErrFixedCtr,
		"dc_moment_free_ctr":       &d.DCMomentFreeCtr,
		"dc_moment_err_free_ctr":   &d.DCMomentErrFreeCtr,
		"dc_fixed_fit":             &d.DCFixedFit,
		"dc_free_fit":              &d.DCFreeFit,
		"dc_calculated_center":     &d.DCCalculatedCenter,
		"dc_calculated_center_err": &d.DCCalculatedCenterErr,
		"dc_scan_length":           &d.DCScanLength,
		"dc_scan_time":             &d.DCScanTime,
		"dc_number_of_points":      &d.DCNumberOfPoints,
		"dc_squid_drift":           &d.DCSquidDrift,
		"dc_min_v":                 &d.DCMinV,
		"dc_max_v":                 &d.DCMaxV,
		"dc_scans_per_measure":     &d.DCScansPerMeasure,
	}
}

// Fields implements Record.
func (r *MPMSRecord) Fields() map[string]*Series {
	return r.baseFields(map[string]*Series{
		"moment":                   &r.Moment,
		"moment_std_err":           &r.MomentStdErr,
		"transport_action":         &r.TransportAction,
		"averaging_time":           &r.AveragingTime,
		"frequency":                &r.Frequency,
		"peak_amplitude":           &r.PeakAmplitude,
		"center_position":          &r.CenterPosition,
		"lockin_signal_derivative": &r.LockinSignalDerivative,
		"lockin_signal":            &r.LockinSignal,
		"range":                    &r.Range,
		"moment_quad_signal":       &r.MomentQuadSignal,
		"min_temperature":          &r.MinTemperature,
		"max_temperature":          &r.MaxTemperature,
		"min_field":                &r.MinField,
		"max_field":                &r.MaxField,
		"mass":                     &r.Mass,
		"motor_lag":                &r.MotorLag,
		"pressure":                 &r.Pressure,
		"measure_count":            &r.MeasureCount,
		"measurement_number":       &r.MeasurementNumber,
		"squid_status":             &r.SquidStatus,
		"motor_status":             &r.MotorStatus,
		"measure_status":           &r.MeasureStatus,
		"motor_current":            &r.MotorCurrent,
		"motor_temperature":        &r.MotorTemperature,
		"temperature_status":       &r.TemperatureStatus,
		"field_status":             &r.FieldStatus,
		"chamber_status":           &r.ChamberStatus,
		"chamber_temp":             &r.ChamberTemp,
		"average_temp":             &r.AverageTemp,
		"rotation_angle":           &r.RotationAngle,
		"rotator_state":            &r.RotatorState,
		"sample_position":          &r.SamplePosition,
		"chamber_pressure":         &r.ChamberPressure,
	})
}

// AddMap implements MapOwner.
func (r *MPMSRecord) AddMap(name string, data Series) {
	r.Maps = append(r.Maps, &MapRecord{Name: name, Data: data})
}

// DC implements DCOwner.
func (r *MPMSRecord) DC() Record {
	if r.DCData == nil {
		r.DCData = &MPMSDCRecord{}
	}
	return r.DCData
}

// Subrecords implements DataRecord.
func (r *MPMSRecord) Subrecords(name string) []Record {
	switch name {
	case "maps":
		return subrecords(r.Maps)
	case "dc_data":
		if r.DCData != nil {
			return []Record{r.DCData}
		}
	}
	return nil
}

// MPMSResult is the flattened per-run projection for MPMS measurements.
type MPMSResult struct {
	ResultBase

	Temperature   Series `json:"temperature,omitempty"`
	MagneticField Series `json:"magneticField,omitempty"`
	Moment        Series `json:"moment,omitempty"`
}

// Fields implements Record.
func (r *MPMSResult) Fields() map[string]*Series {
	return map[string]*Series{
		"temperature":    &r.Temperature,
		"magnetic_field": &r.MagneticField,
		"moment":         &r.Moment,
	}
}

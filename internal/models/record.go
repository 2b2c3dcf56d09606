package models

// Record is anything with a declared-field registry. The registry maps
// normalized column keys to the destination series; the mapper assigns a
// column only when its normalized key is declared here. This replaces the
// runtime attribute probing the instrument vendors' tooling relies on.
type Record interface {
	Fields() map[string]*Series
}

// DataRecord is one structured record per detected run.
type DataRecord interface {
	Record
	Base() *RecordBase
	// Subrecords resolves a repeated (or singular) sub-record collection
	// by its path name, e.g. "channels", "maps", "dc_data". Unknown names
	// return nil.
	Subrecords(name string) []Record
}

// ResultRecord is a flattened per-run view selected by a projection table.
type ResultRecord interface {
	Record
	SetIdentity(name string, measurementType SweepType)
	Identity() (name string, measurementType SweepType)
}

// RecordBase carries the scalar fields every instrument family shares.
type RecordBase struct {
	Name            string    `json:"name"`
	MeasurementType SweepType `json:"measurementType"`

	TimeStamp     Series `json:"timeStamp,omitempty"`
	Temperature   Series `json:"temperature,omitempty"`
	MagneticField Series `json:"magneticField,omitempty"`
}

// Base implements DataRecord.
func (b *RecordBase) Base() *RecordBase { return b }

func (b *RecordBase) baseFields(m map[string]*Series) map[string]*Series {
	m["time_stamp"] = &b.TimeStamp
	m["temperature"] = &b.Temperature
	m["magnetic_field"] = &b.MagneticField
	return m
}

// ResultBase carries the always-projected identity of a result record.
type ResultBase struct {
	Name            string    `json:"name"`
	MeasurementType SweepType `json:"measurementType"`
}

// SetIdentity implements ResultRecord.
func (r *ResultBase) SetIdentity(name string, measurementType SweepType) {
	r.Name = name
	r.MeasurementType = measurementType
}

// Identity implements ResultRecord.
func (r *ResultBase) Identity() (string, SweepType) {
	return r.Name, r.MeasurementType
}

// ChannelOwner is implemented by data records with per-channel sub-records.
type ChannelOwner interface {
	AddChannel(name string) Record
}

// MapOwner is implemented by data records that keep free-form map columns.
type MapOwner interface {
	AddMap(name string, data Series)
}

// DCOwner is implemented by data records with a singular DC-fit sub-record
// populated from the full column set.
type DCOwner interface {
	DC() Record
}

// MapRecord preserves a free-form, firmware-defined column under its raw
// header name.
type MapRecord struct {
	Name string `json:"name"`
	Data Series `json:"data"`
}

// Fields implements Record.
func (m *MapRecord) Fields() map[string]*Series {
	return map[string]*Series{"map": &m.Data}
}

func subrecords[T Record](items []T) []Record {
	out := make([]Record, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

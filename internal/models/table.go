package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Float is an optional numeric value. Instrument tables are sparse: many
// columns only carry a value on rows where that readout completed, so a
// missing cell must stay distinguishable from zero.
type Float struct {
	Value float64
	Valid bool
}

// MarshalJSON encodes a missing value as null.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON decodes null as a missing value.
func (f *Float) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Float{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = SomeFloat(v)
	return nil
}

var (
	_ msgpack.CustomEncoder = Float{}
	_ msgpack.CustomDecoder = (*Float)(nil)
)

// EncodeMsgpack encodes a missing value as nil.
func (f Float) EncodeMsgpack(enc *msgpack.Encoder) error {
	if !f.Valid {
		return enc.EncodeNil()
	}
	return enc.EncodeFloat64(f.Value)
}

// DecodeMsgpack decodes nil as a missing value.
func (f *Float) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := dec.DecodeInterface()
	if err != nil {
		return err
	}
	switch n := v.(type) {
	case nil:
		*f = Float{}
	case float64:
		*f = SomeFloat(n)
	case float32:
		*f = SomeFloat(float64(n))
	case int64:
		*f = SomeFloat(float64(n))
	case uint64:
		*f = SomeFloat(float64(n))
	default:
		return fmt.Errorf("unexpected msgpack type %T for numeric value", v)
	}
	return nil
}

// SomeFloat wraps a present value.
func SomeFloat(v float64) Float {
	return Float{Value: v, Valid: true}
}

// Series is one column of readings, sliced to a run where it lives on a
// record field.
type Series []Float

// Values returns the raw numbers with missing cells as NaN-free zeros.
// Intended for presentation payloads, not for further computation.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, f := range s {
		if f.Valid {
			out[i] = f.Value
		}
	}
	return out
}

// Column is one named column of the raw instrument table. The header is the
// verbatim CSV header including its parenthesized unit.
type Column struct {
	Header string
	Data   Series
}

// Table is the time-ordered raw instrument table. Rows are in acquisition
// order; the table is immutable once built.
type Table struct {
	columns []*Column
	byName  map[string]*Column
}

// NewTable builds a table from ordered columns. Later duplicates of a
// header are ignored.
func NewTable(columns []*Column) *Table {
	t := &Table{
		columns: columns,
		byName:  make(map[string]*Column, len(columns)),
	}
	for _, c := range columns {
		if _, ok := t.byName[c.Header]; !ok {
			t.byName[c.Header] = c
		}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0].Data)
}

// Headers returns the column headers in file order.
func (t *Table) Headers() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.Header
	}
	return out
}

// Column returns the column with the exact header, or nil.
func (t *Table) Column(header string) *Column {
	return t.byName[header]
}

// Value returns the cell at (header, row). Missing columns and
// out-of-range rows read as invalid.
func (t *Table) Value(header string, row int) Float {
	c := t.byName[header]
	if c == nil || row < 0 || row >= len(c.Data) {
		return Float{}
	}
	return c.Data[row]
}

// Slice returns a view of rows [start, end). The underlying series are
// shared with the parent table.
func (t *Table) Slice(start, end int) *Table {
	cols := make([]*Column, len(t.columns))
	for i, c := range t.columns {
		cols[i] = &Column{Header: c.Header, Data: c.Data[start:end]}
	}
	return NewTable(cols)
}

// ColumnsMatching returns headers for which match returns true, in file
// order.
func (t *Table) ColumnsMatching(match func(header string) bool) []string {
	var out []string
	for _, c := range t.columns {
		if match(c.Header) {
			out = append(out, c.Header)
		}
	}
	return out
}

// ContainsFold reports whether substr occurs in s, case-insensitively.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

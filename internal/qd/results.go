package qd

import (
	"strconv"
	"strings"

	"github.com/lab-visualizer/backend/internal/models"
)

// MakeResults flattens each data record into one result record, copying
// the series selected by the projection table. Keys of the table are
// source paths within the data record (dotted sub-record access with
// optional bracketed indexing, e.g. "channels[0].resistance"); values are
// result field names. Missing path segments leave the result field unset:
// downstream consumers treat unset fields as "not measured for this run".
//
// The record's name and measurement type are always projected, regardless
// of the table.
func MakeResults(fam Family, paths map[string]string, data []models.DataRecord) []models.ResultRecord {
	results := make([]models.ResultRecord, 0, len(data))
	for _, rec := range data {
		res := fam.NewResult()
		base := rec.Base()
		res.SetIdentity(base.Name, base.MeasurementType)

		resFields := res.Fields()
		for src, dstName := range paths {
			series, ok := resolvePath(rec, src)
			if !ok {
				continue
			}
			if dst, ok := resFields[dstName]; ok {
				*dst = series
			}
		}
		results = append(results, res)
	}
	return results
}

// resolvePath walks a dotted source path against a record. Intermediate
// segments name sub-record collections, optionally with a bracketed
// element index (default 0); the final segment names a declared field.
func resolvePath(rec models.Record, path string) (models.Series, bool) {
	segments := strings.Split(path, ".")
	current := rec
	for _, seg := range segments[:len(segments)-1] {
		name, idx, ok := splitIndex(seg)
		if !ok {
			return nil, false
		}
		dr, ok := current.(models.DataRecord)
		if !ok {
			return nil, false
		}
		subs := dr.Subrecords(name)
		if idx < 0 || idx >= len(subs) {
			return nil, false
		}
		current = subs[idx]
	}
	field := segments[len(segments)-1]
	dst, ok := current.Fields()[field]
	if !ok {
		return nil, false
	}
	return *dst, true
}

// splitIndex splits "channels[1]" into ("channels", 1); a segment without
// brackets indexes element 0.
func splitIndex(seg string) (string, int, bool) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, 0, true
	}
	end := strings.IndexByte(seg, ']')
	if end < open {
		return "", 0, false
	}
	idx, err := strconv.Atoi(seg[open+1 : end])
	if err != nil {
		return "", 0, false
	}
	return seg[:open], idx, true
}

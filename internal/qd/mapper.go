package qd

import (
	"fmt"

	"github.com/lab-visualizer/backend/internal/models"
)

// Channel marker defaults: a column belongs to a physical channel when its
// header contains one of these substrings (case-insensitive).
var defaultChannelMarkers = []string{"ch1", "ch2"}

// SplitRuns slices the table to each run's range and repackages the
// columns into one structured record per run: scalar fields by normalized
// header key, per-channel sub-records for marker-matched columns, and map
// sub-records for free-form firmware columns. Columns that normalize to a
// key the record type does not declare are dropped; that favors forward
// compatibility with new firmware columns over strict validation.
//
// A problem with one run is reported as a warning and does not stop the
// remaining runs from being mapped.
func SplitRuns(t *models.Table, runs []models.Run, fam Family) ([]models.DataRecord, []models.ParseError) {
	records := make([]models.DataRecord, 0, len(runs))
	var warnings []models.ParseError

	for i, run := range runs {
		rec, warn := mapRun(t, run, fam)
		if warn != nil {
			warnings = append(warnings, models.ParseError{
				Reason: fmt.Sprintf("run %d (%s): %s", i, run.DisplayName(), warn.Reason),
			})
			if rec == nil {
				continue
			}
		}
		records = append(records, rec)
	}
	return records, warnings
}

func mapRun(t *models.Table, run models.Run, fam Family) (models.DataRecord, *models.ParseError) {
	block := t.Slice(run.Start, run.End)
	rec := fam.NewRecord()
	base := rec.Base()
	base.MeasurementType = run.Type
	base.Name = run.DisplayName()

	mapScalars(block, rec, fam)
	warn := mapChannels(block, rec)
	mapMaps(block, rec, fam.MapMarker)
	mapDC(block, rec)
	return rec, warn
}

// mapScalars assigns every column that is neither a channel nor a map
// column to a declared scalar field of the record.
func mapScalars(block *models.Table, rec models.DataRecord, fam Family) {
	fields := rec.Fields()
	headers := block.ColumnsMatching(func(h string) bool {
		return !isChannelHeader(h) && !models.ContainsFold(h, "map")
	})
	for _, h := range headers {
		if fam.MapMarker != "" && models.ContainsFold(h, fam.MapMarker) {
			continue
		}
		key := CleanScalarKey(h)
		if dst, ok := fields[key]; ok {
			*dst = block.Column(h).Data
		}
	}
}

// mapChannels partitions channel-marked columns into one sub-record per
// physical channel. It warns when the record expects channels but the
// block has no channel-marked columns at all, which usually means the
// identifying column disappeared mid-file.
func mapChannels(block *models.Table, rec models.DataRecord) *models.ParseError {
	owner, ok := rec.(models.ChannelOwner)
	if !ok {
		return nil
	}
	seen := false
	for idx, marker := range defaultChannelMarkers {
		headers := block.ColumnsMatching(func(h string) bool {
			return models.ContainsFold(h, marker)
		})
		if len(headers) == 0 {
			continue
		}
		seen = true
		ch := owner.AddChannel(fmt.Sprintf("Channel %d", idx+1))
		fields := ch.Fields()
		for _, h := range headers {
			key := CleanChannelKey(h)
			if dst, ok := fields[key]; ok {
				*dst = block.Column(h).Data
			}
		}
	}
	if !seen {
		return &models.ParseError{Reason: "no channel columns found"}
	}
	return nil
}

// mapMaps keeps every marker-matched column as a map sub-record under its
// raw header name. Map names are unique within a record because table
// headers are unique.
func mapMaps(block *models.Table, rec models.DataRecord, marker string) {
	owner, ok := rec.(models.MapOwner)
	if !ok || marker == "" {
		return
	}
	headers := block.ColumnsMatching(func(h string) bool {
		return models.ContainsFold(h, marker)
	})
	for _, h := range headers {
		owner.AddMap(h, block.Column(h).Data)
	}
}

// mapDC populates the singular DC-fit sub-record, where the family has
// one, from the full column set of the block.
func mapDC(block *models.Table, rec models.DataRecord) {
	owner, ok := rec.(models.DCOwner)
	if !ok {
		return
	}
	dc := owner.DC()
	fields := dc.Fields()
	for _, h := range block.Headers() {
		key := CleanScalarKey(h)
		if dst, ok := fields[key]; ok {
			*dst = block.Column(h).Data
		}
	}
}

func isChannelHeader(h string) bool {
	for _, m := range defaultChannelMarkers {
		if models.ContainsFold(h, m) {
			return true
		}
	}
	return false
}

package qd

import (
	"math"

	"github.com/lab-visualizer/backend/internal/models"
)

// Column headers every Quantum Design table carries (after the
// ",Field" -> ",Magnetic Field" rename applied by the file reader).
const (
	ColTemperature   = "Temperature (K)"
	ColMagneticField = "Magnetic Field (Oe)"
	ColFrequency     = "Frequency (Hz)"
	ColAmplitude     = "Amplitude (Oe)"
	ColMomentDC      = "M-DC (emu)"
)

// Default tolerances applied when the file header does not carry its own.
// Frequency segmentation (SegmentACMSRuns) is event-driven and takes none.
const (
	DefaultTemperatureTolerance = 0.2 // K
	DefaultFieldTolerance       = 5.0 // Oe
)

// probeOffsets are the forward look-ahead distances tried, in order, when
// classifying an unlabelled region. Larger offsets resolve windows where
// both axes look steady at short range.
var probeOffsets = [...]int{2, 5, 10, 20, 40}

// SegmentRuns partitions a time-ordered table into contiguous runs of one
// sweep type. A run of the "field" type is a region where temperature
// holds within tempTol while the field varies; "temperature" is the
// converse with fieldTol. The returned runs are non-overlapping, in index
// order, and cover [0, table length) exactly. Tables shorter than the
// probe window degenerate to a single run.
func SegmentRuns(t *models.Table, tempTol, fieldTol float64) []models.Run {
	n := t.Len()
	runs := make([]models.Run, 0)
	if n == 0 {
		return runs
	}

	start := 0
	current := models.SweepUndefined

	for i := 0; i < n; i++ {
		boundary := false
		switch {
		case i == n-1:
			boundary = true
		case current == models.SweepUndefined:
			for _, k := range probeOffsets {
				if i+k >= n {
					continue
				}
				if diffBelow(t, ColTemperature, i, i+k, tempTol) {
					current = models.SweepField
				}
				if diffBelow(t, ColMagneticField, i, i+k, fieldTol) {
					if current == models.SweepUndefined {
						current = models.SweepTemperature
					} else {
						// Both axes look steady over this window;
						// classification stays open, try a longer probe.
						current = models.SweepUndefined
					}
				}
				if current != models.SweepUndefined {
					break
				}
			}
		case current == models.SweepField:
			boundary = diffAbove(t, ColTemperature, i-1, i, tempTol)
		case current == models.SweepTemperature:
			boundary = diffAbove(t, ColMagneticField, i-1, i, fieldTol)
		}

		if !boundary {
			continue
		}

		run := models.Run{Type: current, Start: start, End: i}
		last := i - 1
		if i == n-1 {
			// The table ends here; the final run absorbs the last row.
			run.End = n
			last = n - 1
		}
		switch current {
		case models.SweepTemperature:
			if v := t.Value(ColMagneticField, last); v.Valid {
				run.Value = models.SomeFloat(roundTo10(v.Value))
			}
		case models.SweepField:
			if v := t.Value(ColTemperature, last); v.Valid {
				run.Value = models.SomeFloat(roundTo1(v.Value))
			}
		}
		runs = append(runs, run)
		start = i
		current = models.SweepUndefined
	}
	return runs
}

// SegmentACMSRuns partitions an ACMS table into frequency-sweep runs. A
// run closes wherever the DC moment readout is present: that column is
// only written once a frequency scan completes, so no drift tolerances
// are needed.
func SegmentACMSRuns(t *models.Table) []models.Run {
	n := t.Len()
	runs := make([]models.Run, 0)

	start := 0
	for i := 2; i < n-1; i++ {
		if !t.Value(ColMomentDC, i).Valid {
			continue
		}
		run := models.Run{
			Type:  models.SweepFrequency,
			Start: start,
			End:   i,
			Tuple: []float64{
				roundTo1(t.Value(ColTemperature, i-1).Value),
				roundTo10(t.Value(ColMagneticField, i-1).Value),
				roundTo10(t.Value(ColFrequency, i-1).Value),
				roundTo1(t.Value(ColAmplitude, i-1).Value),
			},
		}
		runs = append(runs, run)
		start = i
	}
	return runs
}

// diffBelow reports |col[a]-col[b]| < tol. Missing cells never compare
// below a tolerance.
func diffBelow(t *models.Table, col string, a, b int, tol float64) bool {
	va, vb := t.Value(col, a), t.Value(col, b)
	if !va.Valid || !vb.Valid {
		return false
	}
	return math.Abs(va.Value-vb.Value) < tol
}

// diffAbove reports |col[a]-col[b]| > tol. Missing cells never exceed a
// tolerance.
func diffAbove(t *models.Table, col string, a, b int, tol float64) bool {
	va, vb := t.Value(col, a), t.Value(col, b)
	if !va.Valid || !vb.Valid {
		return false
	}
	return math.Abs(va.Value-vb.Value) > tol
}

// roundTo10 rounds to the nearest multiple of ten (display only).
func roundTo10(v float64) float64 {
	return math.Round(v/10) * 10
}

// roundTo1 rounds to one decimal place (display only).
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

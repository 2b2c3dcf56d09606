package qd

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lab-visualizer/backend/internal/models"
)

// Header holds the decoded [Header] section of a measurement file.
type Header struct {
	Software string

	// OpenTime is nil when the FILEOPENTIME line was absent or in none of
	// the accepted formats; that is reported as a warning, not an error.
	OpenTime *time.Time

	TemperatureTolerance models.Float // K
	FieldTolerance       models.Float // Oe

	Samples []models.Sample

	Warnings []models.ParseError
}

var headerFieldSplit = regexp.MustCompile(`,\s*`)

// ParseHeader decodes the KEYWORD,value,... lines of a header section.
func ParseHeader(lines []string) *Header {
	h := &Header{}

	for n, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "FILEOPENTIME"):
			if ts, ok := ParseFileOpenTime(line); ok {
				h.OpenTime = &ts
			} else {
				h.Warnings = append(h.Warnings, models.ParseError{
					Line:    n + 1,
					Content: line,
					Reason:  "FILEOPENTIME not understood",
				})
			}
		case strings.HasPrefix(line, "BYAPP,"):
			h.Software = strings.TrimSpace(strings.TrimPrefix(line, "BYAPP,"))
		case strings.HasPrefix(line, "TEMPERATURETOLERANCE,"):
			if v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, "TEMPERATURETOLERANCE,")), 64); err == nil {
				h.TemperatureTolerance = models.SomeFloat(v)
			}
		case strings.HasPrefix(line, "FIELDTOLERANCE,"):
			if v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, "FIELDTOLERANCE,")), 64); err == nil {
				h.FieldTolerance = models.SomeFloat(v)
			}
		}
	}

	for _, idx := range []string{"1", "2"} {
		if s, ok := parseSample(lines, idx); ok {
			h.Samples = append(h.Samples, s)
		}
	}
	return h
}

// parseSample collects the INFO ... SAMPLEn_* lines describing one sample.
func parseSample(lines []string, idx string) (models.Sample, bool) {
	var s models.Sample
	marker := "SAMPLE" + idx + "_"
	found := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "INFO") || !strings.Contains(line, marker) {
			continue
		}
		parts := headerFieldSplit.Split(line, -1)
		if len(parts) < 2 {
			continue
		}
		key := strings.ToLower(parts[len(parts)-1])
		key = strings.ReplaceAll(key, strings.ToLower(marker), "")
		value := strings.Join(parts[1:len(parts)-1], ", ")
		switch key {
		case "name":
			s.Name = value
		case "type":
			s.Type = value
		case "material":
			s.Material = value
		case "comment":
			s.Comment = value
		case "lead_separation":
			s.LeadSeparation = value
		case "cross_section":
			s.CrossSection = value
		default:
			// unknown sample keys are ignored
			continue
		}
		found = true
	}
	return s, found
}

// fileOpenTimeLayouts are tried in order until one parses. The matching
// value is assembled from different comma fields per layout: most writers
// put the whole timestamp in the fourth field, some split date and time
// across the third and fourth.
var fileOpenTimeLayouts = []struct {
	layout string
	fields func(parts []string) string
}{
	{"1/2/2006 15:04:05", fieldAt(3)},
	{"1-2-2006 3:04 PM", joinFields(2, 4)},
	{"2006-01-02 15:04:05", fieldAt(3)},
	{"1/2/2006 3:04:05 PM", fieldAt(3)},
	{"1/2/2006 3:04 PM", joinFields(2, -1)},
}

func fieldAt(i int) func([]string) string {
	return func(parts []string) string {
		if i >= len(parts) {
			return ""
		}
		return strings.TrimSpace(parts[i])
	}
}

func joinFields(from, to int) func([]string) string {
	return func(parts []string) string {
		if to < 0 {
			to = len(parts)
		}
		if from >= len(parts) || to > len(parts) {
			return ""
		}
		trimmed := make([]string, 0, to-from)
		for _, p := range parts[from:to] {
			trimmed = append(trimmed, strings.TrimSpace(p))
		}
		return strings.Join(trimmed, " ")
	}
}

// ParseFileOpenTime decodes a FILEOPENTIME header line, trying each
// accepted timestamp format in order.
func ParseFileOpenTime(line string) (time.Time, bool) {
	parts := strings.Split(line, ",")
	for _, cand := range fileOpenTimeLayouts {
		value := cand.fields(parts)
		if value == "" {
			continue
		}
		if ts, err := time.Parse(cand.layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

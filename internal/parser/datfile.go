package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/lab-visualizer/backend/internal/models"
	"github.com/lab-visualizer/backend/internal/qd"
)

// sectionRegex splits a .dat file into its [Header] and [Data] sections.
var sectionRegex = regexp.MustCompile(`(?s)\[Header\](.*?)\[Data\]`)

// DatOptions tune a DatFileParser beyond its built-in defaults.
type DatOptions struct {
	// Fallback tolerances when the file header carries none.
	TemperatureTolerance float64 // K
	FieldTolerance       float64 // Oe

	// ResultPaths overrides the per-family result projection tables,
	// keyed by family name.
	ResultPaths map[string]map[string]string
}

// DatFileParser reads Quantum Design [Header]/[Data] sectioned data files
// and runs the full pipeline: header decoding, run segmentation, per-run
// record mapping and result projection.
type DatFileParser struct {
	opts DatOptions
}

// NewDatFileParser creates a parser with the default tolerances.
func NewDatFileParser() *DatFileParser {
	return NewDatFileParserWithOptions(DatOptions{})
}

// NewDatFileParserWithOptions creates a parser with explicit options.
// Zero tolerances fall back to the instrument defaults.
func NewDatFileParserWithOptions(opts DatOptions) *DatFileParser {
	if opts.TemperatureTolerance <= 0 {
		opts.TemperatureTolerance = qd.DefaultTemperatureTolerance
	}
	if opts.FieldTolerance <= 0 {
		opts.FieldTolerance = qd.DefaultFieldTolerance
	}
	return &DatFileParser{opts: opts}
}

func (p *DatFileParser) Name() string {
	return "qd_dat"
}

// CanParse sniffs for the [Header] section marker.
func (p *DatFileParser) CanParse(filePath string) (bool, error) {
	lines, err := sniffLines(filePath, 5)
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		if strings.EqualFold(line, "[Header]") {
			return true, nil
		}
	}
	return false, nil
}

// Parse runs the pipeline with no companion sequence file.
func (p *DatFileParser) Parse(filePath string) (*models.Measurement, error) {
	return p.ParseWithSequence(filePath, nil)
}

// ParseWithSequence parses a data file; when seqLines is non-nil the steps
// tokenized from the companion sequence file take priority over the
// table-derived steps.
func (p *DatFileParser) ParseWithSequence(filePath string, seqLines []string) (*models.Measurement, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(filePath), err)
	}
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")

	loc := sectionRegex.FindStringSubmatchIndex(content)
	if loc == nil {
		return nil, fmt.Errorf("%s: missing [Header]/[Data] markers", filepath.Base(filePath))
	}
	headerSection := strings.TrimSpace(content[loc[2]:loc[3]])
	dataSection := content[loc[1]:]

	header := qd.ParseHeader(strings.Split(headerSection, "\n"))

	fam, ok := qd.FamilyForApp(header.Software)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported measurement software %q", filepath.Base(filePath), header.Software)
	}

	table, err := readDataTable(dataSection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
	}

	tempTol := p.opts.TemperatureTolerance
	if header.TemperatureTolerance.Valid {
		tempTol = header.TemperatureTolerance.Value
	}
	fieldTol := p.opts.FieldTolerance
	if header.FieldTolerance.Valid {
		fieldTol = header.FieldTolerance.Value
	}

	var runs []models.Run
	switch fam.Segment {
	case qd.SegmentDCTriggered:
		runs = qd.SegmentACMSRuns(table)
	default:
		runs = qd.SegmentRuns(table, tempTol, fieldTol)
	}

	data, mapWarnings := qd.SplitRuns(table, runs, fam)

	paths := fam.ResultPaths
	if override, ok := p.opts.ResultPaths[fam.Name]; ok {
		paths = override
	}
	results := qd.MakeResults(fam, paths, data)

	m := &models.Measurement{
		FileName:             filepath.Base(filePath),
		Family:               fam.Name,
		Software:             header.Software,
		OpenTime:             header.OpenTime,
		Samples:              header.Samples,
		TemperatureTolerance: tempTol,
		FieldTolerance:       fieldTol,
		Runs:                 runs,
		Data:                 data,
		Results:              results,
	}
	m.Warnings = append(m.Warnings, header.Warnings...)
	m.Warnings = append(m.Warnings, mapWarnings...)

	if seqLines != nil {
		steps, seqWarnings, err := qd.ParseSequence(seqLines)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
		}
		m.Steps = steps
		m.StepsFromSequence = true
		m.Warnings = append(m.Warnings, seqWarnings...)
	} else {
		m.Steps = stepsFromRuns(runs)
	}
	return m, nil
}

// stepsFromRuns reconstructs a coarse step list from the detected runs
// when no sequence file is available.
func stepsFromRuns(runs []models.Run) []models.Step {
	steps := make([]models.Step, 0, len(runs))
	for _, run := range runs {
		if run.Type == models.SweepUndefined {
			continue
		}
		steps = append(steps, &models.GenericStep{
			StepMeta: models.StepMeta{Kind: models.StepGeneric, Name: run.DisplayName()},
		})
	}
	return steps
}

// readDataTable decodes the CSV block after [Data] into a column table.
// The first row is the column headers; the legacy short header "Field" is
// renamed to "Magnetic Field" before decoding.
func readDataTable(section string) (*models.Table, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimLeft(section, "\n")))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unreadable data table: %w", err)
	}
	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		h = strings.TrimSpace(h)
		if i > 0 && strings.HasPrefix(h, "Field") {
			h = "Magnetic " + h
		}
		headers[i] = h
	}

	columns := make([]*models.Column, len(headers))
	for i, h := range headers {
		columns[i] = &models.Column{Header: h}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unreadable data table: %w", err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		for i := range columns {
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			columns[i].Data = append(columns[i].Data, parseCell(cell))
		}
	}
	return models.NewTable(columns), nil
}

// parseCell decodes one CSV cell; blanks and non-numeric text read as
// missing values.
func parseCell(cell string) models.Float {
	if cell == "" {
		return models.Float{}
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return models.Float{}
	}
	return models.SomeFloat(v)
}

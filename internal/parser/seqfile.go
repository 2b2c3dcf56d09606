package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lab-visualizer/backend/internal/models"
	"github.com/lab-visualizer/backend/internal/qd"
)

// sequenceKeywords are the line prefixes that identify a command-sequence
// file during sniffing.
var sequenceKeywords = []string{
	"REM", "WAI", "MVP", "TMP", "FLD", "LPB", "ENB", "LPT", "ENT",
	"ACTR", "ETOR", "SHT", "CHN",
}

// SequenceFileParser reads command-sequence (.seq) files describing the
// planned measurement procedure.
type SequenceFileParser struct{}

func NewSequenceFileParser() *SequenceFileParser {
	return &SequenceFileParser{}
}

func (p *SequenceFileParser) Name() string {
	return "qd_seq"
}

// CanParse accepts .seq files, or files whose leading lines start with
// known sequence keywords.
func (p *SequenceFileParser) CanParse(filePath string) (bool, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".seq") {
		return true, nil
	}
	lines, err := sniffLines(filePath, 10)
	if err != nil {
		return false, err
	}
	if len(lines) == 0 {
		return false, nil
	}
	matched := 0
	for _, line := range lines {
		if strings.HasPrefix(line, "!") {
			matched++
			continue
		}
		for _, kw := range sequenceKeywords {
			if strings.HasPrefix(line, kw) {
				matched++
				break
			}
		}
	}
	return float64(matched)/float64(len(lines)) >= 0.6, nil
}

// Parse tokenizes the sequence into steps. The returned Measurement
// carries only the step list.
func (p *SequenceFileParser) Parse(filePath string) (*models.Measurement, error) {
	lines, err := ReadLines(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(filePath), err)
	}
	steps, warnings, err := qd.ParseSequence(lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filePath), err)
	}
	return &models.Measurement{
		FileName:          filepath.Base(filePath),
		Family:            "Sequence",
		Steps:             steps,
		StepsFromSequence: true,
		Warnings:          warnings,
	}, nil
}

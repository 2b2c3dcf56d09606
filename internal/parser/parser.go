// Package parser contains the file-level readers that turn instrument
// output files into Measurement records.
package parser

import (
	"bufio"
	"os"
	"strings"

	"github.com/lab-visualizer/backend/internal/models"
)

// Parser defines the interface for measurement file parsers.
type Parser interface {
	// Name returns the unique name of the parser.
	Name() string
	// CanParse returns true if this parser can handle the given file.
	CanParse(filePath string) (bool, error)
	// Parse parses the entire file and returns the measurement.
	Parse(filePath string) (*models.Measurement, error)
}

// sniffLines reads up to n non-empty leading lines for format detection.
func sniffLines(filePath string, n int) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() && len(lines) < n {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// ReadLines reads a whole file as lines, tolerating both \n and \r\n.
func ReadLines(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n"), nil
}

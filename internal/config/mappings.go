package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ResultMappings overrides the built-in result projection tables. The
// YAML file maps family name to resultField: sourcePath pairs, e.g.
//
//	ETO:
//	  resistance0: channels[0].resistance
//	  temperature: temperature
type ResultMappings map[string]map[string]string

// LoadResultMappings parses a YAML result-mapping override file.
func LoadResultMappings(filePath string) (ResultMappings, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseResultMappings(file)
}

// ParseResultMappings parses mappings from an io.Reader.
func ParseResultMappings(r io.Reader) (ResultMappings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var m ResultMappings
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing result mappings: %w", err)
	}

	// swap key direction: the projection engine wants sourcePath -> field
	out := make(ResultMappings, len(m))
	for family, fields := range m {
		paths := make(map[string]string, len(fields))
		for field, path := range fields {
			paths[path] = field
		}
		out[family] = paths
	}
	return out, nil
}

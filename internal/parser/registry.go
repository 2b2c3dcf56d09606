package parser

import (
	"fmt"
	"strings"
)

// Registry holds all available parsers and provides auto-detection.
type Registry struct {
	parsers []Parser
}

func NewRegistry() *Registry {
	return &Registry{
		parsers: []Parser{
			NewDatFileParser(),
			NewSequenceFileParser(),
		},
	}
}

// NewRegistryWithOptions creates a registry whose data-file parser uses
// explicit options.
func NewRegistryWithOptions(opts DatOptions) *Registry {
	return &Registry{
		parsers: []Parser{
			NewDatFileParserWithOptions(opts),
			NewSequenceFileParser(),
		},
	}
}

// Register adds a new parser to the registry.
func (r *Registry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
}

// FindParser detects the correct parser for a file.
func (r *Registry) FindParser(filePath string) (Parser, error) {
	for _, p := range r.parsers {
		can, err := p.CanParse(filePath)
		if err != nil {
			continue
		}
		if can {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no suitable parser found for file: %s", filePath)
}

// GetParserByName returns a parser by its name.
func (r *Registry) GetParserByName(name string) (Parser, error) {
	name = strings.ToLower(name)
	for _, p := range r.parsers {
		if strings.ToLower(p.Name()) == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("parser not found: %s", name)
}

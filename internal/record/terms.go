package record

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Term describes an annotation to add to a document.
type Term struct {
	ID      string   `yaml:"id"`
	Label   string   `yaml:"label"`
	Terms   []string `yaml:"terms"`
	Enabled bool     `yaml:"enabled"`
	// Script is an optional path to a Lua replacement script.
	Script string `yaml:"script,omitempty"`
}

// TermSet is an ordered list of terms.
type TermSet struct {
	Terms []Term `yaml:"annotations"`
}

// ParseTerms reads a term set from YAML.
func ParseTerms(data []byte) (*TermSet, error) {
	var set TermSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse term set: %w", err)
	}
	for i, t := range set.Terms {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidTerm, i)
		}
		if len(t.Terms) == 0 {
			if t.Label == "" {
				return nil, fmt.Errorf("%w: entry %s has no terms", ErrInvalidTerm, t.ID)
			}
			set.Terms[i].Terms = []string{t.Label}
		}
	}
	return &set, nil
}

// LoadTerms reads a term set from a file.
func LoadTerms(path string) (*TermSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read term set %s: %w", path, err)
	}
	return ParseTerms(data)
}

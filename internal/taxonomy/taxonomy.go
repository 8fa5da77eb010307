// Package taxonomy holds the static controlled-vocabulary reference tables
// for structured search filters and the display-value to internal-code
// remapping applied after extraction.
package taxonomy

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

//go:embed mappings.yaml
var mappingsYAML []byte

type tables struct {
	DocumentType map[string]string `yaml:"document_type"`
	LegalIssue   map[string]string `yaml:"legal_issue"`
	Program      map[string]string `yaml:"program"`
	Industry     map[string]string `yaml:"industry"`
}

// Mapper remaps human-readable tag values to internal identifier codes.
type Mapper struct {
	tables tables
}

// NewMapper parses the embedded reference tables.
func NewMapper() (*Mapper, error) {
	var t tables
	if err := yaml.Unmarshal(mappingsYAML, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy mappings: %w", err)
	}
	return &Mapper{tables: t}, nil
}

// Apply translates the mapped fields of a filter set in place and returns it.
// Unrecognized values pass through unchanged (lookup-or-identity); nothing is
// ever dropped.
func (m *Mapper) Apply(fs domain.FilterSet) domain.FilterSet {
	fs.DocumentType = mapValues(fs.DocumentType, m.tables.DocumentType)
	fs.LegalIssue = mapValues(fs.LegalIssue, m.tables.LegalIssue)
	fs.Program = mapValues(fs.Program, m.tables.Program)
	fs.Industry = mapValues(fs.Industry, m.tables.Industry)
	return fs
}

// Vocabulary lists the known display values per mapped field, sorted, for
// embedding into extraction prompts.
func (m *Mapper) Vocabulary() map[string][]string {
	return map[string][]string{
		"DocumentType": sortedKeys(m.tables.DocumentType),
		"LegalIssue":   sortedKeys(m.tables.LegalIssue),
		"Program":      sortedKeys(m.tables.Program),
		"Industry":     sortedKeys(m.tables.Industry),
	}
}

func sortedKeys(table map[string]string) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mapValues(values []string, table map[string]string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, len(values))
	for i, v := range values {
		if code, ok := table[v]; ok {
			out[i] = code
			continue
		}
		out[i] = v
	}
	return out
}

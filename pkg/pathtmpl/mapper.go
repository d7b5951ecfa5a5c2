package pathtmpl

import (
	"path"

	"github.com/bmatcuk/doublestar/v4"
)

// Mapping pairs a glob pattern with the template used for matching paths.
type Mapping struct {
	Pattern  string `yaml:"pattern" json:"pattern"`
	Template string `yaml:"template" json:"template"`
}

// Mapper selects a template for a source path. Mappings are tried in order
// and the first match wins.
type Mapper struct {
	mappings []Mapping
	fallback Mapping
}

// NewMapper creates a Mapper. An empty fallback template selects
// DefaultTemplate.
func NewMapper(mappings []Mapping, fallback string) *Mapper {
	if fallback == "" {
		fallback = DefaultTemplate
	}
	m := &Mapper{
		mappings: make([]Mapping, 0, len(mappings)),
		fallback: Mapping{Pattern: "**/*", Template: fallback},
	}
	for _, mp := range mappings {
		if mp.Pattern == "" || !doublestar.ValidatePattern(mp.Pattern) {
			continue
		}
		if mp.Template == "" {
			mp.Template = fallback
		}
		m.mappings = append(m.mappings, mp)
	}
	return m
}

// Match returns the first mapping whose pattern matches p.
func (m *Mapper) Match(p string) (Mapping, bool) {
	if m == nil {
		return Mapping{}, false
	}
	p = path.Clean(p)
	for _, mp := range m.mappings {
		if ok, _ := doublestar.Match(mp.Pattern, p); ok {
			return mp, true
		}
	}
	return Mapping{}, false
}

// Default returns the fallback mapping.
func (m *Mapper) Default() Mapping {
	if m == nil {
		return Mapping{Pattern: "**/*", Template: DefaultTemplate}
	}
	return m.fallback
}

// Template returns the template for p, falling back to the default.
func (m *Mapper) Template(p string) string {
	if mp, ok := m.Match(p); ok {
		return mp.Template
	}
	return m.Default().Template
}

// Expand selects the template for params.SourcePath and expands it.
func (m *Mapper) Expand(params Params) string {
	return Expand(m.Template(params.SourcePath), params)
}

package countrydata

import (
	"context"
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var embeddedCountries []byte

// StaticProvider serves country data from an in-memory table
type StaticProvider struct {
	countries map[string]Country
}

type countryFile struct {
	Countries map[string]Country `yaml:"countries"`
}

// NewStaticProvider loads the embedded country table
func NewStaticProvider() (*StaticProvider, error) {
	return ParseStatic(embeddedCountries)
}

// ParseStatic builds a provider from a YAML document with a top-level
// `countries` map keyed by country code
func ParseStatic(data []byte) (*StaticProvider, error) {
	var file countryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	p := &StaticProvider{countries: make(map[string]Country, len(file.Countries))}

	for code, c := range file.Countries {
		c.Code = NormalizeCode(code)

		if err := c.validate(); err != nil {
			return nil, err
		}

		p.countries[c.Code] = c
	}

	return p, nil
}

// Country returns the table entry for the code
func (p *StaticProvider) Country(_ context.Context, code string) (Country, error) {
	c, ok := p.countries[NormalizeCode(code)]
	if !ok {
		return Country{}, fmt.Errorf("%w: %s", ErrCountryNotFound, code)
	}

	return c, nil
}

// Codes lists the country codes in the table, sorted
func (p *StaticProvider) Codes() []string {
	codes := make([]string, 0, len(p.countries))
	for code := range p.countries {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}

// Package countrydata looks up how EU regulations are transposed and enforced
// in individual member states.
package countrydata

import (
	"context"
	"fmt"
	"strings"
)

// Status is the national implementation status of a regulation
type Status string

const (
	StatusImplemented   Status = "implemented"
	StatusPending       Status = "pending"
	StatusOverdue       Status = "overdue"
	StatusNotApplicable Status = "not_applicable"
)

// Valid reports whether the status is known
func (s Status) Valid() bool {
	switch s {
	case StatusImplemented, StatusPending, StatusOverdue, StatusNotApplicable:
		return true
	default:
		return false
	}
}

// RegulationStatus is the national metadata of one regulation
type RegulationStatus struct {
	// ImplementationStatus is the transposition state in the country
	ImplementationStatus Status `json:"implementationStatus" yaml:"implementationStatus"`
	// NationalDeadline is the national deadline or effective date, if any
	NationalDeadline string `json:"nationalDeadline,omitempty" yaml:"nationalDeadline,omitempty"`
	// Authority is the competent national authority, if known
	Authority string `json:"authority,omitempty" yaml:"authority,omitempty"`
	// Law is the name of the national implementing act, if any
	Law string `json:"law,omitempty" yaml:"law,omitempty"`
}

// Country is the national data for one member state
type Country struct {
	// Code is the lowercase ISO 3166-1 alpha-2 code
	Code string `json:"code" yaml:"code"`
	// Name is the English country name
	Name string `json:"name" yaml:"name"`
	// Regulations maps regulation keys to national metadata
	Regulations map[string]RegulationStatus `json:"regulations" yaml:"regulations"`
}

// Regulation returns the national metadata of a regulation
func (c Country) Regulation(key string) (RegulationStatus, bool) {
	rs, ok := c.Regulations[key]

	return rs, ok
}

// validate checks every status of the country
func (c Country) validate() error {
	for key, rs := range c.Regulations {
		if !rs.ImplementationStatus.Valid() {
			return fmt.Errorf("%w: %s/%s: %q", ErrInvalidStatus, c.Code, key, rs.ImplementationStatus)
		}
	}

	return nil
}

// Provider returns the national data of a country. Implementations return
// ErrCountryNotFound when nothing is on file for the code.
type Provider interface {
	Country(ctx context.Context, code string) (Country, error)
}

// NormalizeCode lowercases and trims a country code
func NormalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

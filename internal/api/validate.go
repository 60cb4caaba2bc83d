package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/samber/lo"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/regulation"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/types"
)

const (
	// maxSetLength caps every multi-select field of a profile
	maxSetLength = 16
	// maxEmailLength is the longest accepted email address
	maxEmailLength = 254
	// maxNameLength caps names and company names
	maxNameLength = 200
	// maxMessageLength caps free text messages
	maxMessageLength = 5000
)

// validateProfile checks enum membership and set sizes, and drops duplicate entries
func validateProfile(p *types.BusinessProfile) error {
	if p.CompanySize != "" && !p.CompanySize.Valid() {
		return fmt.Errorf("%w: companySize %q", ErrUnknownValue, p.CompanySize)
	}

	if !p.AnnualRevenue.Valid() {
		return fmt.Errorf("%w: annualRevenue %q", ErrUnknownValue, p.AnnualRevenue)
	}

	if err := validateSet("sectors", p.Sectors, types.Sector.Valid); err != nil {
		return err
	}

	if err := validateSet("dataTypes", p.DataTypes, types.DataType.Valid); err != nil {
		return err
	}

	if err := validateSet("activities", p.Activities, types.Activity.Valid); err != nil {
		return err
	}

	if err := validateSet("locations", p.Locations, types.Location.Valid); err != nil {
		return err
	}

	p.Sectors = lo.Uniq(p.Sectors)
	p.DataTypes = lo.Uniq(p.DataTypes)
	p.Activities = lo.Uniq(p.Activities)
	p.Locations = lo.Uniq(p.Locations)

	return nil
}

func validateSet[T ~string](field string, values []T, valid func(T) bool) error {
	if len(values) > maxSetLength {
		return fmt.Errorf("%w: %s has %d entries, at most %d allowed", ErrTooManyValues, field, len(values), maxSetLength)
	}

	if bad, found := lo.Find(values, func(v T) bool { return !valid(v) }); found {
		return fmt.Errorf("%w: %s %q", ErrUnknownValue, field, bad)
	}

	return nil
}

// validateMaturityLevel accepts an empty level
func validateMaturityLevel(level types.MaturityLevel) error {
	if level != "" && !level.Valid() {
		return fmt.Errorf("%w: maturityLevel %q", ErrUnknownValue, level)
	}

	return nil
}

// validateRegulations checks every key is in the catalogue and drops duplicates
func validateRegulations(keys []string) ([]string, error) {
	if len(keys) > maxSetLength {
		return nil, fmt.Errorf("%w: regulations has %d entries, at most %d allowed", ErrTooManyValues, len(keys), maxSetLength)
	}

	for _, key := range keys {
		if _, ok := regulation.Lookup(key); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRegulation, key)
		}
	}

	return lo.Uniq(keys), nil
}

// normalizeEmail trims and validates an email address
func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)

	if len(email) > maxEmailLength || !govalidator.IsEmail(email) {
		return "", ErrInvalidEmailFormat
	}

	return email, nil
}

// normalizeCountry validates an optional ISO 3166-1 alpha-2 code
func normalizeCountry(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", nil
	}

	if !govalidator.IsISO3166Alpha2(strings.ToUpper(code)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCountry, code)
	}

	return strings.ToLower(code), nil
}

// validateText caps a free text field by rune count
func validateText(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrFieldTooLong, field, limit)
	}

	return nil
}

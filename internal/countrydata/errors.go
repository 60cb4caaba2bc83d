package countrydata

import "errors"

var (
	// ErrCountryNotFound is returned when no data is on file for a country code
	ErrCountryNotFound = errors.New("country data not found")
	// ErrInvalidStatus is returned when an implementation status is not recognised
	ErrInvalidStatus = errors.New("invalid implementation status")
	// ErrMissingBaseURL is returned when the country data API base URL is not configured
	ErrMissingBaseURL = errors.New("country data base URL is required")
	// ErrRequestFailed is returned when the country data API request fails
	ErrRequestFailed = errors.New("country data request failed")
	// ErrUnexpectedStatus is returned when the country data API returns an unexpected HTTP status
	ErrUnexpectedStatus = errors.New("unexpected country data response status")
	// ErrDecodeFailed is returned when country data cannot be decoded
	ErrDecodeFailed = errors.New("country data could not be decoded")
)

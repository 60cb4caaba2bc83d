package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
	// ErrInvalidEmailFormat is returned when the email address format is invalid
	ErrInvalidEmailFormat = errors.New("invalid email format")
	// ErrEmailUndeliverable is returned when the email domain cannot receive mail
	ErrEmailUndeliverable = errors.New("email domain does not accept mail")
	// ErrTermsRequired is returned when the terms were not accepted
	ErrTermsRequired = errors.New("terms must be accepted")
	// ErrConsentRequired is returned when a newsletter signup lacks marketing consent
	ErrConsentRequired = errors.New("marketing consent required")
	// ErrInvalidCountry is returned when a country code is not ISO 3166-1 alpha-2
	ErrInvalidCountry = errors.New("invalid country code")
	// ErrTooManyValues is returned when a profile set exceeds the allowed length
	ErrTooManyValues = errors.New("too many values")
	// ErrFieldTooLong is returned when a string field exceeds its length cap
	ErrFieldTooLong = errors.New("field too long")
	// ErrUnknownValue is returned when an enum field holds an unknown value
	ErrUnknownValue = errors.New("unknown value")
	// ErrRegulationRequired is returned when no regulation key was provided
	ErrRegulationRequired = errors.New("regulation required")
	// ErrUnknownRegulation is returned when a regulation key is not in the catalogue
	ErrUnknownRegulation = errors.New("unknown regulation")
	// ErrNoFineRule is returned when a regulation has no fine rule
	ErrNoFineRule = errors.New("no fine rule for regulation")
	// ErrInvalidToken is returned when a report token is malformed
	ErrInvalidToken = errors.New("invalid report token")
	// ErrReportNotFound is returned when no report exists for a token
	ErrReportNotFound = errors.New("report not found")
	// ErrAlreadySubscribed is returned when a newsletter email is already subscribed
	ErrAlreadySubscribed = errors.New("email already subscribed")
	// ErrDeliveryNotConfigured is returned when report delivery is unavailable
	ErrDeliveryNotConfigured = errors.New("report delivery not configured")
)

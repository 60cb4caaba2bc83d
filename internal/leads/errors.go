package leads

import "errors"

var (
	// ErrInvalidEmailFormat is returned when the email format is not valid
	ErrInvalidEmailFormat = errors.New("invalid email format")
	// ErrInvalidDomainFormat is returned when the email domain is not a registrable domain
	ErrInvalidDomainFormat = errors.New("invalid domain format")
	// ErrNoMailExchanger is returned when the email domain publishes no MX record
	ErrNoMailExchanger = errors.New("email domain does not accept mail")
	// ErrLookupFailed is returned when the MX lookup cannot be completed
	ErrLookupFailed = errors.New("mx lookup failed")
)

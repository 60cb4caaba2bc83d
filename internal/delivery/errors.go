package delivery

import "errors"

var (
	// ErrMissingStore is returned when the dispatcher is created without a store
	ErrMissingStore = errors.New("delivery store is required")
	// ErrMailerDisabled is returned when an email is requested but no mailer is configured
	ErrMailerDisabled = errors.New("email delivery is not configured")
)

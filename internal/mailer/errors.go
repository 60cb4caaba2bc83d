package mailer

import "errors"

var (
	// ErrMissingAPIKey is returned when the email API key is not configured
	ErrMissingAPIKey = errors.New("email API key is required")
	// ErrMissingSender is returned when no sender address is configured
	ErrMissingSender = errors.New("email sender address is required")
	// ErrMissingRecipient is returned when an email has no recipient
	ErrMissingRecipient = errors.New("email recipient is required")
	// ErrSendFailed is returned when the email API request fails
	ErrSendFailed = errors.New("email send failed")
	// ErrUnexpectedStatus is returned when the email API returns an unexpected HTTP status
	ErrUnexpectedStatus = errors.New("unexpected email API response status")
	// ErrRenderFailed is returned when the email template cannot be rendered
	ErrRenderFailed = errors.New("email render failed")
)

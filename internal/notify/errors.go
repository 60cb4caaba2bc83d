package notify

import "errors"

var (
	// ErrMissingWebhookURL is returned when the Slack webhook URL is not configured
	ErrMissingWebhookURL = errors.New("slack webhook URL is required")
	// ErrInvalidWebhookURL is returned when the webhook URL is not an absolute http(s) URL
	ErrInvalidWebhookURL = errors.New("invalid slack webhook URL")
	// ErrNotificationFailed is returned when a Slack webhook request fails
	ErrNotificationFailed = errors.New("slack notification failed")
	// ErrUnexpectedStatus is returned when Slack returns an unexpected HTTP status
	ErrUnexpectedStatus = errors.New("unexpected slack webhook response status")
)

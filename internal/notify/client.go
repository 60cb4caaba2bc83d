// Package notify posts internal notifications about new leads and reports to Slack.
package notify

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/locale"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultAttempts       = 2
	defaultBackoff        = 500 * time.Millisecond
	// maxRetryWait caps the wait requested by a Retry-After header
	maxRetryWait = 5 * time.Second
)

// Client posts team notifications to a Slack incoming webhook. Notifications
// are written in a single locale regardless of the visitor's language.
type Client struct {
	webhook    string
	locale     string
	httpClient *http.Client
	attempts   int
	backoff    time.Duration
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLocale sets the language the notifications are written in; unsupported
// locales fall back to the default
func WithLocale(lang string) Option {
	return func(c *Client) {
		c.locale = locale.Normalize(lang)
	}
}

// WithRetry sets how often a rate limited or failing webhook call is attempted
// and the wait between attempts
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}

		if backoff >= 0 {
			c.backoff = backoff
		}
	}
}

// New creates a client for the webhook URL
func New(webhookURL string, opts ...Option) (*Client, error) {
	if webhookURL == "" {
		return nil, ErrMissingWebhookURL
	}

	u, err := url.Parse(webhookURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWebhookURL, webhookURL)
	}

	c := &Client{
		webhook:    u.String(),
		locale:     locale.Default,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		attempts:   defaultAttempts,
		backoff:    defaultBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

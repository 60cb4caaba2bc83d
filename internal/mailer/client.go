// Package mailer sends transactional emails through a Resend-compatible API.
package mailer

import (
	"net/http"
	"strings"
	"time"
)

const (
	// defaultBaseURL is the root endpoint of the email API
	defaultBaseURL = "https://api.resend.com"
	// defaultRequestTimeout is the default timeout for email API requests
	defaultRequestTimeout = 10 * time.Second
)

// Client sends emails through the email API
type Client struct {
	apiKey     string
	from       string
	replyTo    string
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the mailer
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default email API base URL
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithReplyTo sets the reply-to address of outgoing emails
func WithReplyTo(addr string) Option {
	return func(c *Client) {
		c.replyTo = addr
	}
}

// New creates a mailer sending from the given address
func New(apiKey, from string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if from == "" {
		return nil, ErrMissingSender
	}

	client := &Client{
		apiKey:     apiKey,
		from:       from,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

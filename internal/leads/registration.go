package leads

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	rdaplib "github.com/openrdap/rdap"
)

// defaultRDAPTimeout is the default timeout for RDAP queries
const defaultRDAPTimeout = 10 * time.Second

// Registration is the public registration record of a company domain
type Registration struct {
	// Registrar is the name or handle of the registrar
	Registrar string `json:"registrar,omitempty"`
	// RegisteredAt is when the domain was first registered
	RegisteredAt *time.Time `json:"registeredAt,omitempty"`
}

// RegistrationChecker looks up domain registrations over RDAP
type RegistrationChecker struct {
	client  *rdaplib.Client
	server  *url.URL
	timeout time.Duration
}

// RegistrationOption configures the RegistrationChecker
type RegistrationOption func(*RegistrationChecker)

// WithRDAPHTTPClient overrides the HTTP client used for RDAP queries
func WithRDAPHTTPClient(httpClient *http.Client) RegistrationOption {
	return func(c *RegistrationChecker) {
		if httpClient != nil {
			c.client.HTTP = httpClient
		}
	}
}

// WithRDAPTimeout overrides the timeout for RDAP queries
func WithRDAPTimeout(timeout time.Duration) RegistrationOption {
	return func(c *RegistrationChecker) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRDAPServer queries a fixed RDAP server instead of the IANA bootstrap registry
func WithRDAPServer(server *url.URL) RegistrationOption {
	return func(c *RegistrationChecker) {
		c.server = server
	}
}

// NewRegistrationChecker creates an RDAP backed registration lookup
func NewRegistrationChecker(opts ...RegistrationOption) *RegistrationChecker {
	c := &RegistrationChecker{
		client:  &rdaplib.Client{},
		timeout: defaultRDAPTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Lookup returns the registration record of the domain
func (c *RegistrationChecker) Lookup(ctx context.Context, domain string) (Registration, error) {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if domain == "" {
		return Registration{}, ErrInvalidDomainFormat
	}

	req := &rdaplib.Request{
		Type:    rdaplib.DomainRequest,
		Query:   domain,
		Server:  c.server,
		Timeout: c.timeout,
	}

	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		return Registration{}, fmt.Errorf("%w: rdap %s: %v", ErrLookupFailed, domain, err)
	}

	d, ok := resp.Object.(*rdaplib.Domain)
	if !ok || d == nil {
		return Registration{}, fmt.Errorf("%w: rdap %s returned no domain object", ErrLookupFailed, domain)
	}

	return buildRegistration(d), nil
}

// buildRegistration extracts the registrar and registration date from an RDAP domain
func buildRegistration(d *rdaplib.Domain) Registration {
	var reg Registration

	for _, event := range d.Events {
		if !strings.EqualFold(event.Action, "registration") {
			continue
		}

		if t, err := time.Parse(time.RFC3339, event.Date); err == nil {
			t = t.UTC()
			reg.RegisteredAt = &t
		}
	}

	for _, entity := range d.Entities {
		for _, role := range entity.Roles {
			if !strings.EqualFold(role, "registrar") {
				continue
			}

			if entity.VCard != nil && entity.VCard.Name() != "" {
				reg.Registrar = entity.VCard.Name()
			} else {
				reg.Registrar = entity.Handle
			}

			return reg
		}
	}

	return reg
}

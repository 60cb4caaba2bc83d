package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	// defaultDNSServer is the resolver used for MX lookups
	defaultDNSServer = "1.1.1.1:53"
	// defaultDNSTimeout is the per-query DNS timeout
	defaultDNSTimeout = 3 * time.Second
)

// MXChecker verifies that a domain can receive email
type MXChecker struct {
	client    *dns.Client
	dnsServer string
}

// MXOption configures the MXChecker
type MXOption func(*MXChecker)

// WithDNSServer overrides the DNS server used for lookups
func WithDNSServer(server string) MXOption {
	return func(c *MXChecker) {
		if server != "" {
			c.dnsServer = server
		}
	}
}

// WithDNSTimeout overrides the per-query DNS timeout
func WithDNSTimeout(timeout time.Duration) MXOption {
	return func(c *MXChecker) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// NewMXChecker creates an MX checker
func NewMXChecker(opts ...MXOption) *MXChecker {
	c := &MXChecker{
		client:    &dns.Client{Timeout: defaultDNSTimeout},
		dnsServer: defaultDNSServer,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check returns nil when the domain publishes at least one usable MX record.
// A domain without MX but with an A record is accepted as an implicit MX.
func (c *MXChecker) Check(ctx context.Context, domain string) error {
	domain = strings.TrimSpace(strings.ToLower(domain))

	answers, err := c.query(ctx, domain, dns.TypeMX)
	if err != nil {
		return err
	}

	for _, rr := range answers {
		mx, ok := rr.(*dns.MX)
		if !ok {
			continue
		}

		// a null MX (RFC 7505) explicitly refuses mail
		if mx.Mx == "." {
			return fmt.Errorf("%w: %s", ErrNoMailExchanger, domain)
		}

		return nil
	}

	answers, err = c.query(ctx, domain, dns.TypeA)
	if err != nil {
		return err
	}

	for _, rr := range answers {
		if _, ok := rr.(*dns.A); ok {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrNoMailExchanger, domain)
}

func (c *MXChecker) query(ctx context.Context, domain string, qtype uint16) ([]dns.RR, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), qtype)
	msg.RecursionDesired = true

	resp, _, err := c.client.ExchangeContext(ctx, msg, c.dnsServer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	if resp == nil {
		return nil, ErrLookupFailed
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
		return resp.Answer, nil
	case dns.RcodeNameError:
		return nil, fmt.Errorf("%w: %s does not exist", ErrNoMailExchanger, domain)
	default:
		return nil, fmt.Errorf("%w: rcode %s", ErrLookupFailed, dns.RcodeToString[resp.Rcode])
	}
}

package leads

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// Enrichment is what the lead form learns from an email address
type Enrichment struct {
	DomainInfo
	// CompanyDomain is the registrable domain, empty for free mail providers
	CompanyDomain string `json:"companyDomain,omitempty"`
	// MXVerified is set when an MX check ran
	MXVerified *bool `json:"mxVerified,omitempty"`
	// Registration is the RDAP record of the company domain, when looked up
	Registration *Registration `json:"registration,omitempty"`
}

// Enricher derives company information from lead email addresses
type Enricher struct {
	mx           *MXChecker
	registration *RegistrationChecker
}

// EnricherOption configures the Enricher
type EnricherOption func(*Enricher)

// WithRegistrationLookup enables RDAP lookups of company domains
func WithRegistrationLookup(c *RegistrationChecker) EnricherOption {
	return func(e *Enricher) {
		e.registration = c
	}
}

// NewEnricher creates an enricher; a nil checker disables MX verification
func NewEnricher(mx *MXChecker, opts ...EnricherOption) *Enricher {
	e := &Enricher{mx: mx}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Enrich parses the address and, when enabled, verifies its domain accepts mail.
// ErrNoMailExchanger is returned for domains that cannot receive email; lookup
// failures are logged and leave MXVerified unset.
func (e *Enricher) Enrich(ctx context.Context, email string) (Enrichment, error) {
	info, err := ParseEmail(email)
	if err != nil {
		return Enrichment{}, err
	}

	out := Enrichment{DomainInfo: info, CompanyDomain: info.CompanyDomain()}

	if e == nil {
		return out, nil
	}

	if e.mx != nil {
		err = e.mx.Check(ctx, info.Domain)

		switch {
		case err == nil:
			verified := true
			out.MXVerified = &verified
		case errors.Is(err, ErrNoMailExchanger):
			return Enrichment{}, err
		default:
			log.Warn().Err(err).Str("domain", info.Domain).Msg("mx verification skipped")
		}
	}

	if e.registration != nil && out.CompanyDomain != "" {
		reg, err := e.registration.Lookup(ctx, out.CompanyDomain)
		if err != nil {
			log.Debug().Err(err).Str("domain", out.CompanyDomain).Msg("registration lookup skipped")
		} else {
			out.Registration = &reg
		}
	}

	return out, nil
}

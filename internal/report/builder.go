package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/countrydata"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/maturity"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/metrics"
)

// defaultLookupTimeout bounds the country data lookup of a single report
const defaultLookupTimeout = 2 * time.Second

// Builder builds reports and enriches them with national data. It holds no
// per-request state and is safe for concurrent use.
type Builder struct {
	countries     countrydata.Provider
	lookupTimeout time.Duration
	scorer        *maturity.Scorer
	metrics       *metrics.Metrics
	now           func() time.Time
}

// Option configures the Builder
type Option func(*Builder)

// WithCountryProvider sets the provider used for national enrichment
func WithCountryProvider(p countrydata.Provider) Option {
	return func(b *Builder) {
		b.countries = p
	}
}

// WithLookupTimeout bounds the country lookup; zero or negative keeps the default
func WithLookupTimeout(d time.Duration) Option {
	return func(b *Builder) {
		if d > 0 {
			b.lookupTimeout = d
		}
	}
}

// WithScorer sets the maturity questionnaire scorer
func WithScorer(s *maturity.Scorer) Option {
	return func(b *Builder) {
		if s != nil {
			b.scorer = s
		}
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Builder) {
		b.metrics = m
	}
}

// WithClock overrides the report timestamp source
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder creates a report builder
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		lookupTimeout: defaultLookupTimeout,
		scorer:        maturity.Default(),
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build computes the report for the input. National enrichment is best-effort:
// a missing, failing or slow country lookup produces a warning and the report
// is returned without it.
func (b *Builder) Build(ctx context.Context, in Input) ComplianceReport {
	country, warning := b.lookupCountry(ctx, in.Country)

	rep := Assemble(in, country, b.scorer, b.now())
	if warning != nil {
		rep.Warnings = append(rep.Warnings, *warning)
	}

	b.metrics.IncrementReport(rep.Maturity != nil)

	for _, r := range rep.Regulations {
		b.metrics.IncrementRegulationMatch(r.Key, r.Tier.String())
	}

	return rep
}

func (b *Builder) lookupCountry(ctx context.Context, code string) (*countrydata.Country, *Warning) {
	code = countrydata.NormalizeCode(code)
	if code == "" || b.countries == nil {
		b.metrics.IncrementCountryLookup("skipped")
		return nil, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, b.lookupTimeout)
	defer cancel()

	country, err := b.countries.Country(lookupCtx, code)

	switch {
	case err == nil:
		b.metrics.IncrementCountryLookup("hit")
		return &country, nil
	case errors.Is(err, countrydata.ErrCountryNotFound):
		b.metrics.IncrementCountryLookup("missing")

		return nil, &Warning{
			Code:    WarningCountryNotFound,
			Message: fmt.Sprintf("no national data on file for %q", code),
		}
	default:
		b.metrics.IncrementCountryLookup("error")
		log.Warn().Err(err).Str("country", code).Msg("country data lookup failed, building report without national data")

		return nil, &Warning{
			Code:    WarningCountryUnavailable,
			Message: fmt.Sprintf("national data for %q is temporarily unavailable", code),
		}
	}
}

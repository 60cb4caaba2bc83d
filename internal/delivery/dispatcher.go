// Package delivery hands a finished report to storage, email and team
// notification, tolerating failures of individual channels.
package delivery

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/metrics"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/report"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/store"
)

const (
	// ChannelStore is the persistence channel
	ChannelStore = "store"
	// ChannelEmail is the user email channel
	ChannelEmail = "email"
	// ChannelSlack is the team notification channel
	ChannelSlack = "slack"

	// defaultTimeout bounds each channel
	defaultTimeout = 10 * time.Second
)

// Mailer sends report emails
type Mailer interface {
	SendReport(ctx context.Context, to, locale string, rep report.ComplianceReport, link string) error
}

// Notifier posts team notifications
type Notifier interface {
	NotifyReport(ctx context.Context, snap store.ReportSnapshot) error
	NotifyLead(ctx context.Context, lead store.Lead) error
}

// Outcome reports which channels succeeded; Errors is keyed by channel
type Outcome struct {
	Stored   bool              `json:"stored"`
	Emailed  bool              `json:"emailed"`
	Notified bool              `json:"notified"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// OK is true when no channel failed
func (o Outcome) OK() bool {
	return len(o.Errors) == 0
}

// Dispatcher delivers reports and leads
type Dispatcher struct {
	store      store.Store
	mailer     Mailer
	notifier   Notifier
	metrics    *metrics.Metrics
	reportLink string
	timeout    time.Duration
}

// Option configures the Dispatcher
type Option func(*Dispatcher)

// WithMailer enables the email channel
func WithMailer(m Mailer) Option {
	return func(d *Dispatcher) {
		d.mailer = m
	}
}

// WithNotifier enables the team notification channel
func WithNotifier(n Notifier) Option {
	return func(d *Dispatcher) {
		d.notifier = n
	}
}

// WithMetrics records delivery outcomes
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithReportLink sets the public URL reports are linked from; the token is appended
func WithReportLink(base string) Option {
	return func(d *Dispatcher) {
		d.reportLink = strings.TrimRight(base, "/")
	}
}

// WithTimeout bounds each channel
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// NewDispatcher creates a dispatcher persisting to st
func NewDispatcher(st store.Store, opts ...Option) (*Dispatcher, error) {
	if st == nil {
		return nil, ErrMissingStore
	}

	d := &Dispatcher{store: st, timeout: defaultTimeout}

	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Link returns the public URL of a stored report, empty when unconfigured
func (d *Dispatcher) Link(token string) string {
	if d.reportLink == "" || token == "" {
		return ""
	}

	return d.reportLink + "/" + url.PathEscape(token)
}

// Deliver stores the report, then emails it and announces it concurrently.
// The email carries the report link only when the report was stored, and the
// team is only told about stored reports. Email and Slack failures do not
// affect each other.
func (d *Dispatcher) Deliver(ctx context.Context, snap store.ReportSnapshot) Outcome {
	var (
		mu  sync.Mutex
		out Outcome
		g   errgroup.Group
	)

	record := func(channel string, err error, ok *bool) {
		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			if out.Errors == nil {
				out.Errors = map[string]string{}
			}

			out.Errors[channel] = err.Error()

			log.Error().Err(err).Str("channel", channel).Str("token", snap.Token).Msg("report delivery failed")
		} else {
			*ok = true
		}

		d.metrics.IncrementDelivery(channel, err == nil)
	}

	storeCtx, cancel := context.WithTimeout(ctx, d.timeout)
	record(ChannelStore, d.store.SaveReport(storeCtx, snap), &out.Stored)
	cancel()

	link := ""
	if out.Stored {
		link = d.Link(snap.Token)
	}

	if d.mailer != nil && snap.Email != "" {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			record(ChannelEmail, d.mailer.SendReport(cctx, snap.Email, snap.Locale, snap.Report, link), &out.Emailed)

			return nil
		})
	}

	if d.notifier != nil && out.Stored {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			record(ChannelSlack, d.notifier.NotifyReport(cctx, snap), &out.Notified)

			return nil
		})
	}

	_ = g.Wait()

	return out
}

// Resend emails a stored report again
func (d *Dispatcher) Resend(ctx context.Context, snap store.ReportSnapshot) error {
	if d.mailer == nil {
		return ErrMailerDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.mailer.SendReport(ctx, snap.Email, snap.Locale, snap.Report, d.Link(snap.Token))
	d.metrics.IncrementDelivery(ChannelEmail, err == nil)

	if err != nil {
		return fmt.Errorf("resending report %s: %w", snap.Token, err)
	}

	return nil
}

// CaptureLead stores a lead and then notifies the team. Storage errors are
// returned; notification failures are only logged.
func (d *Dispatcher) CaptureLead(ctx context.Context, lead store.Lead) error {
	if err := d.store.SaveLead(ctx, lead); err != nil {
		return err
	}

	d.metrics.IncrementLead(string(lead.Kind))

	if d.notifier == nil {
		return nil
	}

	nctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.notifier.NotifyLead(nctx, lead)
	d.metrics.IncrementDelivery(ChannelSlack, err == nil)

	if err != nil {
		log.Warn().Err(err).Str("kind", string(lead.Kind)).Msg("lead notification failed")
	}

	return nil
}

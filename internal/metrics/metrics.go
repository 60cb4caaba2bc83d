// Package metrics holds the Prometheus collectors of the hub service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for report building, delivery and the HTTP API.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP request latency by route pattern, method and status
	RequestDuration *prometheus.HistogramVec

	// Reports built, by whether a maturity assessment was included
	ReportsBuilt *prometheus.CounterVec

	// Regulation matches by regulation key and relevance tier
	RegulationMatches *prometheus.CounterVec

	// Country data lookups by outcome: hit, missing, error, skipped
	CountryLookups *prometheus.CounterVec

	// Delivery attempts by channel and result
	Deliveries *prometheus.CounterVec

	// Leads captured by kind
	Leads *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route, method and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route", "method", "status"}),

		ReportsBuilt: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hub_reports_built_total",
			Help: "Total compliance reports built",
		}, []string{"maturity"}), // maturity: "assessed", "skipped"

		RegulationMatches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hub_regulation_matches_total",
			Help: "Total regulations found applicable by key and relevance tier",
		}, []string{"regulation", "tier"}),

		CountryLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hub_country_lookups_total",
			Help: "Total country data lookups by outcome",
		}, []string{"outcome"}),

		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hub_deliveries_total",
			Help: "Total report delivery attempts by channel and result",
		}, []string{"channel", "result"}),

		Leads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hub_leads_total",
			Help: "Total leads captured by kind",
		}, []string{"kind"}),
	}
}

// ObserveRequest records the duration of an HTTP request
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, method, statusClass(status)).Observe(d.Seconds())
	}
}

// IncrementReport records a built report
func (m *Metrics) IncrementReport(withMaturity bool) {
	if m == nil {
		return
	}

	label := "skipped"
	if withMaturity {
		label = "assessed"
	}

	m.ReportsBuilt.WithLabelValues(label).Inc()
}

// IncrementRegulationMatch records an applicable regulation
func (m *Metrics) IncrementRegulationMatch(regulation, tier string) {
	if m != nil {
		m.RegulationMatches.WithLabelValues(regulation, tier).Inc()
	}
}

// IncrementCountryLookup records a country data lookup outcome
func (m *Metrics) IncrementCountryLookup(outcome string) {
	if m != nil {
		m.CountryLookups.WithLabelValues(outcome).Inc()
	}
}

// IncrementDelivery records a delivery attempt
func (m *Metrics) IncrementDelivery(channel string, ok bool) {
	if m == nil {
		return
	}

	result := "failure"
	if ok {
		result = "success"
	}

	m.Deliveries.WithLabelValues(channel, result).Inc()
}

// IncrementLead records a captured lead
func (m *Metrics) IncrementLead(kind string) {
	if m != nil {
		m.Leads.WithLabelValues(kind).Inc()
	}
}

// statusClass collapses a status code into 2xx, 4xx and so on
func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

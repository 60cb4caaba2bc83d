// Package store persists report snapshots and captured leads.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/report"
)

// LeadKind distinguishes contact requests from newsletter subscriptions
type LeadKind string

const (
	LeadKindContact    LeadKind = "contact"
	LeadKindNewsletter LeadKind = "newsletter"
)

// Consent records what the user agreed to when submitting a form
type Consent struct {
	Marketing bool `json:"marketing"`
	Terms     bool `json:"terms"`
}

// ReportSnapshot is a persisted report keyed by an opaque token
type ReportSnapshot struct {
	Token       string                  `json:"token"`
	Email       string                  `json:"email"`
	Locale      string                  `json:"locale"`
	Country     string                  `json:"country,omitempty"`
	Regulations []string                `json:"regulations"`
	CostMin     int64                   `json:"costMin"`
	CostMax     int64                   `json:"costMax"`
	Grade       string                  `json:"grade,omitempty"`
	Consent     Consent                 `json:"consent"`
	Report      report.ComplianceReport `json:"report"`
	CreatedAt   time.Time               `json:"createdAt"`
}

// NewReportSnapshot derives the indexed snapshot columns from a report
func NewReportSnapshot(token, email, locale string, consent Consent, rep report.ComplianceReport) ReportSnapshot {
	return ReportSnapshot{
		Token:       token,
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Locale:      locale,
		Country:     rep.Country,
		Regulations: rep.RegulationKeys(),
		CostMin:     rep.CostTotal.Min,
		CostMax:     rep.CostTotal.Max,
		Grade:       rep.Grade(),
		Consent:     consent,
		Report:      rep,
		CreatedAt:   rep.GeneratedAt,
	}
}

// Lead is a captured contact request or newsletter subscription
type Lead struct {
	ID            uuid.UUID `json:"id"`
	Kind          LeadKind  `json:"kind"`
	Email         string    `json:"email"`
	Name          string    `json:"name,omitempty"`
	Company       string    `json:"company,omitempty"`
	CompanyDomain string    `json:"companyDomain,omitempty"`

	// Registrar and DomainRegisteredAt come from the RDAP record of CompanyDomain
	Registrar          string     `json:"registrar,omitempty"`
	DomainRegisteredAt *time.Time `json:"domainRegisteredAt,omitempty"`

	Message   string    `json:"message,omitempty"`
	Locale    string    `json:"locale"`
	Consent   Consent   `json:"consent"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists reports and leads
type Store interface {
	// SaveReport inserts a snapshot; ErrDuplicateToken when the token exists
	SaveReport(ctx context.Context, snap ReportSnapshot) error
	// GetReport returns the snapshot for a token; ErrNotFound when absent
	GetReport(ctx context.Context, token string) (ReportSnapshot, error)
	// SaveLead inserts a lead; ErrDuplicateLead for a repeated newsletter email
	SaveLead(ctx context.Context, lead Lead) error
	// Ping checks the backend is reachable
	Ping(ctx context.Context) error
	// Close releases backend resources
	Close()
}

// normalizeEmail is the form emails are compared in
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

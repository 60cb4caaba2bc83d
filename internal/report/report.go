// Package report assembles the regulation, fine, cost and maturity evaluations
// of a business profile into a single compliance report.
package report

import (
	"time"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/costs"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/countrydata"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/fines"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/maturity"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/regulation"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/types"
)

const (
	// WarningCountryNotFound means no national data is on file for the requested country
	WarningCountryNotFound = "country_not_found"
	// WarningCountryUnavailable means the country data lookup failed or timed out
	WarningCountryUnavailable = "country_unavailable"
	// WarningInvalidRevenue means the supplied revenue was rejected and the bucket value was used
	WarningInvalidRevenue = "invalid_revenue"
)

// Input is everything a report is computed from
type Input struct {
	// Profile is the business being assessed
	Profile types.BusinessProfile
	// Revenue is the exact annual revenue in EUR; nil falls back to the profile's bucket
	Revenue *int64
	// Answers are the maturity questionnaire ratings; nil skips the assessment
	Answers maturity.Answers
	// Country is the ISO code used for national enrichment; empty skips it
	Country string
	// Maturity overrides the maturity level used for cost discounts
	Maturity types.MaturityLevel
}

// Warning records a part of the report that was degraded or omitted
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ComplianceReport is the combined evaluation of a business profile
type ComplianceReport struct {
	// Profile is the assessed business
	Profile types.BusinessProfile `json:"profile"`
	// Regulations are the applicable regulations, highest relevance first
	Regulations []regulation.Evaluated `json:"regulations"`
	// Fines maps regulation keys to the maximum fine exposure
	Fines map[string]fines.Result `json:"fines"`
	// Costs maps regulation keys to the implementation cost estimate
	Costs map[string]costs.Estimate `json:"costs"`
	// CostTotal is the summed cost range of all applicable regulations
	CostTotal costs.Range `json:"costTotal"`
	// MaturityLevel is the level the cost estimates were discounted with
	MaturityLevel types.MaturityLevel `json:"maturityLevel"`
	// Maturity is the scored questionnaire, if answers were given
	Maturity *maturity.Assessment `json:"maturity,omitempty"`
	// Country is the country used for national enrichment
	Country string `json:"country,omitempty"`
	// National maps regulation keys to national implementation metadata
	National map[string]countrydata.RegulationStatus `json:"national,omitempty"`
	// Warnings lists degraded parts of the report
	Warnings []Warning `json:"warnings,omitempty"`
	// GeneratedAt is when the report was computed
	GeneratedAt time.Time `json:"generatedAt"`
}

// RegulationKeys returns the keys of the applicable regulations in report order
func (r ComplianceReport) RegulationKeys() []string {
	return regulation.Keys(r.Regulations)
}

// Grade returns the maturity grade letter, empty when no assessment was made
func (r ComplianceReport) Grade() string {
	if r.Maturity == nil {
		return ""
	}

	return r.Maturity.Grade.Letter
}

// Assemble computes the report without any I/O. country may be nil when no
// national data is available. The scorer defaults to the standard questionnaire.
func Assemble(in Input, country *countrydata.Country, scorer *maturity.Scorer, now time.Time) ComplianceReport {
	if scorer == nil {
		scorer = maturity.Default()
	}

	rep := ComplianceReport{
		Profile:     in.Profile.Clone(),
		Regulations: regulation.Evaluate(in.Profile),
		Country:     countrydata.NormalizeCode(in.Country),
		GeneratedAt: now.UTC(),
	}

	keys := rep.RegulationKeys()

	revenue, err := fines.ResolveRevenue(in.Revenue, in.Profile.AnnualRevenue)
	if err != nil {
		revenue = fines.RevenueForBucket(in.Profile.AnnualRevenue)
		rep.Warnings = append(rep.Warnings, Warning{Code: WarningInvalidRevenue, Message: err.Error()})
	}

	rep.Fines = fines.ForRegulations(keys, revenue)

	if in.Answers != nil {
		assessment := scorer.Score(in.Answers)
		rep.Maturity = &assessment
	}

	rep.MaturityLevel = resolveMaturity(in.Maturity, rep.Maturity)

	estimates := costs.Estimates(keys, in.Profile.CompanySize, rep.MaturityLevel)
	rep.Costs = make(map[string]costs.Estimate, len(estimates))

	for _, est := range estimates {
		rep.Costs[est.Regulation] = est
	}

	rep.CostTotal = costs.Total(estimates)

	if country != nil {
		rep.National = national(keys, *country)
	}

	return rep
}

// resolveMaturity prefers an explicit level, then the assessment grade
func resolveMaturity(explicit types.MaturityLevel, assessment *maturity.Assessment) types.MaturityLevel {
	if explicit.Valid() {
		return explicit
	}

	if assessment != nil {
		return assessment.Level()
	}

	return types.MaturityNone
}

// national copies the entries of the applicable regulations; regulations
// without an entry are left out
func national(keys []string, country countrydata.Country) map[string]countrydata.RegulationStatus {
	out := map[string]countrydata.RegulationStatus{}

	for _, key := range keys {
		if rs, ok := country.Regulation(key); ok {
			out[key] = rs
		}
	}

	return out
}

// Package costs estimates the implementation cost range of the regulations that
// apply to a business, scaled by company size and existing compliance maturity.
package costs

import (
	"github.com/shopspring/decimal"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/types"
)

const (
	// DefaultSize is used when the company size is unknown
	DefaultSize = types.CompanySizeMedium
	// DefaultMaturity is used when the maturity level is unknown
	DefaultMaturity = types.MaturityNone
)

// LineItem is one scaled cost position in EUR
type LineItem struct {
	Label string `json:"label"`
	Min   int64  `json:"minAmount"`
	Max   int64  `json:"maxAmount"`
}

// Estimate is the cost range of one regulation
type Estimate struct {
	// Regulation is the regulation key
	Regulation string `json:"regulation"`
	// Available is false when no cost table is on file for the regulation
	Available bool `json:"available"`
	// Breakdown lists the scaled line items in table order
	Breakdown []LineItem `json:"breakdown"`
	// TotalMin is the sum of the item minimums
	TotalMin int64 `json:"totalMin"`
	// TotalMax is the sum of the item maximums
	TotalMax int64 `json:"totalMax"`
}

// Range is an aggregated cost range across estimates
type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Factor returns the combined size and maturity factor, applying the defaults
// for unknown values
func Factor(size types.CompanySize, maturity types.MaturityLevel) decimal.Decimal {
	multiplier, ok := SizeMultiplier(size)
	if !ok {
		multiplier = sizeMultipliers[DefaultSize]
	}

	discount, ok := MaturityDiscount(maturity)
	if !ok {
		discount = maturityDiscounts[DefaultMaturity]
	}

	return multiplier.Mul(discount)
}

// scale applies the factor and rounds to the nearest 100, half away from zero
func scale(amount int64, factor decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(factor).Round(-2).IntPart()
}

// EstimateOne returns the cost estimate of a single regulation
func EstimateOne(key string, size types.CompanySize, maturity types.MaturityLevel) Estimate {
	est := Estimate{Regulation: key, Breakdown: []LineItem{}}

	items, ok := baseTables[key]
	if !ok {
		return est
	}

	factor := Factor(size, maturity)
	est.Available = true

	for _, item := range items {
		line := LineItem{
			Label: item.Label,
			Min:   scale(item.Min, factor),
			Max:   scale(item.Max, factor),
		}

		est.Breakdown = append(est.Breakdown, line)
		est.TotalMin += line.Min
		est.TotalMax += line.Max
	}

	return est
}

// Estimates returns one estimate per key in input order
func Estimates(keys []string, size types.CompanySize, maturity types.MaturityLevel) []Estimate {
	out := make([]Estimate, 0, len(keys))

	for _, key := range keys {
		out = append(out, EstimateOne(key, size, maturity))
	}

	return out
}

// Total sums the estimate totals
func Total(estimates []Estimate) Range {
	var total Range

	for _, est := range estimates {
		total.Min += est.TotalMin
		total.Max += est.TotalMax
	}

	return total
}

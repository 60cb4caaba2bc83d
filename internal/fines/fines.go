// Package fines calculates the maximum administrative fine a business is exposed
// to under each regulation, given its annual revenue.
package fines

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/regulation"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/types"
)

// DefaultRevenue is the revenue assumed when no revenue bucket is supplied
const DefaultRevenue int64 = 10_000_000

// Basis names which legal cap produced a fine
type Basis string

const (
	// BasisFixed means the flat cap produced the fine
	BasisFixed Basis = "fixed"
	// BasisPercentage means the share of annual turnover produced the fine
	BasisPercentage Basis = "percentage"
)

// Rule is the maximum-fine rule of one regulation
type Rule struct {
	// FixedMax is the flat cap in EUR, zero when the regulation has none
	FixedMax int64
	// PercentMax is the cap as a percentage of worldwide annual turnover, zero when none
	PercentMax decimal.Decimal
	// HigherOfTwo applies whichever of the two caps is greater
	HigherOfTwo bool
}

// Result is the fine exposure for one regulation
type Result struct {
	// Regulation is the regulation key
	Regulation string `json:"regulation"`
	// MaxFine is the maximum fine in EUR
	MaxFine int64 `json:"maxFineAmount"`
	// Basis names the cap that produced MaxFine
	Basis Basis `json:"basis"`
	// Revenue is the annual revenue the calculation used
	Revenue int64 `json:"revenue"`
	// FixedMax is the flat cap of the rule
	FixedMax int64 `json:"fixedMax"`
	// PercentMax is the turnover percentage of the rule
	PercentMax decimal.Decimal `json:"percentMax"`
	// PercentFine is the turnover-based amount before comparison
	PercentFine int64 `json:"percentFine"`
	// Description is a display string for the basis
	Description string `json:"basisDescription"`
}

// rules holds the maximum fine rules; regulations without an entry have no fine on file
var rules = map[string]Rule{
	regulation.KeyDSGVO:   {FixedMax: 20_000_000, PercentMax: decimal.NewFromInt(4), HigherOfTwo: true},
	regulation.KeyNIS2:    {FixedMax: 10_000_000, PercentMax: decimal.NewFromInt(2), HigherOfTwo: true},
	regulation.KeyAIAct:   {FixedMax: 35_000_000, PercentMax: decimal.NewFromInt(7), HigherOfTwo: true},
	regulation.KeyCRA:     {FixedMax: 15_000_000, PercentMax: decimal.RequireFromString("2.5"), HigherOfTwo: true},
	regulation.KeyMiCA:    {FixedMax: 5_000_000, PercentMax: decimal.NewFromInt(5), HigherOfTwo: true},
	regulation.KeyDataAct: {FixedMax: 20_000_000, PercentMax: decimal.NewFromInt(4), HigherOfTwo: true},
	regulation.KeyDORA:    {PercentMax: decimal.NewFromInt(2)},
	regulation.KeyDSA:     {PercentMax: decimal.NewFromInt(6)},
	regulation.KeyCSDDD:   {PercentMax: decimal.NewFromInt(5)},
	regulation.KeyEAA:     {FixedMax: 80_000},
	regulation.KeyEIDAS:   {FixedMax: 5_000_000},

	regulation.KeyWhistleblower: {FixedMax: 20_000},
}

// bucketRevenue maps a revenue bucket to its representative annual revenue
var bucketRevenue = map[types.RevenueBucket]int64{
	types.RevenueUnder2M: 1_000_000,
	types.Revenue2To10M:  6_000_000,
	types.Revenue10To50M: 30_000_000,
	types.RevenueOver50M: 100_000_000,
}

var hundred = decimal.NewFromInt(100)

// RuleFor returns the fine rule of a regulation
func RuleFor(key string) (Rule, bool) {
	r, ok := rules[key]

	return r, ok
}

// RevenueForBucket resolves a bucket to a representative revenue. Empty and
// unknown buckets resolve to DefaultRevenue.
func RevenueForBucket(bucket types.RevenueBucket) int64 {
	if revenue, ok := bucketRevenue[bucket]; ok {
		return revenue
	}

	return DefaultRevenue
}

// ResolveRevenue picks the exact revenue when given, otherwise the bucket's
// representative value
func ResolveRevenue(exact *int64, bucket types.RevenueBucket) (int64, error) {
	if exact == nil {
		return RevenueForBucket(bucket), nil
	}

	if *exact < 0 {
		return 0, ErrNegativeRevenue
	}

	return *exact, nil
}

// Calculate returns the fine exposure of a regulation for the given annual
// revenue. The boolean is false when no fine rule is on file for the key.
// Negative revenue is treated as zero.
func Calculate(key string, revenue int64) (Result, bool) {
	rule, ok := rules[key]
	if !ok {
		return Result{}, false
	}

	if revenue < 0 {
		revenue = 0
	}

	percentFine := decimal.NewFromInt(revenue).Mul(rule.PercentMax).Div(hundred).Round(0).IntPart()

	res := Result{
		Regulation:  key,
		Revenue:     revenue,
		FixedMax:    rule.FixedMax,
		PercentMax:  rule.PercentMax,
		PercentFine: percentFine,
	}

	switch {
	case rule.HigherOfTwo:
		if rule.FixedMax >= percentFine {
			res.MaxFine, res.Basis = rule.FixedMax, BasisFixed
		} else {
			res.MaxFine, res.Basis = percentFine, BasisPercentage
		}
	case rule.FixedMax == 0:
		res.MaxFine, res.Basis = percentFine, BasisPercentage
	default:
		res.MaxFine, res.Basis = rule.FixedMax, BasisFixed
	}

	res.Description = Describe(res, language.English)

	return res, true
}

// ForBucket is Calculate with the revenue resolved from a bucket
func ForBucket(key string, bucket types.RevenueBucket) (Result, bool) {
	return Calculate(key, RevenueForBucket(bucket))
}

// ForRegulations calculates the exposure of every key with a fine rule on
// file, keyed by regulation
func ForRegulations(keys []string, revenue int64) map[string]Result {
	out := make(map[string]Result, len(keys))

	for _, key := range keys {
		if res, ok := Calculate(key, revenue); ok {
			out[key] = res
		}
	}

	return out
}

// Describe renders the basis of a result for display in the given language
func Describe(res Result, tag language.Tag) string {
	p := message.NewPrinter(tag)
	german := tag == language.German

	rule := rules[res.Regulation]

	switch {
	case res.Basis == BasisPercentage && german:
		return p.Sprintf("%v %% des weltweiten Jahresumsatzes (%d EUR)", res.PercentMax.String(), res.MaxFine)
	case res.Basis == BasisPercentage:
		return p.Sprintf("%v%% of worldwide annual turnover (EUR %d)", res.PercentMax.String(), res.MaxFine)
	case rule.HigherOfTwo && german:
		return p.Sprintf("Fixbetrag von %d EUR (höher als %v %% des Umsatzes)", res.MaxFine, res.PercentMax.String())
	case rule.HigherOfTwo:
		return p.Sprintf("fixed cap of EUR %d (higher than %v%% of turnover)", res.MaxFine, res.PercentMax.String())
	case german:
		return p.Sprintf("Fixbetrag von %d EUR", res.MaxFine)
	default:
		return p.Sprintf("fixed cap of EUR %d", res.MaxFine)
	}
}

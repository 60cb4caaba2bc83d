package costs

import (
	"github.com/shopspring/decimal"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/regulation"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/types"
)

// sizeMultipliers scale the base amounts, which assume a medium-sized company
var sizeMultipliers = map[types.CompanySize]decimal.Decimal{
	types.CompanySizeMicro:  decimal.RequireFromString("0.3"),
	types.CompanySizeSmall:  decimal.RequireFromString("0.6"),
	types.CompanySizeMedium: decimal.RequireFromString("1.0"),
	types.CompanySizeLarge:  decimal.RequireFromString("2.0"),
}

// maturityDiscounts reduce the base amounts by the compliance work already in place
var maturityDiscounts = map[types.MaturityLevel]decimal.Decimal{
	types.MaturityNone:     decimal.RequireFromString("1.0"),
	types.MaturityBasic:    decimal.RequireFromString("0.7"),
	types.MaturityAdvanced: decimal.RequireFromString("0.4"),
}

// SizeMultiplier returns the factor applied to the base amounts for a company size
func SizeMultiplier(size types.CompanySize) (decimal.Decimal, bool) {
	m, ok := sizeMultipliers[size]
	return m, ok
}

// MaturityDiscount returns the factor applied to the base amounts for a maturity level
func MaturityDiscount(level types.MaturityLevel) (decimal.Decimal, bool) {
	d, ok := maturityDiscounts[level]
	return d, ok
}

// BaseItem is an unscaled cost line item in EUR
type BaseItem struct {
	Label string
	Min   int64
	Max   int64
}

// baseTables are the line items for a medium-sized company with no existing
// compliance infrastructure, keyed by regulation
var baseTables = map[string][]BaseItem{
	regulation.KeyDSGVO: {
		{"Gap analysis and data mapping", 4000, 10000},
		{"Records of processing and DPIAs", 3000, 8000},
		{"Privacy notices and consent management", 2000, 5000},
		{"External data protection officer (first year)", 6000, 15000},
		{"Staff awareness training", 1500, 4000},
	},
	regulation.KeyNIS2: {
		{"Scope assessment and registration", 3000, 8000},
		{"Risk analysis and security policies", 8000, 20000},
		{"Technical measures (MFA, backup, logging)", 15000, 50000},
		{"Incident response and reporting process", 5000, 15000},
		{"Supply chain security review", 4000, 12000},
		{"Management training", 2000, 5000},
	},
	regulation.KeyAIAct: {
		{"AI system inventory and risk classification", 3000, 10000},
		{"Risk management system", 8000, 25000},
		{"Technical documentation and logging", 6000, 20000},
		{"Conformity assessment", 10000, 40000},
		{"AI literacy training", 2000, 6000},
	},
	regulation.KeyDORA: {
		{"ICT risk management framework", 15000, 40000},
		{"ICT incident management and reporting", 8000, 20000},
		{"Digital operational resilience testing", 10000, 35000},
		{"ICT third-party risk register and contracts", 6000, 18000},
		{"Information sharing and training", 2000, 6000},
	},
	regulation.KeyCRA: {
		{"Product security risk assessment", 5000, 15000},
		{"Secure development lifecycle", 10000, 30000},
		{"Vulnerability handling and SBOM", 6000, 18000},
		{"Conformity assessment and CE marking", 8000, 25000},
	},
	regulation.KeyMiCA: {
		{"Authorisation application", 30000, 80000},
		{"White paper preparation", 10000, 30000},
		{"Governance and capital requirements", 15000, 40000},
		{"Market abuse surveillance", 8000, 25000},
	},
	regulation.KeyCSRD: {
		{"Double materiality assessment", 10000, 30000},
		{"Data collection and ESG tooling", 15000, 45000},
		{"ESRS report preparation", 12000, 35000},
		{"Limited assurance audit", 10000, 30000},
	},
	regulation.KeyDSA: {
		{"Notice-and-action mechanism", 5000, 15000},
		{"Terms of service and transparency reporting", 4000, 10000},
		{"Trader traceability and moderation process", 4000, 12000},
	},
	regulation.KeyDataAct: {
		{"Data access by design review", 5000, 15000},
		{"User data sharing interfaces", 8000, 25000},
		{"Contract terms and switching process", 3000, 8000},
	},
	regulation.KeyEAA: {
		{"Accessibility audit (WCAG 2.1 AA)", 3000, 8000},
		{"Remediation of web and app interfaces", 8000, 30000},
		{"Accessibility statement and process", 1000, 3000},
	},
	regulation.KeyEIDAS: {
		{"EUDI wallet integration", 8000, 25000},
		{"Trust service assessment", 5000, 15000},
	},
	regulation.KeyCER: {
		{"Critical entity risk assessment", 8000, 20000},
		{"Resilience measures and plans", 15000, 45000},
		{"Background checks and incident notification", 3000, 8000},
	},
	regulation.KeyCSDDD: {
		{"Value chain risk mapping", 10000, 30000},
		{"Due diligence policy and grievance mechanism", 6000, 15000},
		{"Supplier audits and remediation", 12000, 40000},
		{"Climate transition plan", 8000, 20000},
	},
	regulation.KeyWhistleblower: {
		{"Reporting channel software", 1000, 3000},
		{"Internal process and case handling", 1500, 4000},
		{"Staff communication", 500, 1500},
	},
}

// BaseItems returns the unscaled line items of a regulation
func BaseItems(key string) ([]BaseItem, bool) {
	items, ok := baseTables[key]
	if !ok {
		return nil, false
	}

	out := make([]BaseItem, len(items))
	copy(out, items)

	return out, true
}

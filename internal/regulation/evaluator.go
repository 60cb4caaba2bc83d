package regulation

import (
	"sort"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/types"
)

const (
	// KeyNIS2 identifies the NIS2 Directive
	KeyNIS2 = "nis2"
	// KeyDSGVO identifies the GDPR (Datenschutz-Grundverordnung)
	KeyDSGVO = "dsgvo"
	// KeyAIAct identifies the EU AI Act
	KeyAIAct = "ai-act"
	// KeyDORA identifies the Digital Operational Resilience Act
	KeyDORA = "dora"
	// KeyCRA identifies the Cyber Resilience Act
	KeyCRA = "cra"
	// KeyMiCA identifies the Markets in Crypto-Assets Regulation
	KeyMiCA = "mica"
	// KeyCSRD identifies the Corporate Sustainability Reporting Directive
	KeyCSRD = "csrd"
	// KeyDSA identifies the Digital Services Act
	KeyDSA = "dsa"
	// KeyDataAct identifies the EU Data Act
	KeyDataAct = "data-act"
	// KeyEAA identifies the European Accessibility Act
	KeyEAA = "eaa"
	// KeyEIDAS identifies the eIDAS 2.0 Regulation
	KeyEIDAS = "eidas"
	// KeyCER identifies the Critical Entities Resilience Directive
	KeyCER = "cer"
	// KeyCSDDD identifies the Corporate Sustainability Due Diligence Directive
	KeyCSDDD = "csddd"
	// KeyWhistleblower identifies the Whistleblower Protection Directive
	KeyWhistleblower = "whistleblower"
)

// Evaluated is a regulation that applies to a profile at a given tier
type Evaluated struct {
	// Key is the stable regulation identifier
	Key string `json:"key"`
	// Name is the display name of the regulation
	Name string `json:"name"`
	// Tier is the relevance tier of the strongest matching rule
	Tier Tier `json:"relevance"`
	// Rationale explains why the strongest matching rule fired
	Rationale string `json:"rationale"`
}

// Regulation is a catalogue entry
type Regulation struct {
	// Key is the stable regulation identifier
	Key string `json:"key"`
	// Name is the display name of the regulation
	Name string `json:"name"`

	rules []rule
}

// rule is one predicate of a regulation; the tier and rationale apply when it matches
type rule struct {
	tier      Tier
	rationale string
	applies   func(p types.BusinessProfile) bool
}

// nis2Sectors are the sectors listed in the NIS2 annexes
var nis2Sectors = []types.Sector{
	types.SectorIT,
	types.SectorFinance,
	types.SectorHealth,
	types.SectorEnergy,
	types.SectorManufacturing,
	types.SectorTransport,
	types.SectorTelecom,
	types.SectorPublic,
}

// highRiskAISectors are the sectors where AI use cases fall under Annex III of the AI Act
var highRiskAISectors = []types.Sector{
	types.SectorHealth,
	types.SectorFinance,
	types.SectorPublic,
	types.SectorTransport,
	types.SectorEnergy,
}

// cerSectors are the sectors of the CER Directive annex
var cerSectors = []types.Sector{
	types.SectorEnergy,
	types.SectorTransport,
	types.SectorHealth,
	types.SectorFinance,
	types.SectorTelecom,
	types.SectorPublic,
}

// catalogue is the ordered regulation table; its order breaks ties between equal tiers
var catalogue []Regulation

func init() {
	catalogue = []Regulation{
		{
			Key:  KeyNIS2,
			Name: "NIS2 Directive",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Operates in a NIS2 sector and meets the size threshold or runs critical infrastructure; registration, risk management and incident reporting duties apply.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasSector(nis2Sectors...) &&
							(p.CompanySize.AtLeast(types.CompanySizeMedium) || p.HasActivity(types.ActivityCriticalInfra))
					},
				},
				{
					tier:      TierMedium,
					rationale: "Operates critical infrastructure; national authorities can designate the entity under NIS2 regardless of sector lists.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityCriticalInfra)
					},
				},
				{
					tier:      TierLow,
					rationale: "Operates in a NIS2 sector but is below the size threshold; in-scope customers will pass supply chain security requirements down.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasSector(nis2Sectors...)
					},
				},
			},
		},
		{
			Key:  KeyDSGVO,
			Name: "GDPR (DSGVO)",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Processes special category or children's data; data protection impact assessments and heightened safeguards are required.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasDataType(types.DataTypeSensitive, types.DataTypeChildren)
					},
				},
				{
					tier:      TierHigh,
					rationale: "Processes personal data of customers or end users; the GDPR applies in full.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasDataType(types.DataTypePersonal, types.DataTypeFinancial)
					},
				},
				{
					tier:      TierMedium,
					rationale: "Established in the EU; employee and business contact data fall under the GDPR even without consumer data processing.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasLocation(types.LocationAT, types.LocationDE, types.LocationEU) ||
							p.HasDataType(types.DataTypeB2B)
					},
				},
				{
					tier:      TierLow,
					rationale: "Established outside the EU; the GDPR applies when offering goods or services to people in the EU or monitoring them.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasLocation(types.LocationNonEU)
					},
				},
			},
		},
		{
			Key:  KeyAIAct,
			Name: "EU AI Act",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Develops or deploys AI in a high-risk area; risk management, conformity assessment and human oversight are required.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityAI) &&
							(p.HasSector(highRiskAISectors...) || p.HasDataType(types.DataTypeSensitive, types.DataTypeChildren))
					},
				},
				{
					tier:      TierMedium,
					rationale: "Develops or deploys AI systems; transparency and AI literacy obligations apply.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityAI)
					},
				},
				{
					tier:      TierLow,
					rationale: "Builds software that may embed general-purpose AI components; review AI usage before release.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivitySoftware) && p.HasSector(types.SectorIT)
					},
				},
			},
		},
		{
			Key:  KeyDORA,
			Name: "Digital Operational Resilience Act (DORA)",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Financial entity; ICT risk management, incident reporting and resilience testing under DORA apply.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasSector(types.SectorFinance)
					},
				},
				{
					tier:      TierHigh,
					rationale: "Crypto-asset service providers are financial entities within DORA scope.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityCrypto)
					},
				},
				{
					tier:      TierMedium,
					rationale: "ICT provider handling financial data; DORA contract requirements flow down from financial customers.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasSector(types.SectorIT) && p.HasDataType(types.DataTypeFinancial)
					},
				},
			},
		},
		{
			Key:  KeyCRA,
			Name: "Cyber Resilience Act",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Places software with digital elements on the EU market; secure development, vulnerability handling and CE marking are required.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivitySoftware)
					},
				},
				{
					tier:      TierHigh,
					rationale: "Manufactures connected products; essential cybersecurity requirements apply to hardware with digital elements.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasSector(types.SectorManufacturing) && p.HasDataType(types.DataTypeIoT)
					},
				},
				{
					tier:      TierMedium,
					rationale: "Uses connected devices; products bought from now on must carry CRA conformity.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasDataType(types.DataTypeIoT)
					},
				},
				{
					tier:      TierLow,
					rationale: "Manufacturer; check whether any product line contains digital elements.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasSector(types.SectorManufacturing)
					},
				},
			},
		},
		{
			Key:  KeyMiCA,
			Name: "Markets in Crypto-Assets (MiCA)",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Issues or services crypto-assets; authorisation as a crypto-asset service provider is required.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityCrypto)
					},
				},
			},
		},
		{
			Key:  KeyCSRD,
			Name: "Corporate Sustainability Reporting Directive (CSRD)",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Large undertaking; sustainability reporting under the ESRS is mandatory.",
					applies: func(p types.BusinessProfile) bool {
						return p.CompanySize == types.CompanySizeLarge
					},
				},
				{
					tier:      TierMedium,
					rationale: "Publishes ESG information; reporting along the voluntary SME standard keeps it comparable.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityESG)
					},
				},
				{
					tier:      TierLow,
					rationale: "Medium-sized company; large customers will request sustainability data along the value chain.",
					applies: func(p types.BusinessProfile) bool {
						return p.CompanySize == types.CompanySizeMedium
					},
				},
			},
		},
		{
			Key:  KeyDSA,
			Name: "Digital Services Act",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Operates an online platform; notice-and-action, transparency reporting and trader traceability apply.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityOnlinePlatform)
					},
				},
				{
					tier:      TierMedium,
					rationale: "Runs an online shop; hosting rules apply where third-party sellers or user content are involved.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityEcommerce)
					},
				},
			},
		},
		{
			Key:  KeyDataAct,
			Name: "EU Data Act",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Collects data from connected products; users must get access to that data and be able to share it.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasDataType(types.DataTypeIoT)
					},
				},
				{
					tier:      TierMedium,
					rationale: "Provides data processing or cloud services; switching and interoperability obligations apply.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasSector(types.SectorIT) && p.HasActivity(types.ActivitySoftware)
					},
				},
			},
		},
		{
			Key:  KeyEAA,
			Name: "European Accessibility Act",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Offers e-commerce services to consumers; websites and apps must meet accessibility requirements.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityEcommerce) && p.CompanySize.AtLeast(types.CompanySizeSmall)
					},
				},
				{
					tier:      TierMedium,
					rationale: "Provides consumer banking, communication or passenger transport services covered by accessibility requirements.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasSector(types.SectorFinance, types.SectorTelecom, types.SectorTransport) &&
							p.CompanySize.AtLeast(types.CompanySizeSmall)
					},
				},
				{
					tier:      TierLow,
					rationale: "Microenterprise providing services; exempt from the service obligations, accessibility is still recommended.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityEcommerce)
					},
				},
			},
		},
		{
			Key:  KeyEIDAS,
			Name: "eIDAS 2.0",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Provides electronic identification or trust services; supervision under eIDAS 2.0 applies.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityEID)
					},
				},
				{
					tier:      TierMedium,
					rationale: "Public sector body; online services must accept the European Digital Identity Wallet.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasSector(types.SectorPublic)
					},
				},
				{
					tier:      TierLow,
					rationale: "Regulated sector requiring strong customer authentication; wallet acceptance becomes mandatory.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasSector(types.SectorFinance, types.SectorHealth, types.SectorTelecom, types.SectorTransport)
					},
				},
			},
		},
		{
			Key:  KeyCER,
			Name: "Critical Entities Resilience Directive (CER)",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Critical infrastructure in a CER sector; resilience risk assessments and measures apply.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityCriticalInfra) && p.HasSector(cerSectors...)
					},
				},
				{
					tier:      TierMedium,
					rationale: "Operates critical infrastructure; member states may identify the business as a critical entity.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityCriticalInfra)
					},
				},
			},
		},
		{
			Key:  KeyCSDDD,
			Name: "Corporate Sustainability Due Diligence Directive (CSDDD)",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "Large company with cross-border supply chains; human rights and environmental due diligence applies.",
					applies: func(p types.BusinessProfile) bool {
						return p.CompanySize == types.CompanySizeLarge && p.HasActivity(types.ActivityCrossBorder)
					},
				},
				{
					tier:      TierMedium,
					rationale: "Large company; due diligence duties phase in by employee and turnover thresholds.",
					applies: func(p types.BusinessProfile) bool {
						return p.CompanySize == types.CompanySizeLarge
					},
				},
				{
					tier:      TierLow,
					rationale: "ESG-focused business; large customers will cascade due diligence requirements.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasActivity(types.ActivityESG)
					},
				},
			},
		},
		{
			Key:  KeyWhistleblower,
			Name: "Whistleblower Protection Directive",
			rules: []rule{
				{
					tier:      TierHigh,
					rationale: "50 or more employees; an internal whistleblowing channel is mandatory.",
					applies: func(p types.BusinessProfile) bool {
						return p.CompanySize.AtLeast(types.CompanySizeMedium)
					},
				},
				{
					tier:      TierMedium,
					rationale: "Financial services businesses must operate a reporting channel regardless of size.",
					applies: func(p types.BusinessProfile) bool {
						return p.HasSector(types.SectorFinance)
					},
				},
				{
					tier:      TierLow,
					rationale: "Fewer than 50 employees; a voluntary reporting channel is recommended.",
					applies: func(p types.BusinessProfile) bool {
						return p.CompanySize == types.CompanySizeSmall
					},
				},
			},
		},
	}
}

// Evaluate returns every regulation that applies to the profile, highest tier
// first. Regulations with the same tier keep catalogue order. For each
// regulation only the strongest matching rule is reported; when several rules
// of the same tier match, the first declared one wins.
func Evaluate(profile types.BusinessProfile) []Evaluated {
	results := make([]Evaluated, 0, len(catalogue))

	for _, reg := range catalogue {
		matched, ok := reg.strongest(profile)
		if !ok {
			continue
		}

		results = append(results, Evaluated{
			Key:       reg.Key,
			Name:      reg.Name,
			Tier:      matched.tier,
			Rationale: matched.rationale,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Tier < results[j].Tier
	})

	return results
}

// strongest returns the highest-tier rule of the regulation that matches the profile
func (r Regulation) strongest(profile types.BusinessProfile) (rule, bool) {
	var (
		best  rule
		found bool
	)

	for _, candidate := range r.rules {
		if !candidate.applies(profile) {
			continue
		}

		if !found || candidate.tier < best.tier {
			best = candidate
			found = true
		}
	}

	return best, found
}

// Catalogue returns the supported regulations in declaration order
func Catalogue() []Regulation {
	out := make([]Regulation, len(catalogue))
	copy(out, catalogue)

	return out
}

// Lookup returns the catalogue entry for a key
func Lookup(key string) (Regulation, bool) {
	for _, reg := range catalogue {
		if reg.Key == key {
			return reg, true
		}
	}

	return Regulation{}, false
}

// Keys returns the regulation keys of an evaluation result in order
func Keys(results []Evaluated) []string {
	keys := make([]string, 0, len(results))
	for _, r := range results {
		keys = append(keys, r.Key)
	}

	return keys
}

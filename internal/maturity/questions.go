package maturity

// QuestionID identifies a maturity question
type QuestionID string

// CategoryID identifies a maturity category
type CategoryID string

const (
	CategoryGovernance CategoryID = "governance"
	CategoryRisk       CategoryID = "risk"
	CategorySecurity   CategoryID = "security"
	CategoryIncident   CategoryID = "incident"
	CategoryData       CategoryID = "data"
)

// Question is a single self-assessment statement rated 0..3
type Question struct {
	ID   QuestionID `json:"id"`
	Text string     `json:"text"`
}

// Category groups the questions of one compliance area
type Category struct {
	ID        CategoryID `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// DefaultCategories is the questionnaire served to users
var DefaultCategories = []Category{
	{
		ID:    CategoryGovernance,
		Title: "Governance and responsibilities",
		Questions: []Question{
			{"gov-1", "Management has formally assigned responsibility for compliance and information security."},
			{"gov-2", "Policies for data protection and information security are documented and approved."},
			{"gov-3", "Regulatory obligations are inventoried and reviewed at least yearly."},
			{"gov-4", "Management receives regular reporting on compliance status."},
			{"gov-5", "Employees receive recurring compliance and security awareness training."},
		},
	},
	{
		ID:    CategoryRisk,
		Title: "Risk management",
		Questions: []Question{
			{"risk-1", "A documented risk assessment methodology is in place."},
			{"risk-2", "Information assets and processing activities are inventoried."},
			{"risk-3", "Risks are assessed at least yearly and after significant changes."},
			{"risk-4", "Suppliers and service providers are assessed for security and compliance risk."},
			{"risk-5", "Risk treatment decisions are documented and tracked."},
		},
	},
	{
		ID:    CategorySecurity,
		Title: "Technical and organisational security",
		Questions: []Question{
			{"sec-1", "Multi-factor authentication protects all remote and privileged access."},
			{"sec-2", "Backups are encrypted, stored offline and restores are tested."},
			{"sec-3", "Systems are patched on a defined schedule and vulnerabilities are scanned."},
			{"sec-4", "Access rights follow least privilege and are reviewed regularly."},
			{"sec-5", "Security events are logged centrally and monitored."},
		},
	},
	{
		ID:    CategoryIncident,
		Title: "Incident management and business continuity",
		Questions: []Question{
			{"inc-1", "An incident response plan with defined roles exists."},
			{"inc-2", "Reporting deadlines to authorities (24h/72h) are known and rehearsed."},
			{"inc-3", "Incidents are recorded, analysed and followed up."},
			{"inc-4", "A business continuity plan covers critical processes."},
			{"inc-5", "Continuity and recovery plans are tested at least yearly."},
		},
	},
	{
		ID:    CategoryData,
		Title: "Data protection",
		Questions: []Question{
			{"data-1", "A record of processing activities is maintained."},
			{"data-2", "Legal bases and retention periods are defined for all processing."},
			{"data-3", "Data subject requests are handled within the statutory deadlines."},
			{"data-4", "Data processing agreements are in place with all processors."},
			{"data-5", "Impact assessments are carried out for high-risk processing."},
		},
	},
}

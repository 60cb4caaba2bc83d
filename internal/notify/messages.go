package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/locale"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/store"
)

// maxMessageLength caps free text copied into a notification
const maxMessageLength = 500

// LeadMessage builds the notification for a captured lead
func LeadMessage(lang string, lead store.Lead) Message {
	title := locale.T(lang, "notify.lead")
	if lead.Kind == store.LeadKindNewsletter {
		title = locale.T(lang, "notify.newsletter")
	}

	fields := []TextObject{field("Email", lead.Email)}

	if lead.Name != "" {
		fields = append(fields, field("Name", lead.Name))
	}

	if company := companyLabel(lead); company != "" {
		fields = append(fields, field("Company", company))
	}

	if lead.DomainRegisteredAt != nil {
		fields = append(fields, field("Domain registered", lead.DomainRegisteredAt.Format(time.DateOnly)))
	}

	if lead.Registrar != "" {
		fields = append(fields, field("Registrar", lead.Registrar))
	}

	fields = append(fields, field("Locale", lead.Locale))

	blocks := []Block{header(title), {Type: "section", Fields: fields}}

	if lead.Message != "" {
		blocks = append(blocks, Block{Type: "section", Text: &TextObject{Type: "plain_text", Text: truncate(lead.Message)}})
	}

	return Message{
		Text:   fmt.Sprintf("%s: %s", title, lead.Email),
		Blocks: blocks,
	}
}

// ReportMessage builds the notification for a persisted report
func ReportMessage(lang string, snap store.ReportSnapshot) Message {
	title := locale.T(lang, "notify.report")

	fields := []TextObject{
		field("Email", snap.Email),
		field("Regulations", fmt.Sprintf("%d", len(snap.Regulations))),
		field("Cost", fmt.Sprintf("%s – %s", locale.FormatEUR(lang, snap.CostMin), locale.FormatEUR(lang, snap.CostMax))),
	}

	if snap.Grade != "" {
		fields = append(fields, field("Grade", snap.Grade))
	}

	if snap.Country != "" {
		fields = append(fields, field("Country", strings.ToUpper(snap.Country)))
	}

	blocks := []Block{header(title), {Type: "section", Fields: fields}}

	if len(snap.Regulations) > 0 {
		blocks = append(blocks, Block{Type: "section", Text: &TextObject{Type: "mrkdwn", Text: strings.Join(snap.Regulations, ", ")}})
	}

	return Message{
		Text:   fmt.Sprintf("%s: %s", title, snap.Email),
		Blocks: blocks,
	}
}

// NotifyLead posts a lead notification
func (c *Client) NotifyLead(ctx context.Context, lead store.Lead) error {
	return c.Send(ctx, LeadMessage(c.locale, lead))
}

// NotifyReport posts a report notification
func (c *Client) NotifyReport(ctx context.Context, snap store.ReportSnapshot) error {
	return c.Send(ctx, ReportMessage(c.locale, snap))
}

func companyLabel(lead store.Lead) string {
	switch {
	case lead.Company != "" && lead.CompanyDomain != "":
		return fmt.Sprintf("%s (%s)", lead.Company, lead.CompanyDomain)
	case lead.Company != "":
		return lead.Company
	default:
		return lead.CompanyDomain
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxMessageLength {
		return s
	}

	return string(r[:maxMessageLength]) + "…"
}

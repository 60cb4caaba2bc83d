package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/fines"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/locale"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// reportView is the data the report template renders
type reportView struct {
	Locale     string
	Subject    string
	Rows       []reportRow
	CostTotal  string
	Grade      string
	GradeColor string
	National   []nationalRow
	Link       string
}

type reportRow struct {
	Name      string
	Rationale string
	Tier      string
	Fine      string
	Cost      string
}

type nationalRow struct {
	Name      string
	Status    string
	Authority string
	Deadline  string
}

// RenderReport renders the localized subject and HTML body of a report email
func RenderReport(lang string, rep report.ComplianceReport, link string) (subject, html string, err error) {
	lang = locale.Normalize(lang)

	tmpl, err := template.New("report.html").
		Funcs(template.FuncMap{"t": func(key string) string { return locale.T(lang, key) }}).
		ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	view := buildView(lang, rep, link)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return view.Subject, buf.String(), nil
}

// SendReport renders a report summary and emails it to the recipient
func (c *Client) SendReport(ctx context.Context, to, lang string, rep report.ComplianceReport, link string) error {
	if to == "" {
		return ErrMissingRecipient
	}

	subject, html, err := RenderReport(lang, rep, link)
	if err != nil {
		return err
	}

	if _, err := c.Send(ctx, Email{To: []string{to}, Subject: subject, HTML: html}); err != nil {
		return err
	}

	return nil
}

func buildView(lang string, rep report.ComplianceReport, link string) reportView {
	view := reportView{
		Locale:  lang,
		Subject: locale.Tf(lang, "email.subject", map[string]string{"count": strconv.Itoa(len(rep.Regulations))}),
		CostTotal: locale.Tf(lang, "email.costTotal", map[string]string{
			"min": locale.FormatEUR(lang, rep.CostTotal.Min),
			"max": locale.FormatEUR(lang, rep.CostTotal.Max),
		}),
		Link: link,
	}

	for _, r := range rep.Regulations {
		row := reportRow{
			Name:      r.Name,
			Rationale: r.Rationale,
			Tier:      locale.T(lang, "tier."+r.Tier.String()),
			Fine:      locale.T(lang, "email.noFine"),
			Cost:      "-",
		}

		if f, ok := rep.Fines[r.Key]; ok {
			row.Fine = fines.Describe(f, locale.Tag(lang))
		}

		if e, ok := rep.Costs[r.Key]; ok && e.Available {
			row.Cost = fmt.Sprintf("%s – %s", locale.FormatEUR(lang, e.TotalMin), locale.FormatEUR(lang, e.TotalMax))
		}

		view.Rows = append(view.Rows, row)

		if n, ok := rep.National[r.Key]; ok {
			view.National = append(view.National, nationalRow{
				Name:      r.Name,
				Status:    locale.T(lang, "status."+string(n.ImplementationStatus)),
				Authority: n.Authority,
				Deadline:  n.NationalDeadline,
			})
		}
	}

	if rep.Maturity != nil {
		view.Grade = locale.Tf(lang, "email.grade", map[string]string{
			"grade":      rep.Maturity.Grade.Letter,
			"percentage": strconv.Itoa(rep.Maturity.OverallPercentage),
		})
		view.GradeColor = rep.Maturity.Grade.Color
	}

	return view
}

package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/countrydata"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/maturity"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/report"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/types"
)

func sampleReport(t *testing.T) report.ComplianceReport {
	t.Helper()

	answers := maturity.Answers{"gov-1": maturity.RatingInPlace, "gov-2": maturity.RatingPartial}
	country := &countrydata.Country{
		Code: "at",
		Name: "Austria",
		Regulations: map[string]countrydata.RegulationStatus{
			"dsgvo": {ImplementationStatus: countrydata.StatusImplemented, Authority: "Datenschutzbehörde"},
		},
	}

	return report.Assemble(report.Input{
		Profile: types.BusinessProfile{
			CompanySize:   types.CompanySizeMedium,
			DataTypes:     []types.DataType{types.DataTypePersonal},
			AnnualRevenue: types.Revenue10To50M,
		},
		Answers: answers,
		Country: "at",
	}, country, nil, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
}

func TestNew(t *testing.T) {
	_, err := New("", "hub@example.com")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = New("key", "")
	assert.ErrorIs(t, err, ErrMissingSender)

	c, err := New("key", "hub@example.com", WithBaseURL("https://mail.test/"), WithHTTPClient(nil))
	require.NoError(t, err)
	assert.Equal(t, "https://mail.test", c.baseURL)
	assert.NotNil(t, c.httpClient)
}

func TestRenderReport(t *testing.T) {
	rep := sampleReport(t)
	require.NotEmpty(t, rep.Regulations)

	subject, html, err := RenderReport("de", rep, "https://hub.example.com/r/abc?x=1&y=2")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(subject, "Ihr EU-Compliance-Report"), subject)
	assert.Contains(t, html, `lang="de"`)
	assert.Contains(t, html, "DSGVO")
	assert.Contains(t, html, "Datenschutzbehörde")
	assert.Contains(t, html, "https://hub.example.com/r/abc?x=1&amp;y=2")

	subject, html, err = RenderReport("en", rep, "")
	require.NoError(t, err)
	assert.Contains(t, subject, "Your EU compliance report")
	assert.Contains(t, html, "EUR ")
	assert.NotContains(t, html, "View report online")
}

func TestRenderReport_EscapesContent(t *testing.T) {
	rep := sampleReport(t)
	rep.Regulations[0].Rationale = "<script>alert(1)</script>"

	_, html, err := RenderReport("en", rep, "")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestSendReport(t *testing.T) {
	var got sendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer server.Close()

	c, err := New("re_test", "EU Compliance Hub <hub@example.com>",
		WithBaseURL(server.URL), WithHTTPClient(server.Client()), WithReplyTo("team@example.com"))
	require.NoError(t, err)

	require.NoError(t, c.SendReport(context.Background(), "anna@example.com", "en", sampleReport(t), "https://hub.example.com/r/abc"))

	assert.Equal(t, []string{"anna@example.com"}, got.To)
	assert.Equal(t, "EU Compliance Hub <hub@example.com>", got.From)
	assert.Equal(t, "team@example.com", got.ReplyTo)
	assert.Contains(t, got.HTML, "https://hub.example.com/r/abc")

	assert.ErrorIs(t, c.SendReport(context.Background(), "", "en", sampleReport(t), ""), ErrMissingRecipient)
}

func TestSend_Failures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	c, err := New("re_test", "hub@example.com", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)

	_, err = c.Send(context.Background(), Email{To: []string{"a@example.com"}, Subject: "x", HTML: "<p>x</p>"})
	assert.ErrorIs(t, err, ErrSendFailed)

	_, err = c.Send(context.Background(), Email{Subject: "x"})
	assert.ErrorIs(t, err, ErrMissingRecipient)

	c, err = New("re_test", "hub@example.com", WithBaseURL("http://localhost:1"))
	require.NoError(t, err)

	_, err = c.Send(context.Background(), Email{To: []string{"a@example.com"}})
	assert.ErrorIs(t, err, ErrSendFailed)
}

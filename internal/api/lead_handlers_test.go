package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/store"
)

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}

func TestHandleLead(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/leads", `{"email":" ops@mail.firma.co.at ","name":"Anna","company":"Firma GmbH","message":"Call me","consent":{"terms":true}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var lead store.Lead
	decodeResponse(t, w, &lead)

	if lead.CompanyDomain != "firma.co.at" {
		t.Errorf("expected company domain firma.co.at, got %q", lead.CompanyDomain)
	}

	if lead.Locale != "de" {
		t.Errorf("expected default locale de, got %q", lead.Locale)
	}

	stored := env.store.Leads()
	if len(stored) != 1 || stored[0].Kind != store.LeadKindContact {
		t.Fatalf("expected one stored contact lead, got %+v", stored)
	}
}

func TestHandleLead_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid email", body: `{"email":"nope","consent":{"terms":true}}`},
		{name: "terms missing", body: `{"email":"a@example.com"}`},
		{name: "name too long", body: `{"email":"a@example.com","name":"` + strings.Repeat("n", maxNameLength+1) + `","consent":{"terms":true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/leads", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleNewsletter(t *testing.T) {
	env := newTestEnv(t)

	body := `{"email":"someone@gmail.com","consent":{"marketing":true}}`

	w := env.do(http.MethodPost, "/api/newsletter?lang=en", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var lead store.Lead
	decodeResponse(t, w, &lead)

	if lead.CompanyDomain != "" {
		t.Errorf("expected no company domain for free mail, got %q", lead.CompanyDomain)
	}

	w = env.do(http.MethodPost, "/api/newsletter", `{"email":"SOMEONE@gmail.com","consent":{"marketing":true}}`)
	if w.Code != http.StatusConflict {
		t.Errorf("expected status 409 for duplicate subscription, got %d", w.Code)
	}

	resp := decodeResponse(t, w, nil)
	if resp.Error == nil || resp.Error.Code != errCodeConflict {
		t.Errorf("expected conflict error code, got %+v", resp.Error)
	}

	w = env.do(http.MethodPost, "/api/newsletter", `{"email":"other@example.com","consent":{"marketing":false}}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without consent, got %d", w.Code)
	}
}

func TestHandleLead_NoDispatcher(t *testing.T) {
	handler := NewRouter(RouterConfig{})

	req := httptest.NewRequest(http.MethodPost, "/api/newsletter", stringsReader(`{"email":"a@example.com","consent":{"marketing":true}}`))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

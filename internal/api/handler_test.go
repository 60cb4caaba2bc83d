package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/delivery"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/report"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/store"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// flakyStore fails every call with err
type flakyStore struct {
	*store.Memory
	err error
}

func (f flakyStore) Ping(context.Context) error {
	return f.err
}

func (f flakyStore) GetReport(context.Context, string) (store.ReportSnapshot, error) {
	return store.ReportSnapshot{}, f.err
}

// recordingMailer captures report emails
type recordingMailer struct {
	err  error
	sent []string
}

func (m *recordingMailer) SendReport(_ context.Context, to, _ string, _ report.ComplianceReport, _ string) error {
	if m.err != nil {
		return m.err
	}

	m.sent = append(m.sent, to)

	return nil
}

type testEnv struct {
	handler http.Handler
	store   *store.Memory
	mailer  *recordingMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := store.NewMemory()
	mailer := &recordingMailer{}

	dispatcher, err := delivery.NewDispatcher(mem, delivery.WithMailer(mailer), delivery.WithReportLink("https://hub.example.com/report"))
	if err != nil {
		t.Fatalf("unexpected error creating dispatcher: %v", err)
	}

	handler := NewRouter(RouterConfig{
		Builder:     report.NewBuilder(report.WithClock(func() time.Time { return fixedNow })),
		Store:       mem,
		Dispatcher:  dispatcher,
		MaxBodySize: 4096,
		Now:         func() time.Time { return fixedNow },
	})

	return &testEnv{handler: handler, store: mem, mailer: mailer}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)

	return w
}

// decodeResponse decodes the envelope, re-decoding Data into dst when given
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, dst any) Response {
	t.Helper()

	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *Error          `json:"error"`
	}

	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if dst != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, dst); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
	}

	return Response{Success: raw.Success, Error: raw.Error}
}

func TestHandleHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "healthy" {
		t.Errorf("expected status healthy, got %s", resp.Status)
	}

	if resp.Service != serviceName {
		t.Errorf("expected service %s, got %s", serviceName, resp.Service)
	}

	if resp.Timestamp != "2025-03-01T12:00:00Z" {
		t.Errorf("unexpected timestamp %s", resp.Timestamp)
	}

	if resp.Checks["store"] != "ok" {
		t.Errorf("expected store check ok, got %q", resp.Checks["store"])
	}
}

func TestHandleHealth_StoreDown(t *testing.T) {
	handler := NewRouter(RouterConfig{Store: flakyStore{Memory: store.NewMemory(), err: errors.New("connection refused")}})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "degraded" {
		t.Errorf("expected status degraded, got %s", resp.Status)
	}
}

func TestDecodeJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"answers":{}}`},
		{name: "unknown field", body: `{"answers":{},"extra":1}`, wantErr: true},
		{name: "trailing object", body: `{"answers":{}}{"answers":{}}`, wantErr: true},
		{name: "malformed", body: `{"answers":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst MaturityRequest

			err := decodeJSONBody(req, &dst)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	env := newTestEnv(t)

	body := `{"regulations":["` + strings.Repeat("x", 5000) + `"]}`

	w := env.do(http.MethodPost, "/api/costs", body)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", w.Code)
	}

	resp := decodeResponse(t, w, nil)
	if resp.Error == nil || resp.Error.Code != errCodeTooLarge {
		t.Errorf("expected error code %s, got %+v", errCodeTooLarge, resp.Error)
	}
}

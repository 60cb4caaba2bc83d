package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/metrics"
)

func TestNewRouter(t *testing.T) {
	router := NewRouter(RouterConfig{})

	if router == nil {
		t.Fatal("expected router to be created")
	}
}

func TestPingEndpoint(t *testing.T) {
	handler := NewRouter(RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for ping endpoint, got %d", w.Code)
	}
}

func TestNotFound(t *testing.T) {
	handler := NewRouter(RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	handler := NewRouter(RouterConfig{AllowedOrigins: []string{"https://hub.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/reports", nil)
	req.Header.Set("Origin", "https://hub.example.com")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204 for preflight, got %d", w.Code)
	}

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://hub.example.com" {
		t.Errorf("expected allowed origin to be echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/reports", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow origin header, got %q", got)
	}
}

func TestLocaleHeader(t *testing.T) {
	handler := NewRouter(RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/regulations?lang=en", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Language"); got != "en" {
		t.Errorf("expected Content-Language en, got %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	handler := NewRouter(RouterConfig{Metrics: metrics.New(reg), Gatherer: reg})

	req := httptest.NewRequest(http.MethodGet, "/api/regulations", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	if !strings.Contains(w.Body.String(), `route="/api/regulations"`) {
		t.Errorf("expected request metric for /api/regulations in output")
	}
}

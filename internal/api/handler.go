// Package api provides the HTTP handlers of the compliance hub.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/delivery"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/leads"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/maturity"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/metrics"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/report"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/store"
)

const (
	// serviceName is reported by the health endpoint
	serviceName = "hub"
	// healthCheckTimeout bounds the store ping of the health endpoint
	healthCheckTimeout = 2 * time.Second
)

// Handler manages API endpoints
type Handler struct {
	builder     *report.Builder
	scorer      *maturity.Scorer
	store       store.Store
	dispatcher  *delivery.Dispatcher
	enricher    *leads.Enricher
	metrics     *metrics.Metrics
	maxBodySize int64
	now         func() time.Time
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// handleHealth returns service health status; a failing store reports degraded with 503
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		response.Checks = map[string]string{"store": "ok"}

		if err := h.store.Ping(ctx); err != nil {
			response.Status = "degraded"
			response.Checks["store"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, response)
}

// limitBody caps the request body at the configured size
func (h *Handler) limitBody(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}
}

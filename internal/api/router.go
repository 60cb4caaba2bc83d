package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/delivery"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/leads"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/locale"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/maturity"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/metrics"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/report"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/store"
)

const (
	// defaultMaxBodySize is used when no body limit is configured
	defaultMaxBodySize = 64 * 1024
	// defaultRequestTimeout bounds a request when none is configured
	defaultRequestTimeout = 30 * time.Second
)

// RouterConfig holds the dependencies of the API router
type RouterConfig struct {
	// Builder computes compliance reports
	Builder *report.Builder
	// Scorer scores the maturity questionnaire; nil uses the default questionnaire
	Scorer *maturity.Scorer
	// Store persists reports and leads; nil disables stored report lookup
	Store store.Store
	// Dispatcher delivers reports and leads; nil disables delivery
	Dispatcher *delivery.Dispatcher
	// Enricher derives company data from lead emails; nil skips enrichment
	Enricher *leads.Enricher
	// Metrics records request and domain metrics; nil disables recording
	Metrics *metrics.Metrics
	// Gatherer backs the /metrics endpoint; nil disables the endpoint
	Gatherer prometheus.Gatherer
	// MaxBodySize caps request bodies in bytes
	MaxBodySize int64
	// RequestTimeout bounds each request
	RequestTimeout time.Duration
	// AllowedOrigins are the CORS origins; empty allows all
	AllowedOrigins []string
	// Now is the clock used in responses
	Now func() time.Time
}

// NewRouter creates a new chi router with all endpoints and middleware
func NewRouter(cfg RouterConfig) http.Handler {
	h := &Handler{
		builder:     cfg.Builder,
		scorer:      cfg.Scorer,
		store:       cfg.Store,
		dispatcher:  cfg.Dispatcher,
		enricher:    cfg.Enricher,
		metrics:     cfg.Metrics,
		maxBodySize: cfg.MaxBodySize,
		now:         cfg.Now,
	}

	if h.builder == nil {
		h.builder = report.NewBuilder(report.WithMetrics(cfg.Metrics))
	}

	if h.scorer == nil {
		h.scorer = maturity.Default()
	}

	if h.maxBodySize <= 0 {
		h.maxBodySize = defaultMaxBodySize
	}

	if h.now == nil {
		h.now = time.Now
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(instrument(cfg.Metrics))
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors(cfg.AllowedOrigins))
	r.Use(locale.Middleware)

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(timeout))

		r.Get("/health", h.handleHealth)

		r.Get("/regulations", h.handleRegulations)
		r.Post("/regulations/evaluate", h.handleEvaluate)
		r.Post("/fines", h.handleFines)
		r.Post("/costs", h.handleCosts)

		r.Get("/maturity/questions", h.handleMaturityQuestions)
		r.Post("/maturity", h.handleMaturity)

		r.Post("/reports", h.handleCreateReport)
		r.Get("/reports/{token}", h.handleGetReport)
		r.Post("/reports/{token}/resend", h.handleResendReport)

		r.Post("/leads", h.handleLead)
		r.Post("/newsletter", h.handleNewsletter)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, errCodeNotFound, http.StatusText(http.StatusNotFound))
	})

	return r
}

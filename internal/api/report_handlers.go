package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/delivery"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/locale"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/maturity"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/report"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/store"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/types"
)

// ReportRequest asks for a full compliance report
type ReportRequest struct {
	// Profile is the business being assessed
	Profile types.BusinessProfile `json:"profile"`
	// Revenue is the exact annual revenue in EUR
	Revenue *int64 `json:"revenue,omitempty"`
	// Answers are the maturity questionnaire ratings keyed by question id
	Answers map[string]int `json:"answers,omitempty"`
	// Country is the ISO 3166-1 alpha-2 code used for national data
	Country string `json:"country,omitempty"`
	// MaturityLevel overrides the level derived from the answers
	MaturityLevel types.MaturityLevel `json:"maturityLevel,omitempty"`
	// Email receives the report; empty computes the report without storing it
	Email string `json:"email,omitempty"`
	// Consent must accept the terms when an email is given
	Consent store.Consent `json:"consent"`
}

// ReportResponse is a computed report with its delivery outcome
type ReportResponse struct {
	Token    string                  `json:"token,omitempty"`
	Link     string                  `json:"link,omitempty"`
	Report   report.ComplianceReport `json:"report"`
	Delivery *delivery.Outcome       `json:"delivery,omitempty"`
}

// ResendResponse confirms a resent report email
type ResendResponse struct {
	Token string `json:"token"`
	Sent  bool   `json:"sent"`
}

// handleCreateReport computes a report and, when an email is given, delivers it
func (h *Handler) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req ReportRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	in, err := h.reportInput(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	if req.Email != "" && h.dispatcher == nil {
		respondError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrDeliveryNotConfigured.Error())
		return
	}

	rep := h.builder.Build(r.Context(), in)

	if req.Email == "" {
		respond(w, http.StatusOK, ReportResponse{Report: rep})
		return
	}

	token := uuid.NewString()
	snap := store.NewReportSnapshot(token, req.Email, locale.FromContext(r.Context()), req.Consent, rep)

	outcome := h.dispatcher.Deliver(r.Context(), snap)

	resp := ReportResponse{Report: rep, Delivery: &outcome}
	if outcome.Stored {
		resp.Token = token
		resp.Link = h.dispatcher.Link(token)
	}

	respond(w, http.StatusOK, resp)
}

// reportInput validates the request and converts it into builder input
func (h *Handler) reportInput(req *ReportRequest) (report.Input, error) {
	if err := validateProfile(&req.Profile); err != nil {
		return report.Input{}, err
	}

	if err := validateMaturityLevel(req.MaturityLevel); err != nil {
		return report.Input{}, err
	}

	country, err := normalizeCountry(req.Country)
	if err != nil {
		return report.Input{}, err
	}

	if req.Email != "" {
		email, err := normalizeEmail(req.Email)
		if err != nil {
			return report.Input{}, err
		}

		if !req.Consent.Terms {
			return report.Input{}, ErrTermsRequired
		}

		req.Email = email
	}

	in := report.Input{
		Profile:  req.Profile,
		Revenue:  req.Revenue,
		Country:  country,
		Maturity: req.MaturityLevel,
	}

	if len(req.Answers) > 0 {
		var answers maturity.Answers

		answers, err = h.scorer.ParseAnswers(req.Answers)
		if err != nil {
			return report.Input{}, err
		}

		in.Answers = answers
	}

	return in, nil
}

// handleGetReport returns a stored report snapshot
func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	respond(w, http.StatusOK, snap)
}

// handleResendReport emails a stored report again
func (h *Handler) handleResendReport(w http.ResponseWriter, r *http.Request) {
	if h.dispatcher == nil {
		respondError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrDeliveryNotConfigured.Error())
		return
	}

	snap, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	if err := h.dispatcher.Resend(r.Context(), snap); err != nil {
		if errors.Is(err, delivery.ErrMailerDisabled) {
			respondError(w, http.StatusServiceUnavailable, errCodeUnavailable, err.Error())
			return
		}

		log.Error().Err(err).Str("token", snap.Token).Msg("report resend failed")
		respondError(w, http.StatusBadGateway, errCodeUnavailable, "report email could not be sent")

		return
	}

	respond(w, http.StatusOK, ResendResponse{Token: snap.Token, Sent: true})
}

// loadSnapshot resolves the {token} path parameter and writes the error response itself
func (h *Handler) loadSnapshot(w http.ResponseWriter, r *http.Request) (store.ReportSnapshot, bool) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrDeliveryNotConfigured.Error())
		return store.ReportSnapshot{}, false
	}

	token := chi.URLParam(r, "token")
	if _, err := uuid.Parse(token); err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, ErrInvalidToken.Error())
		return store.ReportSnapshot{}, false
	}

	snap, err := h.store.GetReport(r.Context(), token)

	switch {
	case err == nil:
		return snap, true
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, errCodeNotFound, ErrReportNotFound.Error())
	default:
		log.Error().Err(err).Str("token", token).Msg("loading report failed")
		respondError(w, http.StatusInternalServerError, errCodeInternal, "report could not be loaded")
	}

	return store.ReportSnapshot{}, false
}

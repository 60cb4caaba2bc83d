package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/leads"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/locale"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/store"
)

// LeadRequest is a contact form submission
type LeadRequest struct {
	Email   string        `json:"email"`
	Name    string        `json:"name,omitempty"`
	Company string        `json:"company,omitempty"`
	Message string        `json:"message,omitempty"`
	Consent store.Consent `json:"consent"`
}

// NewsletterRequest is a newsletter signup
type NewsletterRequest struct {
	Email   string        `json:"email"`
	Consent store.Consent `json:"consent"`
}

// handleLead captures a contact request
func (h *Handler) handleLead(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req LeadRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	if err := validateLead(&req); err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	lead := store.Lead{
		Kind:    store.LeadKindContact,
		Email:   req.Email,
		Name:    req.Name,
		Company: req.Company,
		Message: req.Message,
		Consent: req.Consent,
	}

	h.captureLead(w, r, lead)
}

// handleNewsletter captures a newsletter subscription
func (h *Handler) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req NewsletterRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	if !req.Consent.Marketing {
		respondError(w, http.StatusBadRequest, errCodeValidation, ErrConsentRequired.Error())
		return
	}

	h.captureLead(w, r, store.Lead{Kind: store.LeadKindNewsletter, Email: email, Consent: req.Consent})
}

// captureLead enriches, stores and announces a lead
func (h *Handler) captureLead(w http.ResponseWriter, r *http.Request, lead store.Lead) {
	if h.dispatcher == nil {
		respondError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrDeliveryNotConfigured.Error())
		return
	}

	enrichment, err := h.enricher.Enrich(r.Context(), lead.Email)

	switch {
	case errors.Is(err, leads.ErrNoMailExchanger):
		respondError(w, http.StatusBadRequest, errCodeValidation, ErrEmailUndeliverable.Error())
		return
	case err != nil:
		log.Debug().Err(err).Msg("lead enrichment skipped")
	default:
		lead.CompanyDomain = enrichment.CompanyDomain

		if reg := enrichment.Registration; reg != nil {
			lead.Registrar = reg.Registrar
			lead.DomainRegisteredAt = reg.RegisteredAt
		}
	}

	lead.ID = uuid.New()
	lead.Locale = locale.FromContext(r.Context())
	lead.CreatedAt = h.now().UTC()

	err = h.dispatcher.CaptureLead(r.Context(), lead)

	switch {
	case err == nil:
		respond(w, http.StatusCreated, lead)
	case errors.Is(err, store.ErrDuplicateLead):
		respondError(w, http.StatusConflict, errCodeConflict, ErrAlreadySubscribed.Error())
	default:
		log.Error().Err(err).Str("kind", string(lead.Kind)).Msg("capturing lead failed")
		respondError(w, http.StatusInternalServerError, errCodeInternal, "lead could not be saved")
	}
}

// validateLead checks the contact form fields and trims them
func validateLead(req *LeadRequest) error {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return err
	}

	req.Email = email
	req.Name = strings.TrimSpace(req.Name)
	req.Company = strings.TrimSpace(req.Company)
	req.Message = strings.TrimSpace(req.Message)

	if err := validateText("name", req.Name, maxNameLength); err != nil {
		return err
	}

	if err := validateText("company", req.Company, maxNameLength); err != nil {
		return err
	}

	if err := validateText("message", req.Message, maxMessageLength); err != nil {
		return err
	}

	if !req.Consent.Terms {
		return ErrTermsRequired
	}

	return nil
}

package api

import (
	"fmt"
	"net/http"

	"github.com/yannicklang1/eu-complience-hub-sub008/internal/costs"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/fines"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/locale"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/maturity"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/regulation"
	"github.com/yannicklang1/eu-complience-hub-sub008/internal/types"
)

// EvaluateResponse lists the regulations applicable to a profile
type EvaluateResponse struct {
	Regulations []regulation.Evaluated `json:"regulations"`
}

// FineRequest asks for the fine exposure under one regulation
type FineRequest struct {
	// Regulation is the catalogue key
	Regulation string `json:"regulation"`
	// Revenue is the exact annual revenue in EUR, preferred over the bucket
	Revenue *int64 `json:"revenue,omitempty"`
	// RevenueBucket is used when no exact revenue is given
	RevenueBucket types.RevenueBucket `json:"revenueBucket,omitempty"`
}

// CostRequest asks for implementation cost estimates
type CostRequest struct {
	Regulations   []string            `json:"regulations"`
	CompanySize   types.CompanySize   `json:"companySize,omitempty"`
	MaturityLevel types.MaturityLevel `json:"maturityLevel,omitempty"`
}

// CostResponse holds the estimates in request order and their sum
type CostResponse struct {
	Estimates []costs.Estimate `json:"estimates"`
	Total     costs.Range      `json:"total"`
}

// MaturityRequest carries questionnaire answers keyed by question id
type MaturityRequest struct {
	Answers map[string]int `json:"answers"`
}

// MaturityResponse is the scored questionnaire and the derived maturity level
type MaturityResponse struct {
	maturity.Assessment
	Level types.MaturityLevel `json:"maturityLevel"`
}

// QuestionsResponse is the maturity questionnaire
type QuestionsResponse struct {
	Categories []maturity.Category `json:"categories"`
	Grades     []maturity.Grade    `json:"grades"`
}

// handleRegulations returns the regulation catalogue
func (h *Handler) handleRegulations(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, regulation.Catalogue())
}

// handleEvaluate ranks the regulations applicable to the posted profile
func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var profile types.BusinessProfile
	if err := decodeJSONBody(r, &profile); err != nil {
		respondDecodeError(w, err)
		return
	}

	if err := validateProfile(&profile); err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	respond(w, http.StatusOK, EvaluateResponse{Regulations: regulation.Evaluate(profile)})
}

// handleFines computes the maximum fine of one regulation
func (h *Handler) handleFines(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req FineRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	if req.Regulation == "" {
		respondError(w, http.StatusBadRequest, errCodeValidation, ErrRegulationRequired.Error())
		return
	}

	if _, ok := regulation.Lookup(req.Regulation); !ok {
		respondError(w, http.StatusBadRequest, errCodeValidation, fmt.Sprintf("%v: %q", ErrUnknownRegulation, req.Regulation))
		return
	}

	if !req.RevenueBucket.Valid() {
		respondError(w, http.StatusBadRequest, errCodeValidation, fmt.Sprintf("%v: revenueBucket %q", ErrUnknownValue, req.RevenueBucket))
		return
	}

	revenue, err := fines.ResolveRevenue(req.Revenue, req.RevenueBucket)
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	res, ok := fines.Calculate(req.Regulation, revenue)
	if !ok {
		respondError(w, http.StatusNotFound, errCodeNotFound, fmt.Sprintf("%v: %s", ErrNoFineRule, req.Regulation))
		return
	}

	res.Description = fines.Describe(res, locale.Tag(locale.FromContext(r.Context())))

	respond(w, http.StatusOK, res)
}

// handleCosts estimates implementation costs for the posted regulations
func (h *Handler) handleCosts(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req CostRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	keys, err := validateRegulations(req.Regulations)
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	if req.CompanySize != "" && !req.CompanySize.Valid() {
		respondError(w, http.StatusBadRequest, errCodeValidation, fmt.Sprintf("%v: companySize %q", ErrUnknownValue, req.CompanySize))
		return
	}

	if err := validateMaturityLevel(req.MaturityLevel); err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	estimates := costs.Estimates(keys, req.CompanySize, req.MaturityLevel)

	respond(w, http.StatusOK, CostResponse{Estimates: estimates, Total: costs.Total(estimates)})
}

// handleMaturityQuestions returns the questionnaire and grade scale
func (h *Handler) handleMaturityQuestions(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, QuestionsResponse{Categories: h.scorer.Categories(), Grades: maturity.Grades})
}

// handleMaturity scores questionnaire answers
func (h *Handler) handleMaturity(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req MaturityRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	answers, err := h.scorer.ParseAnswers(req.Answers)
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	assessment := h.scorer.Score(answers)

	respond(w, http.StatusOK, MaturityResponse{Assessment: assessment, Level: assessment.Level()})
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripsplit-dev/tripsplit/internal/balance"
	"github.com/tripsplit-dev/tripsplit/internal/settle"
	"github.com/tripsplit-dev/tripsplit/internal/split"
)

const maxBodyBytes = 1 << 20

// Handler serves the split and settlement endpoints. It holds no state.
type Handler struct{}

// NewHandler creates a new handler.
func NewHandler() *Handler {
	return &Handler{}
}

// SplitRoutes returns the router for split endpoints.
func (h *Handler) SplitRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/equal", h.SplitEqual)
	r.Post("/custom", h.SplitCustom)
	r.Post("/validate", h.ValidateSplits)

	return r
}

// SplitEqual handles POST /splits/equal
func (h *Handler) SplitEqual(w http.ResponseWriter, r *http.Request) {
	var req EqualSplitRequest
	if !decode(w, r, &req) {
		return
	}

	shares, err := split.Equal(req.Amount, req.Participants)
	if err != nil {
		splitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShareResponses(shares))
}

// SplitCustom handles POST /splits/custom
func (h *Handler) SplitCustom(w http.ResponseWriter, r *http.Request) {
	var req CustomSplitRequest
	if !decode(w, r, &req) {
		return
	}

	shares, err := split.Custom(req.Amount, req.inputs())
	if err != nil {
		splitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShareResponses(shares))
}

// ValidateSplits handles POST /splits/validate
func (h *Handler) ValidateSplits(w http.ResponseWriter, r *http.Request) {
	var req CustomSplitRequest
	if !decode(w, r, &req) {
		return
	}

	if err := split.Validate(req.Amount, req.inputs()); err != nil {
		splitError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// Settle handles POST /settlements
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	var req SettleRequest
	if !decode(w, r, &req) {
		return
	}
	if err := req.check(); err != nil {
		badRequest(w, err.Error())
		return
	}

	expenses := req.expenses()
	b := balance.Aggregate(expenses)
	resp := toSettleResponse(balance.Summarize(expenses), settle.FromBalances(b))
	writeJSON(w, http.StatusOK, resp)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "Invalid request body")
		return false
	}
	return true
}

func splitError(w http.ResponseWriter, err error) {
	var verr *split.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusUnprocessableEntity, string(verr.Code), verr.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
}

package api

import (
	"net/http"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/services"
)

// Health reports whether the service is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "ok", nil)
}

// GenerateRota runs the weekly allocation for the requested week and
// stores the result unless dry_run is set.
func (h *Handler) GenerateRota(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeekCommencing string `json:"week_commencing" validate:"required"`
		DryRun         bool   `json:"dry_run"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, "week_commencing is required")
		return
	}

	result, err := services.GenerateRota(r.Context(), h.store, h.config.Scheduling, h.logger, req.WeekCommencing, req.DryRun)
	if err != nil {
		if services.IsClientError(err) {
			h.badRequest(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "rota generated", result)
}

// GetAllocations returns the stored allocations for a week.
func (h *Handler) GetAllocations(w http.ResponseWriter, r *http.Request) {
	week := r.URL.Query().Get("week")
	if week == "" {
		h.badRequest(w, r, "week query parameter is required")
		return
	}

	allocations, err := services.ViewAllocations(r.Context(), h.store, h.logger, week)
	if err != nil {
		if services.IsClientError(err) {
			h.badRequest(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "allocations retrieved", allocations)
}

// GetGaps returns the stored coverage gaps for a week.
func (h *Handler) GetGaps(w http.ResponseWriter, r *http.Request) {
	week := r.URL.Query().Get("week")
	if week == "" {
		h.badRequest(w, r, "week query parameter is required")
		return
	}

	gaps, err := services.ViewGaps(r.Context(), h.store, h.logger, week)
	if err != nil {
		if services.IsClientError(err) {
			h.badRequest(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "gaps retrieved", gaps)
}

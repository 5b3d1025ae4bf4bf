// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/weekly-pick/cliparse"
	"github.com/danielhkuo/weekly-pick/db"
	"github.com/danielhkuo/weekly-pick/middleware"
	"github.com/danielhkuo/weekly-pick/models"
)

type CandidateHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewCandidateHandler(store *db.Store, cfg cliparse.Config) *CandidateHandler {
	return &CandidateHandler{store: store, cfg: cfg}
}

// GetCandidates handles GET /weeks/{id}/candidates
func (h *CandidateHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	weekID := r.PathValue("id")
	if weekID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "week_id is required")
		return
	}

	if _, err := h.store.FindWeekByID(r.Context(), weekID); err != nil {
		domainError(w, err, "Failed to load week")
		return
	}

	candidates, err := h.store.ListCandidates(r.Context(), weekID)
	if err != nil {
		domainError(w, err, "Failed to load candidates")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{
		WeekID:     weekID,
		Candidates: candidates,
	})
}

// GetSubmissionCount handles GET /weeks/{id}/submission-count
func (h *CandidateHandler) GetSubmissionCount(w http.ResponseWriter, r *http.Request) {
	weekID := r.PathValue("id")
	if weekID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "week_id is required")
		return
	}

	if _, err := h.store.FindWeekByID(r.Context(), weekID); err != nil {
		domainError(w, err, "Failed to load week")
		return
	}

	count, err := h.store.CountSubmissions(r.Context(), weekID)
	if err != nil {
		domainError(w, err, "Failed to count submissions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmissionCountResponse{
		WeekID: weekID,
		Count:  count,
	})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/weekly-pick/auth"
	"github.com/danielhkuo/weekly-pick/cliparse"
	"github.com/danielhkuo/weekly-pick/middleware"
	"github.com/danielhkuo/weekly-pick/models"
	"github.com/danielhkuo/weekly-pick/weeks"
)

type AdminHandler struct {
	weeks *weeks.Service
	cfg   cliparse.Config
}

func NewAdminHandler(svc *weeks.Service, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{weeks: svc, cfg: cfg}
}

// authorized validates X-Admin-Key and writes 401 when it does not match.
func (h *AdminHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(auth.AdminScope, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// Rollover handles POST /admin/rollover
func (h *AdminHandler) Rollover(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	newWeekID, err := h.weeks.Rollover(r.Context(), h.weeks.Now())
	if err != nil {
		domainError(w, err, "Failed to roll over")
		return
	}

	week, err := h.weeks.WeekByID(r.Context(), newWeekID)
	if err != nil {
		domainError(w, err, "Failed to load new week")
		return
	}

	slog.Info("manual rollover", "week_id", newWeekID, "cycle", week.Cycle().String())

	middleware.JSONResponse(w, http.StatusOK, models.RolloverResponse{
		WeekID: newWeekID,
		Week:   models.NewWeekResponse(week, h.weeks.Calendar().Location()),
	})
}

// RegisterAnime handles POST /admin/anime
func (h *AdminHandler) RegisterAnime(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req models.RegisterAnimeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Quarter < 1 || req.Quarter > 4 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "quarter must be between 1 and 4")
		return
	}
	if req.AiringFrom != nil && req.AiringUntil != nil && !req.AiringFrom.Before(*req.AiringUntil) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "airing_from must be before airing_until")
		return
	}

	anime := models.Anime{
		Title:       req.Title,
		AiringFrom:  req.AiringFrom,
		AiringUntil: req.AiringUntil,
		CreatedAt:   h.weeks.Now(),
	}
	season, err := h.weeks.RegisterAnime(r.Context(), &anime, req.Year, req.Quarter)
	if err != nil {
		domainError(w, err, "Failed to register anime")
		return
	}

	slog.Info("anime registered", "anime_id", anime.ID, "season_id", season.ID, "title", anime.Title)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterAnimeResponse{
		AnimeID:  anime.ID,
		SeasonID: season.ID,
	})
}

// PrepareSeason handles POST /admin/seasons/{year}/{quarter}/prepare
func (h *AdminHandler) PrepareSeason(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	year, err1 := strconv.Atoi(r.PathValue("year"))
	quarter, err2 := strconv.Atoi(r.PathValue("quarter"))
	if err1 != nil || err2 != nil || quarter < 1 || quarter > 4 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "year and quarter (1-4) must be numbers")
		return
	}

	season, err := h.weeks.PrepareSeason(r.Context(), year, quarter)
	if err != nil {
		domainError(w, err, "Failed to prepare season")
		return
	}

	slog.Info("season prepared", "season_id", season.ID, "year", season.YearValue, "type", season.Type)

	middleware.JSONResponse(w, http.StatusOK, season)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/weekly-pick/cliparse"
	"github.com/danielhkuo/weekly-pick/cycle"
	"github.com/danielhkuo/weekly-pick/middleware"
	"github.com/danielhkuo/weekly-pick/models"
	"github.com/danielhkuo/weekly-pick/weeks"
)

type WeekHandler struct {
	weeks *weeks.Service
	cfg   cliparse.Config
}

func NewWeekHandler(svc *weeks.Service, cfg cliparse.Config) *WeekHandler {
	return &WeekHandler{weeks: svc, cfg: cfg}
}

func (h *WeekHandler) weekResponse(w models.Week) models.WeekResponse {
	resp := models.NewWeekResponse(w, h.weeks.Calendar().Location())
	if w.VoteStatus == models.VoteOpen {
		now := h.weeks.Now()
		if now.Before(w.EndAt) {
			resp.ClosesIn = humanize.RelTime(now, w.EndAt, "from now", "ago")
		} else {
			resp.ClosesIn = "rollover pending"
		}
	}
	return resp
}

// GetCurrentWeek handles GET /weeks/current
func (h *WeekHandler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	week, err := h.weeks.CurrentWeek(r.Context())
	if err != nil {
		domainError(w, err, "Failed to load current week")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.weekResponse(week))
}

// GetWeek handles GET /weeks/{year}/{quarter}/{week}
func (h *WeekHandler) GetWeek(w http.ResponseWriter, r *http.Request) {
	rec, ok := parseRecord(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "year, quarter (1-4) and week (>= 1) must be numbers")
		return
	}

	week, err := h.weeks.WeekByCycle(r.Context(), rec)
	if err != nil {
		domainError(w, err, "Failed to load week")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.weekResponse(week))
}

func parseRecord(r *http.Request) (cycle.Record, bool) {
	year, err1 := strconv.Atoi(r.PathValue("year"))
	quarter, err2 := strconv.Atoi(r.PathValue("quarter"))
	week, err3 := strconv.Atoi(r.PathValue("week"))
	if err1 != nil || err2 != nil || err3 != nil || quarter < 1 || quarter > 4 || week < 1 {
		return cycle.Record{}, false
	}
	return cycle.Record{Year: year, Quarter: quarter, Week: week}, true
}

// ResolveCycle handles GET /cycle?at=RFC3339
// Without at, the current time is resolved.
func (h *WeekHandler) ResolveCycle(w http.ResponseWriter, r *http.Request) {
	at := h.weeks.Now()
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "at must be an RFC 3339 timestamp")
			return
		}
		at = parsed
	}

	cal := h.weeks.Calendar()
	rec := cal.Resolve(at)
	start, end := cal.WeekWindow(rec)
	loc := cal.Location()

	middleware.JSONResponse(w, http.StatusOK, models.CycleResponse{
		At:      at.In(loc),
		Year:    rec.Year,
		Quarter: rec.Quarter,
		Week:    rec.Week,
		StartAt: start.In(loc),
		EndAt:   end.In(loc),
	})
}

// GetSeasons handles GET /seasons
func (h *WeekHandler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	years, err := h.weeks.Seasons(r.Context())
	if err != nil {
		domainError(w, err, "Failed to load seasons")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SeasonsResponse{Years: years})
}

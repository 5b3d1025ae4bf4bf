// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/weekly-pick/cliparse"
	"github.com/danielhkuo/weekly-pick/db"
	"github.com/danielhkuo/weekly-pick/handlers"
	"github.com/danielhkuo/weekly-pick/middleware"
	"github.com/danielhkuo/weekly-pick/weeks"
)

func NewRouter(store *db.Store, svc *weeks.Service, cfg cliparse.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)

	// Initialize handlers
	weekHandler := handlers.NewWeekHandler(svc, cfg)
	candidateHandler := handlers.NewCandidateHandler(store, cfg)
	voteHandler := handlers.NewVoteHandler(store, svc, cfg)
	adminHandler := handlers.NewAdminHandler(svc, cfg)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("DB UNAVAILABLE"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Calendar (public)
	r.Get("/cycle", middleware.WithLogging(weekHandler.ResolveCycle))
	r.Get("/seasons", middleware.WithLogging(weekHandler.GetSeasons))

	// Weeks (public)
	r.Route("/weeks", func(r chi.Router) {
		r.Get("/current", middleware.WithLogging(weekHandler.GetCurrentWeek))
		r.Get("/{year}/{quarter}/{week}", middleware.WithLogging(weekHandler.GetWeek))

		r.Get("/{id}/candidates", middleware.WithLogging(candidateHandler.GetCandidates))
		r.Get("/{id}/submission-count", middleware.WithLogging(candidateHandler.GetSubmissionCount))

		// Voting operations
		r.Post("/{id}/votes", middleware.WithLogging(voteHandler.SubmitVote))
		r.Get("/{id}/my-vote", middleware.WithLogging(voteHandler.GetMyVote))
	})

	// Admin operations (X-Admin-Key)
	r.Route("/admin", func(r chi.Router) {
		r.Post("/rollover", middleware.WithLogging(adminHandler.Rollover))
		r.Post("/anime", middleware.WithLogging(adminHandler.RegisterAnime))
		r.Post("/seasons/{year}/{quarter}/prepare", middleware.WithLogging(adminHandler.PrepareSeason))
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("weekly-pick API v1"))
	})

	return r
}

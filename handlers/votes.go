// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/weekly-pick/auth"
	"github.com/danielhkuo/weekly-pick/cliparse"
	"github.com/danielhkuo/weekly-pick/db"
	"github.com/danielhkuo/weekly-pick/middleware"
	"github.com/danielhkuo/weekly-pick/models"
	"github.com/danielhkuo/weekly-pick/weeks"
)

type VoteHandler struct {
	store *db.Store
	weeks *weeks.Service
	cfg   cliparse.Config
}

func NewVoteHandler(store *db.Store, svc *weeks.Service, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{store: store, weeks: svc, cfg: cfg}
}

// SubmitVote handles POST /weeks/{id}/votes
// A second submission by the same principal replaces the first one's ballots.
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	weekID := r.PathValue("id")
	if weekID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "week_id is required")
		return
	}

	memberID, err := middleware.MemberID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid X-Member-ID header")
		return
	}

	// Members are identified by their ID; everyone else gets a vote cookie.
	var cookieID string
	if memberID == nil {
		cookieID = middleware.EnsureVoteCookie(w, r, h.cfg.CookieSecure)
	}

	principal, err := auth.PrincipalKey(memberID, cookieID)
	if err != nil {
		domainError(w, err, "Failed to identify voter")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateBallots(req.Ballots); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	userAgent := r.UserAgent()

	sub := models.VoteSubmission{
		WeekID:       weekID,
		PrincipalKey: principal,
		MemberID:     memberID,
		IPHash:       &ipHash,
		UserAgent:    &userAgent,
		SubmittedAt:  h.weeks.Now(),
	}
	if cookieID != "" {
		sub.CookieID = &cookieID
	}
	for _, b := range req.Ballots {
		sub.Ballots = append(sub.Ballots, models.Ballot{CandidateID: b.CandidateID, BallotType: b.BallotType})
	}

	var isUpdate bool
	var badCandidate string
	err = h.store.InTx(r.Context(), func(tx *db.Store) error {
		week, err := tx.FindWeekByID(r.Context(), weekID)
		if err != nil {
			return err
		}
		if !week.AcceptsVotes(sub.SubmittedAt) {
			return fmt.Errorf("%w: week %s is not accepting votes", models.ErrInvalidTransition, week.Cycle())
		}

		candidates, err := tx.ListCandidates(r.Context(), weekID)
		if err != nil {
			return err
		}
		valid := make(map[string]bool, len(candidates))
		for _, c := range candidates {
			valid[c.ID] = true
		}
		for _, b := range sub.Ballots {
			if !valid[b.CandidateID] {
				badCandidate = b.CandidateID
				return nil
			}
		}

		isUpdate, err = tx.UpsertSubmission(r.Context(), &sub)
		return err
	})
	if err != nil {
		domainError(w, err, "Failed to submit vote")
		return
	}
	if badCandidate != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate "+badCandidate+" is not part of this week")
		return
	}

	statusCode := http.StatusCreated
	message := "Vote submitted"
	if isUpdate {
		statusCode = http.StatusOK
		message = "Vote updated"
	}

	slog.Info("vote submitted", "week_id", weekID, "submission_id", sub.ID, "update", isUpdate, "ballots", len(sub.Ballots))

	middleware.JSONResponse(w, statusCode, models.SubmitVoteResponse{
		SubmissionID: sub.ID,
		Message:      message,
	})
}

// validateBallots returns a client-facing message for the first problem found.
func validateBallots(ballots []models.BallotRequest) string {
	if len(ballots) == 0 {
		return "ballots are required"
	}

	seen := make(map[string]bool, len(ballots))
	for _, b := range ballots {
		if b.CandidateID == "" {
			return "candidate_id is required"
		}
		if b.BallotType != models.BallotNormal && b.BallotType != models.BallotBonus {
			return "ballot_type must be NORMAL or BONUS"
		}
		if seen[b.CandidateID] {
			return "duplicate candidate " + b.CandidateID
		}
		seen[b.CandidateID] = true
	}
	return ""
}

// GetMyVote handles GET /weeks/{id}/my-vote
func (h *VoteHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	weekID := r.PathValue("id")
	if weekID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "week_id is required")
		return
	}

	memberID, err := middleware.MemberID(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid X-Member-ID header")
		return
	}

	principal, err := auth.PrincipalKey(memberID, middleware.VoteCookie(r))
	if err != nil {
		domainError(w, err, "Failed to identify voter")
		return
	}

	sub, err := h.store.FindSubmission(r.Context(), weekID, principal)
	if err != nil {
		domainError(w, err, "Failed to load vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sub)
}

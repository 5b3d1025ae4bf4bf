// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Weekly Pick API.

# Handler Types

Each handler is a struct with its dependencies and the config:

  - WeekHandler: current week, week lookup, cycle resolution, seasons
  - CandidateHandler: candidates and submission counts of a week
  - VoteHandler: vote submission and the caller's own vote
  - AdminHandler: rollover, anime registration, season preparation

Handlers are created via constructor functions:

	weekHandler := handlers.NewWeekHandler(svc, cfg)
	voteHandler := handlers.NewVoteHandler(store, svc, cfg)

# Week Lifecycle

Weeks progress through three states: draft → open → closed. Exactly one week
is open at a time; the scheduler or an admin rollover moves it forward.

	GET  /weeks/current                  → GetCurrentWeek
	GET  /weeks/{year}/{quarter}/{week}  → GetWeek
	GET  /cycle?at=2025-01-06T18:00:00Z  → ResolveCycle
	POST /admin/rollover                 → Rollover (409 until the open week ends)

Admin operations require the X-Admin-Key header.

# Voting Flow

	GET  /weeks/{id}/candidates → GetCandidates
	POST /weeks/{id}/votes      → SubmitVote (create or replace)
	GET  /weeks/{id}/my-vote    → GetMyVote

Voters are identified by X-Member-ID, or else by the vote_cookie_id cookie,
which SubmitVote issues on first use. Votes are accepted only while the week
is open and its start has passed.

# Errors

Domain errors map to status codes:

  - models.ErrNotFound → 404
  - models.ErrInvalidTransition, ErrRaceLost, ErrRolloverNotDue → 409
  - auth.ErrAuthRequired → 401
*/
package handlers

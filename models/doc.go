// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain entities, request and response types for the API.

# Domain Types

  - Quarter: business quarter keyed by (year, quarter) with its anchor instant
  - Season: anime season of a quarter (1:1), hidden from listings until prepared
  - Week: voting window of a quarter with a vote status
  - Anime: title with an optional airing window
  - AnimeCandidate: anime eligible for votes in one week
  - VoteSubmission, Ballot: one principal's vote for one week

# Week Lifecycle

Weeks progress through three states and never go back:

	draft → open → closed

	w.OpenVote(now)  // draft → open, else ErrInvalidTransition
	w.CloseVote(now) // open → closed, else ErrInvalidTransition

At most one week is open at any time; the db package enforces this with a
partial unique index.

# Errors

	ErrNotFound          lookup miss
	ErrInvalidTransition state machine guard violated
	ErrRaceLost          concurrent writer won; safe to retry
	ErrRolloverNotDue    rollover requested before the open week ended

# Constants

Vote status values:

	VoteDraft  = "draft"
	VoteOpen   = "open"
	VoteClosed = "closed"

Ballot types:

	BallotNormal = "NORMAL"
	BallotBonus  = "BONUS"
*/
package models

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is shared by PostgreSQL and SQLite.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Quarters
CREATE TABLE IF NOT EXISTS quarter (
    id TEXT PRIMARY KEY,
    year_value INTEGER NOT NULL,
    quarter_value INTEGER NOT NULL CHECK (quarter_value BETWEEN 1 AND 4),
    anchor_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (year_value, quarter_value)
);

-- Seasons
CREATE TABLE IF NOT EXISTS season (
    id TEXT PRIMARY KEY,
    quarter_id TEXT NOT NULL UNIQUE REFERENCES quarter(id) ON DELETE CASCADE,
    year_value INTEGER NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('WINTER', 'SPRING', 'SUMMER', 'AUTUMN')),
    type_order INTEGER NOT NULL,
    is_prepared BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_season_prepared ON season(is_prepared, year_value, type_order);

-- Weeks
CREATE TABLE IF NOT EXISTS week (
    id TEXT PRIMARY KEY,
    quarter_id TEXT NOT NULL REFERENCES quarter(id) ON DELETE CASCADE,
    week_value INTEGER NOT NULL CHECK (week_value >= 1),
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP NOT NULL,
    vote_status TEXT NOT NULL DEFAULT 'draft' CHECK (vote_status IN ('draft', 'open', 'closed')),
    opened_at TIMESTAMP,
    closed_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (quarter_id, week_value)
);

-- At most one open week system-wide
CREATE UNIQUE INDEX IF NOT EXISTS idx_week_single_open ON week(vote_status) WHERE vote_status = 'open';

-- Anime
CREATE TABLE IF NOT EXISTS anime (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    airing_from TIMESTAMP,
    airing_until TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS anime_season (
    anime_id TEXT NOT NULL REFERENCES anime(id) ON DELETE CASCADE,
    season_id TEXT NOT NULL REFERENCES season(id) ON DELETE CASCADE,
    PRIMARY KEY (anime_id, season_id)
);

CREATE INDEX IF NOT EXISTS idx_anime_season_season ON anime_season(season_id);

-- Candidates
CREATE TABLE IF NOT EXISTS anime_candidate (
    id TEXT PRIMARY KEY,
    week_id TEXT NOT NULL REFERENCES week(id) ON DELETE CASCADE,
    anime_id TEXT NOT NULL REFERENCES anime(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (week_id, anime_id)
);

CREATE INDEX IF NOT EXISTS idx_anime_candidate_week ON anime_candidate(week_id);

-- Vote submissions
CREATE TABLE IF NOT EXISTS vote_submission (
    id TEXT PRIMARY KEY,
    week_id TEXT NOT NULL REFERENCES week(id) ON DELETE CASCADE,
    principal_key TEXT NOT NULL,
    member_id BIGINT,
    cookie_id TEXT,
    ip_hash TEXT,
    user_agent TEXT,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (week_id, principal_key)
);

CREATE INDEX IF NOT EXISTS idx_vote_submission_week ON vote_submission(week_id);

-- Ballots
CREATE TABLE IF NOT EXISTS ballot (
    submission_id TEXT NOT NULL REFERENCES vote_submission(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL REFERENCES anime_candidate(id) ON DELETE CASCADE,
    ballot_type TEXT NOT NULL CHECK (ballot_type IN ('NORMAL', 'BONUS')),
    PRIMARY KEY (submission_id, candidate_id)
);

CREATE INDEX IF NOT EXISTS idx_ballot_candidate ON ballot(candidate_id);
`

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and persistence of the vote cycle.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same DDL runs on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).

# Tables

  - quarter: business quarters, unique per (year_value, quarter_value)
  - season: one per quarter, with is_prepared visibility flag
  - week: voting windows with vote_status draft/open/closed
  - anime, anime_season: titles and their seasons
  - anime_candidate: titles eligible for votes in a week
  - vote_submission: one per (week_id, principal_key)
  - ballot: candidates chosen in a submission

# Relationships

	quarter 1──1 season
	quarter 1──* week
	season *──* anime (via anime_season)
	week 1──* anime_candidate
	week 1──* vote_submission
	vote_submission 1──* ballot

All foreign keys use ON DELETE CASCADE.

# Invariants in the Schema

  - idx_week_single_open: partial unique index, at most one open week
  - UNIQUE (quarter_id, week_value): a week number exists once per quarter
  - UNIQUE (year_value, quarter_value): one quarter row per calendar key

# Store

Store wraps *sql.DB. InTx gives a transaction-bound Store:

	err := store.InTx(ctx, func(tx *db.Store) error {
		w, err := tx.FindOpenWeek(ctx)
		...
	})

Find-or-create uses INSERT ... ON CONFLICT DO NOTHING followed by a read, so
concurrent first access resolves to a single row. Status changes are
compare-and-swap updates (WHERE vote_status = from). Unique violations from
either driver surface as models.ErrRaceLost; missing rows as models.ErrNotFound.
*/
package db

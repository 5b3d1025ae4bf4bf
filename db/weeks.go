// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/weekly-pick/auth"
	"github.com/danielhkuo/weekly-pick/models"
)

const weekSelect = `
	SELECT w.id, w.quarter_id, q.year_value, q.quarter_value, w.week_value,
	       w.start_at, w.end_at, w.vote_status, w.opened_at, w.closed_at, w.created_at
	FROM week w
	JOIN quarter q ON q.id = w.quarter_id
`

func scanWeek(row interface{ Scan(...any) error }) (models.Week, error) {
	var w models.Week
	var openedAt, closedAt sql.NullTime
	err := row.Scan(
		&w.ID, &w.QuarterID, &w.YearValue, &w.QuarterValue, &w.WeekValue,
		&w.StartAt, &w.EndAt, &w.VoteStatus, &openedAt, &closedAt, &w.CreatedAt,
	)
	w.OpenedAt = timePtr(openedAt)
	w.ClosedAt = timePtr(closedAt)
	return w, err
}

func (s *Store) findWeek(ctx context.Context, what, where string, args ...any) (models.Week, error) {
	w, err := scanWeek(s.q.QueryRowContext(ctx, weekSelect+where, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return w, fmt.Errorf("%s: %w", what, models.ErrNotFound)
	}
	if err != nil {
		return w, fmt.Errorf("failed to query week: %w", err)
	}
	return w, nil
}

func (s *Store) FindWeekByID(ctx context.Context, id string) (models.Week, error) {
	return s.findWeek(ctx, "week "+id, `WHERE w.id = $1`, id)
}

// FindOpenWeek returns the single open week or ErrNotFound.
func (s *Store) FindOpenWeek(ctx context.Context) (models.Week, error) {
	return s.findWeek(ctx, "open week", `WHERE w.vote_status = $1`, models.VoteOpen)
}

func (s *Store) FindWeekByCycle(ctx context.Context, year, quarter, week int) (models.Week, error) {
	return s.findWeek(ctx, fmt.Sprintf("week %d-Q%d-W%02d", year, quarter, week), `
		WHERE q.year_value = $1 AND q.quarter_value = $2 AND w.week_value = $3
	`, year, quarter, week)
}

// InsertWeek persists w and assigns its ID. A duplicate (quarter, week) or a
// second open week returns ErrRaceLost.
func (s *Store) InsertWeek(ctx context.Context, w *models.Week) error {
	id, err := auth.GenerateID(16)
	if err != nil {
		return err
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO week (id, quarter_id, week_value, start_at, end_at, vote_status, opened_at, closed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, w.QuarterID, w.WeekValue, utc(w.StartAt), utc(w.EndAt), w.VoteStatus,
		nullUTC(w.OpenedAt), nullUTC(w.ClosedAt), utc(w.CreatedAt))
	if err != nil {
		return mapWriteErr(err, "insert week")
	}

	w.ID = id
	return nil
}

// SaveWeekStatus writes w's status and transition times, but only if the stored
// status is still from. Zero rows affected means another writer moved the week
// first and returns ErrRaceLost.
func (s *Store) SaveWeekStatus(ctx context.Context, w models.Week, from models.VoteStatus) error {
	result, err := s.q.ExecContext(ctx, `
		UPDATE week
		SET vote_status = $1, opened_at = $2, closed_at = $3
		WHERE id = $4 AND vote_status = $5
	`, w.VoteStatus, nullUTC(w.OpenedAt), nullUTC(w.ClosedAt), w.ID, from)
	if err != nil {
		return mapWriteErr(err, "update week status")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: week %s is no longer %s", models.ErrRaceLost, w.ID, from)
	}
	return nil
}

// CountOpenWeeks is used by tests and health checks to verify the single-open invariant.
func (s *Store) CountOpenWeeks(ctx context.Context) (int, error) {
	var n int
	err := s.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM week WHERE vote_status = $1
	`, models.VoteOpen).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count open weeks: %w", err)
	}
	return n, nil
}

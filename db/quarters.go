// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/weekly-pick/auth"
	"github.com/danielhkuo/weekly-pick/models"
)

const quarterColumns = `id, year_value, quarter_value, anchor_at, created_at`

func scanQuarter(row interface{ Scan(...any) error }) (models.Quarter, error) {
	var q models.Quarter
	err := row.Scan(&q.ID, &q.YearValue, &q.QuarterValue, &q.AnchorAt, &q.CreatedAt)
	return q, err
}

// FindQuarter returns the quarter for (year, quarter) or ErrNotFound.
func (s *Store) FindQuarter(ctx context.Context, year, quarter int) (models.Quarter, error) {
	q, err := scanQuarter(s.q.QueryRowContext(ctx, `
		SELECT `+quarterColumns+`
		FROM quarter
		WHERE year_value = $1 AND quarter_value = $2
	`, year, quarter))
	if errors.Is(err, sql.ErrNoRows) {
		return q, fmt.Errorf("quarter %d-Q%d: %w", year, quarter, models.ErrNotFound)
	}
	if err != nil {
		return q, fmt.Errorf("failed to query quarter: %w", err)
	}
	return q, nil
}

func (s *Store) FindQuarterByID(ctx context.Context, id string) (models.Quarter, error) {
	q, err := scanQuarter(s.q.QueryRowContext(ctx, `
		SELECT `+quarterColumns+` FROM quarter WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return q, fmt.Errorf("quarter %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return q, fmt.Errorf("failed to query quarter: %w", err)
	}
	return q, nil
}

// FindOrCreateQuarter returns the single quarter row for (year, quarter).
// Concurrent callers race on the (year_value, quarter_value) unique key:
// the insert is a no-op for every loser, and all of them read back the winner's row.
func (s *Store) FindOrCreateQuarter(ctx context.Context, year, quarter int, anchor time.Time) (models.Quarter, error) {
	id, err := auth.GenerateID(16)
	if err != nil {
		return models.Quarter{}, err
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO quarter (id, year_value, quarter_value, anchor_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (year_value, quarter_value) DO NOTHING
	`, id, year, quarter, utc(anchor), utc(time.Now()))
	if err != nil {
		return models.Quarter{}, mapWriteErr(err, "insert quarter")
	}

	return s.FindQuarter(ctx, year, quarter)
}

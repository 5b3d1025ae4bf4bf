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

const seasonColumns = `id, quarter_id, year_value, type, type_order, is_prepared, created_at`

func scanSeason(row interface{ Scan(...any) error }) (models.Season, error) {
	var s models.Season
	err := row.Scan(&s.ID, &s.QuarterID, &s.YearValue, &s.Type, &s.TypeOrder, &s.IsPrepared, &s.CreatedAt)
	return s, err
}

func (s *Store) FindSeasonByQuarter(ctx context.Context, quarterID string) (models.Season, error) {
	season, err := scanSeason(s.q.QueryRowContext(ctx, `
		SELECT `+seasonColumns+` FROM season WHERE quarter_id = $1
	`, quarterID))
	if errors.Is(err, sql.ErrNoRows) {
		return season, fmt.Errorf("season of quarter %s: %w", quarterID, models.ErrNotFound)
	}
	if err != nil {
		return season, fmt.Errorf("failed to query season: %w", err)
	}
	return season, nil
}

// FindOrCreateSeason returns the season of q, creating it on first access.
// Race resolution is the same as FindOrCreateQuarter, keyed on quarter_id.
func (s *Store) FindOrCreateSeason(ctx context.Context, q models.Quarter) (models.Season, error) {
	id, err := auth.GenerateID(16)
	if err != nil {
		return models.Season{}, err
	}

	season := models.NewSeason(q)
	_, err = s.q.ExecContext(ctx, `
		INSERT INTO season (id, quarter_id, year_value, type, type_order, is_prepared, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (quarter_id) DO NOTHING
	`, id, season.QuarterID, season.YearValue, season.Type, season.TypeOrder, false, utc(time.Now()))
	if err != nil {
		return models.Season{}, mapWriteErr(err, "insert season")
	}

	return s.FindSeasonByQuarter(ctx, q.ID)
}

// ListPreparedSeasons returns prepared seasons ordered by year, then type order.
func (s *Store) ListPreparedSeasons(ctx context.Context) ([]models.Season, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+seasonColumns+`
		FROM season
		WHERE is_prepared = $1
		ORDER BY year_value, type_order
	`, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	seasons := []models.Season{}
	for rows.Next() {
		season, err := scanSeason(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

// SetSeasonPrepared toggles whether a season is visible in listings.
func (s *Store) SetSeasonPrepared(ctx context.Context, seasonID string, prepared bool) error {
	result, err := s.q.ExecContext(ctx, `
		UPDATE season SET is_prepared = $1 WHERE id = $2
	`, prepared, seasonID)
	if err != nil {
		return fmt.Errorf("failed to update season: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("season %s: %w", seasonID, models.ErrNotFound)
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/weekly-pick/auth"
	"github.com/danielhkuo/weekly-pick/models"
)

// InsertAnime registers a title and links it to a season.
func (s *Store) InsertAnime(ctx context.Context, a *models.Anime, seasonID string) error {
	id, err := auth.GenerateID(16)
	if err != nil {
		return err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO anime (id, title, airing_from, airing_until, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, a.Title, nullUTC(a.AiringFrom), nullUTC(a.AiringUntil), utc(a.CreatedAt))
	if err != nil {
		return mapWriteErr(err, "insert anime")
	}

	_, err = s.q.ExecContext(ctx, `
		INSERT INTO anime_season (anime_id, season_id) VALUES ($1, $2)
	`, id, seasonID)
	if err != nil {
		return mapWriteErr(err, "link anime to season")
	}

	a.ID = id
	return nil
}

// ListSeasonAnime returns every title linked to a season.
func (s *Store) ListSeasonAnime(ctx context.Context, seasonID string) ([]models.Anime, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT a.id, a.title, a.airing_from, a.airing_until, a.created_at
		FROM anime a
		JOIN anime_season ans ON ans.anime_id = a.id
		WHERE ans.season_id = $1
		ORDER BY a.title, a.id
	`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query anime: %w", err)
	}
	defer rows.Close()

	var list []models.Anime
	for rows.Next() {
		var a models.Anime
		var from, until sql.NullTime
		if err := rows.Scan(&a.ID, &a.Title, &from, &until, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan anime: %w", err)
		}
		a.AiringFrom = timePtr(from)
		a.AiringUntil = timePtr(until)
		list = append(list, a)
	}
	return list, rows.Err()
}

// TitlesEligibleFor returns the ids of the season's titles airing at asOf.
func (s *Store) TitlesEligibleFor(ctx context.Context, season models.Season, asOf time.Time) ([]string, error) {
	list, err := s.ListSeasonAnime(ctx, season.ID)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	for _, a := range list {
		if a.AiringAt(asOf) {
			ids = append(ids, a.ID)
		}
	}
	return ids, nil
}

// InsertCandidates creates one candidate per anime for a week.
func (s *Store) InsertCandidates(ctx context.Context, weekID string, animeIDs []string, at time.Time) error {
	for _, animeID := range animeIDs {
		id, err := auth.GenerateID(12)
		if err != nil {
			return err
		}

		_, err = s.q.ExecContext(ctx, `
			INSERT INTO anime_candidate (id, week_id, anime_id, created_at)
			VALUES ($1, $2, $3, $4)
		`, id, weekID, animeID, utc(at))
		if err != nil {
			return mapWriteErr(err, "insert candidate")
		}
	}
	return nil
}

func (s *Store) ListCandidates(ctx context.Context, weekID string) ([]models.AnimeCandidate, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT c.id, c.week_id, c.anime_id, a.title, c.created_at
		FROM anime_candidate c
		JOIN anime a ON a.id = c.anime_id
		WHERE c.week_id = $1
		ORDER BY a.title, c.id
	`, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.AnimeCandidate{}
	for rows.Next() {
		var c models.AnimeCandidate
		if err := rows.Scan(&c.ID, &c.WeekID, &c.AnimeID, &c.Title, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

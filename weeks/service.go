// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package weeks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/weekly-pick/cycle"
	"github.com/danielhkuo/weekly-pick/db"
	"github.com/danielhkuo/weekly-pick/models"
)

// CandidateSource lists the titles eligible for votes in a season at an instant.
type CandidateSource interface {
	TitlesEligibleFor(ctx context.Context, season models.Season, asOf time.Time) ([]string, error)
}

// Service answers which week is current and advances the cycle.
type Service struct {
	store *db.Store
	cal   cycle.Calendar

	// Candidates seeds new weeks. When nil, the transaction-bound store is used.
	Candidates CandidateSource

	// Now is the clock; tests replace it.
	Now func() time.Time
}

func NewService(store *db.Store, cal cycle.Calendar) *Service {
	return &Service{store: store, cal: cal, Now: time.Now}
}

func (s *Service) Calendar() cycle.Calendar {
	return s.cal
}

// Resolve maps t to its (year, quarter, week). It never touches the store.
func (s *Service) Resolve(t time.Time) cycle.Record {
	return s.cal.Resolve(t)
}

// CurrentWeek returns the open week. ErrNotFound means no week is open.
func (s *Service) CurrentWeek(ctx context.Context) (models.Week, error) {
	return s.store.FindOpenWeek(ctx)
}

// WeekByTime returns the persisted week whose window holds t.
func (s *Service) WeekByTime(ctx context.Context, t time.Time) (models.Week, error) {
	rec := s.cal.Resolve(t)
	return s.store.FindWeekByCycle(ctx, rec.Year, rec.Quarter, rec.Week)
}

func (s *Service) WeekByCycle(ctx context.Context, rec cycle.Record) (models.Week, error) {
	return s.store.FindWeekByCycle(ctx, rec.Year, rec.Quarter, rec.Week)
}

func (s *Service) WeekByID(ctx context.Context, id string) (models.Week, error) {
	return s.store.FindWeekByID(ctx, id)
}

// QuarterID returns the ID of a persisted quarter without creating it.
func (s *Service) QuarterID(ctx context.Context, year, quarter int) (string, error) {
	q, err := s.store.FindQuarter(ctx, year, quarter)
	if err != nil {
		return "", err
	}
	return q.ID, nil
}

// Seasons lists prepared seasons grouped by year, oldest first.
func (s *Service) Seasons(ctx context.Context) ([]models.SeasonYear, error) {
	seasons, err := s.store.ListPreparedSeasons(ctx)
	if err != nil {
		return nil, err
	}

	years := []models.SeasonYear{}
	for _, season := range seasons {
		if n := len(years); n > 0 && years[n-1].Year == season.YearValue {
			years[n-1].Seasons = append(years[n-1].Seasons, season.Type)
			continue
		}
		years = append(years, models.SeasonYear{Year: season.YearValue, Seasons: []models.SeasonType{season.Type}})
	}
	return years, nil
}

// PrepareSeason marks the season of (year, quarter) visible, creating it if needed.
func (s *Service) PrepareSeason(ctx context.Context, year, quarter int) (models.Season, error) {
	if quarter < 1 || quarter > 4 {
		return models.Season{}, fmt.Errorf("%w: quarter %d", models.ErrNotFound, quarter)
	}

	var season models.Season
	err := s.store.InTx(ctx, func(tx *db.Store) error {
		q, err := tx.FindOrCreateQuarter(ctx, year, quarter, s.cal.Anchor(year, quarter))
		if err != nil {
			return err
		}
		season, err = tx.FindOrCreateSeason(ctx, q)
		if err != nil {
			return err
		}
		if err := tx.SetSeasonPrepared(ctx, season.ID, true); err != nil {
			return err
		}
		season.IsPrepared = true
		return nil
	})
	return season, err
}

// RegisterAnime adds a title to the season of (year, quarter).
func (s *Service) RegisterAnime(ctx context.Context, a *models.Anime, year, quarter int) (models.Season, error) {
	if quarter < 1 || quarter > 4 {
		return models.Season{}, fmt.Errorf("%w: quarter %d", models.ErrNotFound, quarter)
	}

	var season models.Season
	err := s.store.InTx(ctx, func(tx *db.Store) error {
		q, err := tx.FindOrCreateQuarter(ctx, year, quarter, s.cal.Anchor(year, quarter))
		if err != nil {
			return err
		}
		season, err = tx.FindOrCreateSeason(ctx, q)
		if err != nil {
			return err
		}
		return tx.InsertAnime(ctx, a, season.ID)
	})
	return season, err
}

// AdvanceCycle closes the open week openWeekID and opens the week of expected
// in one transaction. Re-running it for a week that is already closed fails
// with ErrInvalidTransition and changes nothing.
func (s *Service) AdvanceCycle(ctx context.Context, now time.Time, openWeekID string, expected cycle.Record) (string, error) {
	var newWeekID string

	err := s.store.InTx(ctx, func(tx *db.Store) error {
		last, err := tx.FindWeekByID(ctx, openWeekID)
		if err != nil {
			return err
		}

		if err := last.CloseVote(now); err != nil {
			return err
		}
		if err := tx.SaveWeekStatus(ctx, last, models.VoteOpen); err != nil {
			return err
		}

		if !last.Cycle().Before(expected) {
			return fmt.Errorf("%w: next week %s is not after %s", models.ErrInvalidTransition, expected, last.Cycle())
		}

		next, err := s.createWeek(ctx, tx, now, expected, &last)
		if err != nil {
			return err
		}

		newWeekID = next.ID
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("cycle advanced", "closed_week", openWeekID, "opened_week", newWeekID, "cycle", expected.String())
	return newWeekID, nil
}

// createWeek inserts the week of rec, seeds its candidates and opens it.
// The quarter is reused from prev when rec is in the same quarter.
func (s *Service) createWeek(ctx context.Context, tx *db.Store, now time.Time, rec cycle.Record, prev *models.Week) (models.Week, error) {
	var q models.Quarter
	var err error
	if prev != nil && prev.Cycle().SameQuarter(rec) {
		q, err = tx.FindQuarterByID(ctx, prev.QuarterID)
	} else {
		q, err = tx.FindOrCreateQuarter(ctx, rec.Year, rec.Quarter, s.cal.Anchor(rec.Year, rec.Quarter))
	}
	if err != nil {
		return models.Week{}, err
	}

	season, err := tx.FindOrCreateSeason(ctx, q)
	if err != nil {
		return models.Week{}, err
	}

	week := models.NewWeek(s.cal, q, rec.Week, now)
	if err := tx.InsertWeek(ctx, &week); err != nil {
		return models.Week{}, err
	}

	if err := s.seedCandidates(ctx, tx, week, season, now); err != nil {
		return models.Week{}, err
	}

	if err := week.OpenVote(now); err != nil {
		return models.Week{}, err
	}
	if err := tx.SaveWeekStatus(ctx, week, models.VoteDraft); err != nil {
		return models.Week{}, err
	}
	return week, nil
}

func (s *Service) seedCandidates(ctx context.Context, tx *db.Store, week models.Week, season models.Season, asOf time.Time) error {
	var source CandidateSource = tx
	if s.Candidates != nil {
		source = s.Candidates
	}

	titles, err := source.TitlesEligibleFor(ctx, season, asOf)
	if err != nil {
		return fmt.Errorf("failed to list eligible titles: %w", err)
	}
	return tx.InsertCandidates(ctx, week.ID, titles, asOf)
}

// Rollover advances the cycle once the open week has ended.
// Before that it returns ErrRolloverNotDue.
func (s *Service) Rollover(ctx context.Context, now time.Time) (string, error) {
	open, err := s.store.FindOpenWeek(ctx)
	if err != nil {
		return "", err
	}

	if now.Before(open.EndAt) {
		return "", fmt.Errorf("%w: week %s closes at %s", models.ErrRolloverNotDue, open.Cycle(), open.EndAt.Format(time.RFC3339))
	}

	return s.AdvanceCycle(ctx, now, open.ID, s.cal.Resolve(now))
}

// Bootstrap makes sure a week is open. With no open week, it opens the week
// of now, creating it when it does not exist yet.
func (s *Service) Bootstrap(ctx context.Context, now time.Time) (models.Week, error) {
	open, err := s.store.FindOpenWeek(ctx)
	if err == nil {
		return open, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return models.Week{}, err
	}

	rec := s.cal.Resolve(now)
	var week models.Week

	err = s.store.InTx(ctx, func(tx *db.Store) error {
		existing, err := tx.FindWeekByCycle(ctx, rec.Year, rec.Quarter, rec.Week)
		switch {
		case errors.Is(err, models.ErrNotFound):
			week, err = s.createWeek(ctx, tx, now, rec, nil)
			return err
		case err != nil:
			return err
		}

		// A closed current week is never reopened.
		if err := existing.OpenVote(now); err != nil {
			return err
		}
		if err := tx.SaveWeekStatus(ctx, existing, models.VoteDraft); err != nil {
			return err
		}
		week = existing
		return nil
	})
	if err != nil {
		return models.Week{}, err
	}

	slog.Info("voting week opened", "week_id", week.ID, "cycle", week.Cycle().String())
	return week, nil
}

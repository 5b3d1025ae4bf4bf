// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/weekly-pick/models"
	"github.com/danielhkuo/weekly-pick/weeks"
)

// Scheduler polls the weeks service and rolls the cycle over once the open
// week has ended.
type Scheduler struct {
	svc      *weeks.Service
	interval time.Duration
}

func New(svc *weeks.Service, interval time.Duration) *Scheduler {
	return &Scheduler{svc: svc, interval: interval}
}

// Run ticks until ctx is cancelled. It always returns nil.
func (s *Scheduler) Run(ctx context.Context) error {
	slog.Info("rollover scheduler started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("rollover scheduler stopped")
			return nil
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one rollover attempt. Failures are logged and retried on the next tick.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.svc.Now()

	weekID, err := s.svc.Rollover(ctx, now)
	switch {
	case err == nil:
		if open, err := s.svc.WeekByID(ctx, weekID); err == nil {
			slog.Info("rollover completed", "week_id", weekID, "cycle", open.Cycle().String(),
				"closes", humanize.RelTime(now, open.EndAt, "from now", "ago"))
		}
	case errors.Is(err, models.ErrRolloverNotDue):
		if open, err := s.svc.CurrentWeek(ctx); err == nil {
			slog.Debug("rollover not due", "cycle", open.Cycle().String(),
				"closes", humanize.RelTime(now, open.EndAt, "from now", "ago"))
		}
	case errors.Is(err, models.ErrNotFound):
		// Nothing is open, e.g. after a failed bootstrap.
		if _, err := s.svc.Bootstrap(ctx, now); err != nil {
			slog.Error("bootstrap failed", "error", err)
		}
	case errors.Is(err, models.ErrRaceLost):
		slog.Warn("rollover lost race, retrying next tick", "error", err)
	case errors.Is(err, models.ErrInvalidTransition):
		slog.Error("rollover rejected", "error", err)
	case ctx.Err() != nil:
		// shutting down
	default:
		slog.Error("rollover failed", "error", err)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scheduler drives automatic week rollover.

A Scheduler calls weeks.Service.Rollover on a fixed interval:

	s := scheduler.New(svc, cfg.RolloverInterval)
	go s.Run(ctx)

Each tick reads the clock from the service. Before the open week ends the
attempt fails with ErrRolloverNotDue and nothing happens. When no week is open
at all, the tick bootstraps the current one. Lost races and store failures are
retried on the next tick; the service guarantees at most one rollover per week
no matter how many schedulers or admins race.
*/
package scheduler

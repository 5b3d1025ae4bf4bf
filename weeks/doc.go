// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package weeks runs the voting cycle on top of the store.

# Read Path

	svc := weeks.NewService(store, cycle.NewCalendar(loc))
	week, err := svc.CurrentWeek(ctx)      // the open week
	week, err = svc.WeekByTime(ctx, t)     // the week whose window holds t

Lookups that miss return models.ErrNotFound; they never fall back to a
neighbouring week.

# Rollover

AdvanceCycle closes the open week and opens the next one in a single
transaction:

 1. load the open week by ID
 2. close it (fails with ErrInvalidTransition if it is not open)
 3. find or create the quarter and season of the expected cycle
 4. insert the new week as draft
 5. seed candidates from the CandidateSource
 6. open the new week

Any failure rolls back every step, so exactly one week stays open. A second
call with the same open week ID fails at step 2. Rollover wraps AdvanceCycle
for the scheduler: it returns ErrRolloverNotDue until the open week has ended.

# Bootstrap

On startup Bootstrap opens the week of now if no week is open. A current week
that was already closed is left alone and reported as ErrInvalidTransition.
*/
package weeks

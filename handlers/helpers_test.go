// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"
	"time"

	"github.com/danielhkuo/weekly-pick/cliparse"
	"github.com/danielhkuo/weekly-pick/cycle"
	"github.com/danielhkuo/weekly-pick/db"
	"github.com/danielhkuo/weekly-pick/models"
	"github.com/danielhkuo/weekly-pick/testutil"
	"github.com/danielhkuo/weekly-pick/weeks"
)

type testEnv struct {
	store *db.Store
	svc   *weeks.Service
	cfg   cliparse.Config
	cal   cycle.Calendar
	now   time.Time
}

// newTestEnv wires a service whose clock is frozen one day into 2025-Q1-W02.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := testutil.SetupTestStore(t)
	cal := cycle.NewCalendar(testutil.KST)
	svc := weeks.NewService(store, cal)

	start, _ := cal.WeekWindow(cycle.Record{Year: 2025, Quarter: 1, Week: 2})
	env := &testEnv{
		store: store,
		svc:   svc,
		cfg:   testutil.GetTestConfig(),
		cal:   cal,
		now:   start.Add(24 * time.Hour),
	}
	svc.Now = func() time.Time { return env.now }
	return env
}

// openWeek creates the open week 2025-Q1-W02 with two candidates.
func (e *testEnv) openWeek(t *testing.T) (week models.Week, candA, candB string) {
	t.Helper()

	week = testutil.CreateTestWeek(t, e.store, e.cal, cycle.Record{Year: 2025, Quarter: 1, Week: 2}, models.VoteOpen)
	candA = testutil.AddTestCandidate(t, e.store, week.ID, testutil.AddTestAnime(t, e.store, e.cal, 2025, 1, "Alpha", nil, nil))
	candB = testutil.AddTestCandidate(t, e.store, week.ID, testutil.AddTestAnime(t, e.store, e.cal, 2025, 1, "Beta", nil, nil))
	return week, candA, candB
}

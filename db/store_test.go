// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/weekly-pick/cycle"
	"github.com/danielhkuo/weekly-pick/db"
	"github.com/danielhkuo/weekly-pick/models"
	"github.com/danielhkuo/weekly-pick/testutil"
)

var cal = cycle.NewCalendar(testutil.KST)

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Errorf("Second CreateSchema failed: %v", err)
	}
}

func TestFindOrCreateQuarter(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	anchor := cal.Anchor(2025, 1)

	q1, err := store.FindOrCreateQuarter(ctx, 2025, 1, anchor)
	if err != nil {
		t.Fatalf("FindOrCreateQuarter failed: %v", err)
	}
	q2, err := store.FindOrCreateQuarter(ctx, 2025, 1, anchor)
	if err != nil {
		t.Fatalf("Second FindOrCreateQuarter failed: %v", err)
	}

	if q1.ID != q2.ID {
		t.Errorf("Expected the same quarter, got %s and %s", q1.ID, q2.ID)
	}
	if q1.YearValue != 2025 || q1.QuarterValue != 1 || !q1.AnchorAt.Equal(anchor) {
		t.Errorf("Unexpected quarter %+v", q1)
	}
}

func TestFindOrCreateQuarter_Concurrent(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	anchor := cal.Anchor(2025, 2)

	const workers = 10
	ids := make([]string, workers)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q, err := store.FindOrCreateQuarter(ctx, 2025, 2, anchor)
			if err != nil {
				t.Errorf("FindOrCreateQuarter failed: %v", err)
				return
			}
			ids[i] = q.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids[1:] {
		if id != ids[0] {
			t.Fatalf("Concurrent callers got different quarters: %v", ids)
		}
	}
}

func TestFindOrCreateSeason(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	q, err := store.FindOrCreateQuarter(ctx, 2025, 3, cal.Anchor(2025, 3))
	if err != nil {
		t.Fatal(err)
	}

	s1, err := store.FindOrCreateSeason(ctx, q)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := store.FindOrCreateSeason(ctx, q)
	if err != nil {
		t.Fatal(err)
	}

	if s1.ID != s2.ID {
		t.Error("Expected one season per quarter")
	}
	if s1.Type != models.SeasonSummer || s1.TypeOrder != 3 || s1.YearValue != 2025 || s1.IsPrepared {
		t.Errorf("Unexpected season %+v", s1)
	}

	if err := store.SetSeasonPrepared(ctx, s1.ID, true); err != nil {
		t.Fatal(err)
	}
	prepared, err := store.ListPreparedSeasons(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(prepared) != 1 || prepared[0].ID != s1.ID || !prepared[0].IsPrepared {
		t.Errorf("Expected the prepared season listed, got %+v", prepared)
	}

	if err := store.SetSeasonPrepared(ctx, "missing", true); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestWeekLookups(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	w := testutil.CreateTestWeek(t, store, cal, cycle.Record{Year: 2025, Quarter: 1, Week: 4}, models.VoteOpen)

	byID, err := store.FindWeekByID(ctx, w.ID)
	if err != nil {
		t.Fatal(err)
	}
	if byID.Cycle() != w.Cycle() || !byID.StartAt.Equal(w.StartAt) || !byID.EndAt.Equal(w.EndAt) {
		t.Errorf("Round trip mismatch: got %+v, want %+v", byID, w)
	}
	if byID.OpenedAt == nil || byID.ClosedAt != nil {
		t.Errorf("Expected opened_at set and closed_at empty, got %v / %v", byID.OpenedAt, byID.ClosedAt)
	}

	byCycle, err := store.FindWeekByCycle(ctx, 2025, 1, 4)
	if err != nil || byCycle.ID != w.ID {
		t.Errorf("FindWeekByCycle = %v, %v", byCycle.ID, err)
	}

	open, err := store.FindOpenWeek(ctx)
	if err != nil || open.ID != w.ID {
		t.Errorf("FindOpenWeek = %v, %v", open.ID, err)
	}

	tests := []struct {
		name string
		find func() error
	}{
		{"by id", func() error { _, err := store.FindWeekByID(ctx, "missing"); return err }},
		{"by cycle", func() error { _, err := store.FindWeekByCycle(ctx, 2025, 1, 5); return err }},
		{"quarter", func() error { _, err := store.FindQuarter(ctx, 1999, 1); return err }},
		{"season", func() error { _, err := store.FindSeasonByQuarter(ctx, "missing"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.find(); !errors.Is(err, models.ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestInsertWeek_Duplicate(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	w := testutil.CreateTestWeek(t, store, cal, cycle.Record{Year: 2025, Quarter: 1, Week: 1}, models.VoteDraft)

	q, err := store.FindQuarterByID(ctx, w.QuarterID)
	if err != nil {
		t.Fatal(err)
	}
	dup := models.NewWeek(cal, q, 1, time.Now())
	if err := store.InsertWeek(ctx, &dup); !errors.Is(err, models.ErrRaceLost) {
		t.Errorf("Expected ErrRaceLost for duplicate week, got %v", err)
	}
}

func TestSingleOpenWeekIndex(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	testutil.CreateTestWeek(t, store, cal, cycle.Record{Year: 2025, Quarter: 1, Week: 1}, models.VoteOpen)
	draft := testutil.CreateTestWeek(t, store, cal, cycle.Record{Year: 2025, Quarter: 1, Week: 2}, models.VoteDraft)

	if err := draft.OpenVote(time.Now()); err != nil {
		t.Fatal(err)
	}
	err := store.SaveWeekStatus(ctx, draft, models.VoteDraft)
	if !errors.Is(err, models.ErrRaceLost) {
		t.Errorf("Expected ErrRaceLost when opening a second week, got %v", err)
	}

	n, err := store.CountOpenWeeks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Expected 1 open week, got %d", n)
	}
}

func TestSaveWeekStatus_CompareAndSwap(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	w := testutil.CreateTestWeek(t, store, cal, cycle.Record{Year: 2025, Quarter: 1, Week: 1}, models.VoteOpen)
	stale := w

	if err := w.CloseVote(time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveWeekStatus(ctx, w, models.VoteOpen); err != nil {
		t.Fatalf("First close failed: %v", err)
	}

	// A second writer still holding the open copy loses.
	if err := stale.CloseVote(time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveWeekStatus(ctx, stale, models.VoteOpen); !errors.Is(err, models.ErrRaceLost) {
		t.Errorf("Expected ErrRaceLost, got %v", err)
	}
}

func TestInTx_Rollback(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.InTx(ctx, func(tx *db.Store) error {
		if _, err := tx.FindOrCreateQuarter(ctx, 2026, 1, cal.Anchor(2026, 1)); err != nil {
			return err
		}
		// Nested calls join the outer transaction.
		return tx.InTx(ctx, func(inner *db.Store) error {
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}

	if _, err := store.FindQuarter(ctx, 2026, 1); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected quarter insert rolled back, got %v", err)
	}
}

func TestCandidates(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	w := testutil.CreateTestWeek(t, store, cal, cycle.Record{Year: 2025, Quarter: 1, Week: 1}, models.VoteOpen)
	b := testutil.AddTestAnime(t, store, cal, 2025, 1, "Beta", nil, nil)
	a := testutil.AddTestAnime(t, store, cal, 2025, 1, "Alpha", nil, nil)

	if err := store.InsertCandidates(ctx, w.ID, []string{b, a}, time.Now()); err != nil {
		t.Fatal(err)
	}

	candidates, err := store.ListCandidates(ctx, w.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 2 || candidates[0].Title != "Alpha" || candidates[1].Title != "Beta" {
		t.Errorf("Expected candidates ordered by title, got %+v", candidates)
	}

	if err := store.InsertCandidates(ctx, w.ID, []string{a}, time.Now()); !errors.Is(err, models.ErrRaceLost) {
		t.Errorf("Expected ErrRaceLost for duplicate candidate, got %v", err)
	}
}

func TestUpsertSubmission(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	w := testutil.CreateTestWeek(t, store, cal, cycle.Record{Year: 2025, Quarter: 1, Week: 1}, models.VoteOpen)
	c1 := testutil.AddTestCandidate(t, store, w.ID, testutil.AddTestAnime(t, store, cal, 2025, 1, "One", nil, nil))
	c2 := testutil.AddTestCandidate(t, store, w.ID, testutil.AddTestAnime(t, store, cal, 2025, 1, "Two", nil, nil))

	submit := func(ballots ...models.Ballot) (models.VoteSubmission, bool) {
		t.Helper()
		cookie := "cookie-1"
		sub := models.VoteSubmission{
			WeekID:       w.ID,
			PrincipalKey: "c:" + cookie,
			CookieID:     &cookie,
			SubmittedAt:  time.Now(),
			Ballots:      ballots,
		}
		var isUpdate bool
		err := store.InTx(ctx, func(tx *db.Store) error {
			var err error
			isUpdate, err = tx.UpsertSubmission(ctx, &sub)
			return err
		})
		if err != nil {
			t.Fatalf("UpsertSubmission failed: %v", err)
		}
		return sub, isUpdate
	}

	first, isUpdate := submit(models.Ballot{CandidateID: c1, BallotType: models.BallotNormal})
	if isUpdate {
		t.Error("First submission should not be an update")
	}

	second, isUpdate := submit(
		models.Ballot{CandidateID: c2, BallotType: models.BallotNormal},
		models.Ballot{CandidateID: c1, BallotType: models.BallotBonus},
	)
	if !isUpdate {
		t.Error("Second submission should be an update")
	}
	if second.ID != first.ID {
		t.Errorf("Expected submission ID kept, got %s then %s", first.ID, second.ID)
	}

	count, err := store.CountSubmissions(ctx, w.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 submission, got %d", count)
	}

	got, err := store.FindSubmission(ctx, w.ID, "c:cookie-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Ballots) != 2 {
		t.Fatalf("Expected ballots replaced with 2, got %+v", got.Ballots)
	}
	types := map[string]string{}
	for _, b := range got.Ballots {
		types[b.CandidateID] = b.BallotType
	}
	if types[c1] != models.BallotBonus || types[c2] != models.BallotNormal {
		t.Errorf("Unexpected ballots %+v", got.Ballots)
	}

	if _, err := store.FindSubmission(ctx, w.ID, "c:someone-else"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/weekly-pick/cycle"
)

func TestWeekTransitions(t *testing.T) {
	now := time.Date(2025, time.January, 6, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    VoteStatus
		apply   func(w *Week) error
		want    VoteStatus
		wantErr bool
	}{
		{"open draft", VoteDraft, func(w *Week) error { return w.OpenVote(now) }, VoteOpen, false},
		{"open open", VoteOpen, func(w *Week) error { return w.OpenVote(now) }, VoteOpen, true},
		{"open closed", VoteClosed, func(w *Week) error { return w.OpenVote(now) }, VoteClosed, true},
		{"close open", VoteOpen, func(w *Week) error { return w.CloseVote(now) }, VoteClosed, false},
		{"close draft", VoteDraft, func(w *Week) error { return w.CloseVote(now) }, VoteDraft, true},
		{"close closed", VoteClosed, func(w *Week) error { return w.CloseVote(now) }, VoteClosed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Week{VoteStatus: tt.from}
			err := tt.apply(&w)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("expected ErrInvalidTransition, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if w.VoteStatus != tt.want {
				t.Errorf("status = %s, want %s", w.VoteStatus, tt.want)
			}
		})
	}
}

func TestNewWeek(t *testing.T) {
	cal := cycle.NewCalendar(time.UTC)
	q := Quarter{ID: "q1", YearValue: 2025, QuarterValue: 1, AnchorAt: cal.Anchor(2025, 1)}
	now := time.Now()

	w := NewWeek(cal, q, 3, now)

	if w.VoteStatus != VoteDraft {
		t.Errorf("new week status = %s, want draft", w.VoteStatus)
	}
	wantStart := q.AnchorAt.Add(2 * cycle.WeekLength)
	if !w.StartAt.Equal(wantStart) || !w.EndAt.Equal(wantStart.Add(cycle.WeekLength)) {
		t.Errorf("window = [%v, %v), want start %v", w.StartAt, w.EndAt, wantStart)
	}
	if w.Cycle() != (cycle.Record{Year: 2025, Quarter: 1, Week: 3}) {
		t.Errorf("Cycle() = %v", w.Cycle())
	}
	if !w.Contains(wantStart) || w.Contains(w.EndAt) {
		t.Error("window should be left-inclusive and right-exclusive")
	}
}

func TestAcceptsVotes(t *testing.T) {
	start := time.Date(2025, time.January, 6, 18, 0, 0, 0, time.UTC)
	w := Week{StartAt: start, EndAt: start.Add(cycle.WeekLength), VoteStatus: VoteOpen}

	if w.AcceptsVotes(start.Add(-time.Second)) {
		t.Error("should not accept votes before the week starts")
	}
	if !w.AcceptsVotes(start) {
		t.Error("should accept votes at start")
	}
	if !w.AcceptsVotes(w.EndAt.Add(time.Minute)) {
		t.Error("open week should accept votes until it is closed")
	}

	w.VoteStatus = VoteClosed
	if w.AcceptsVotes(start.Add(time.Hour)) {
		t.Error("closed week should not accept votes")
	}
}

func TestAnimeAiringAt(t *testing.T) {
	from := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		anime Anime
		at    time.Time
		want  bool
	}{
		{"no window", Anime{}, from, true},
		{"before start", Anime{AiringFrom: &from}, from.Add(-time.Hour), false},
		{"at start", Anime{AiringFrom: &from}, from, true},
		{"at end", Anime{AiringFrom: &from, AiringUntil: &until}, until, false},
		{"inside", Anime{AiringFrom: &from, AiringUntil: &until}, from.Add(24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.anime.AiringAt(tt.at); got != tt.want {
				t.Errorf("AiringAt = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewSeason(t *testing.T) {
	for q, want := range map[int]SeasonType{1: SeasonWinter, 2: SeasonSpring, 3: SeasonSummer, 4: SeasonAutumn} {
		s := NewSeason(Quarter{ID: "x", YearValue: 2025, QuarterValue: q})
		if s.Type != want || s.TypeOrder != q || s.IsPrepared {
			t.Errorf("NewSeason(Q%d) = %+v", q, s)
		}
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"time"

	"github.com/danielhkuo/weekly-pick/cycle"
)

// VoteStatus is the lifecycle state of a week.
type VoteStatus string

const (
	VoteDraft  VoteStatus = "draft"
	VoteOpen   VoteStatus = "open"
	VoteClosed VoteStatus = "closed"
)

// SeasonType names the anime season of a quarter.
type SeasonType string

const (
	SeasonWinter SeasonType = "WINTER"
	SeasonSpring SeasonType = "SPRING"
	SeasonSummer SeasonType = "SUMMER"
	SeasonAutumn SeasonType = "AUTUMN"
)

// SeasonTypeForQuarter maps quarter 1..4 to its season.
func SeasonTypeForQuarter(quarter int) SeasonType {
	switch quarter {
	case 1:
		return SeasonWinter
	case 2:
		return SeasonSpring
	case 3:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

type Quarter struct {
	ID           string    `json:"id"`
	YearValue    int       `json:"year"`
	QuarterValue int       `json:"quarter"`
	AnchorAt     time.Time `json:"anchor_at"`
	CreatedAt    time.Time `json:"created_at"`
}

type Season struct {
	ID         string     `json:"id"`
	QuarterID  string     `json:"quarter_id"`
	YearValue  int        `json:"year"`
	Type       SeasonType `json:"type"`
	TypeOrder  int        `json:"type_order"`
	IsPrepared bool       `json:"is_prepared"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewSeason derives the season of a quarter. Seasons start unprepared.
func NewSeason(q Quarter) Season {
	return Season{
		QuarterID: q.ID,
		YearValue: q.YearValue,
		Type:      SeasonTypeForQuarter(q.QuarterValue),
		TypeOrder: q.QuarterValue,
	}
}

// Week is one voting window. YearValue and QuarterValue are read from the owning quarter.
type Week struct {
	ID           string     `json:"id"`
	QuarterID    string     `json:"quarter_id"`
	YearValue    int        `json:"year"`
	QuarterValue int        `json:"quarter"`
	WeekValue    int        `json:"week"`
	StartAt      time.Time  `json:"start_at"`
	EndAt        time.Time  `json:"end_at"`
	VoteStatus   VoteStatus `json:"vote_status"`
	OpenedAt     *time.Time `json:"opened_at,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewWeek builds a draft week of q whose window is derived from the quarter anchor.
func NewWeek(cal cycle.Calendar, q Quarter, weekValue int, now time.Time) Week {
	rec := cycle.Record{Year: q.YearValue, Quarter: q.QuarterValue, Week: weekValue}
	start, end := cal.WeekWindow(rec)
	return Week{
		QuarterID:    q.ID,
		YearValue:    q.YearValue,
		QuarterValue: q.QuarterValue,
		WeekValue:    weekValue,
		StartAt:      start,
		EndAt:        end,
		VoteStatus:   VoteDraft,
		CreatedAt:    now,
	}
}

func (w Week) Cycle() cycle.Record {
	return cycle.Record{Year: w.YearValue, Quarter: w.QuarterValue, Week: w.WeekValue}
}

// Contains reports whether t falls in [StartAt, EndAt).
func (w Week) Contains(t time.Time) bool {
	return !t.Before(w.StartAt) && t.Before(w.EndAt)
}

// AcceptsVotes reports whether a submission made at t may be recorded.
// An open week keeps accepting votes past EndAt until the rollover closes it.
func (w Week) AcceptsVotes(t time.Time) bool {
	return w.VoteStatus == VoteOpen && !t.Before(w.StartAt)
}

// OpenVote moves a draft week to open.
func (w *Week) OpenVote(at time.Time) error {
	if w.VoteStatus != VoteDraft {
		return fmt.Errorf("%w: open week %s in status %s", ErrInvalidTransition, w.Cycle(), w.VoteStatus)
	}
	w.VoteStatus = VoteOpen
	w.OpenedAt = &at
	return nil
}

// CloseVote moves an open week to closed.
func (w *Week) CloseVote(at time.Time) error {
	if w.VoteStatus != VoteOpen {
		return fmt.Errorf("%w: close week %s in status %s", ErrInvalidTransition, w.Cycle(), w.VoteStatus)
	}
	w.VoteStatus = VoteClosed
	w.ClosedAt = &at
	return nil
}

type Anime struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	AiringFrom  *time.Time `json:"airing_from,omitempty"`
	AiringUntil *time.Time `json:"airing_until,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AiringAt reports whether the title is on air at t.
func (a Anime) AiringAt(t time.Time) bool {
	if a.AiringFrom != nil && t.Before(*a.AiringFrom) {
		return false
	}
	if a.AiringUntil != nil && !t.Before(*a.AiringUntil) {
		return false
	}
	return true
}

// AnimeCandidate makes an anime eligible for votes in one week. Never mutated after creation.
type AnimeCandidate struct {
	ID        string    `json:"id"`
	WeekID    string    `json:"week_id"`
	AnimeID   string    `json:"anime_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

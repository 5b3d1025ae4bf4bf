// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cycle

import (
	"fmt"
	"time"
)

const (
	// AnchorHour is the local hour at which every quarter's first week opens.
	AnchorHour = 18

	// WeekLength is the span of one voting week.
	WeekLength = 7 * 24 * time.Hour
)

// Record identifies a voting week by business year, quarter and week number.
type Record struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
	Week    int `json:"week"`
}

func (r Record) String() string {
	return fmt.Sprintf("%d-Q%d-W%02d", r.Year, r.Quarter, r.Week)
}

// Compare orders records chronologically: -1 if r is earlier than o, 0 if equal, +1 if later.
func (r Record) Compare(o Record) int {
	switch {
	case r.Year != o.Year:
		return sign(r.Year - o.Year)
	case r.Quarter != o.Quarter:
		return sign(r.Quarter - o.Quarter)
	default:
		return sign(r.Week - o.Week)
	}
}

func (r Record) Before(o Record) bool { return r.Compare(o) < 0 }

// SameQuarter reports whether both records belong to the same business quarter.
func (r Record) SameQuarter(o Record) bool {
	return r.Year == o.Year && r.Quarter == o.Quarter
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// CalendarQuarter returns the calendar quarter (1-4) of a month.
func CalendarQuarter(m time.Month) int {
	return (int(m)-1)/3 + 1
}

// NextQuarter returns the quarter after (year, quarter), rolling Q4 into Q1 of the next year.
func NextQuarter(year, quarter int) (int, int) {
	if quarter == 4 {
		return year + 1, 1
	}
	return year, quarter + 1
}

// PrevQuarter returns the quarter before (year, quarter), rolling Q1 back into Q4 of the previous year.
func PrevQuarter(year, quarter int) (int, int) {
	if quarter == 1 {
		return year - 1, 4
	}
	return year, quarter - 1
}

// Calendar resolves instants against quarter anchors in a fixed location.
// The zero value uses UTC. Calendar is immutable and safe for concurrent use.
type Calendar struct {
	loc *time.Location
}

func NewCalendar(loc *time.Location) Calendar {
	return Calendar{loc: loc}
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Anchor returns Monday 18:00 on or before the first day of the quarter.
// quarter must be in 1..4.
func (c Calendar) Anchor(year, quarter int) time.Time {
	month := time.Month((quarter-1)*3 + 1)
	first := time.Date(year, month, 1, 0, 0, 0, 0, c.Location())

	// Days back to Monday; Sunday (0) is six days after the previous Monday.
	back := (int(first.Weekday()) + 6) % 7
	return time.Date(year, month, 1-back, AnchorHour, 0, 0, 0, c.Location())
}

type anchorInfo struct {
	year    int
	quarter int
	start   time.Time
}

// resolveAnchor finds the quarter whose [anchor, next anchor) interval contains t.
// The calendar quarter of t is only a first guess: a quarter's anchor can precede
// its first calendar day, and the last days of a calendar quarter can already
// belong to the next one.
func (c Calendar) resolveAnchor(t time.Time) anchorInfo {
	local := t.In(c.Location())
	y, q := local.Year(), CalendarQuarter(local.Month())

	curr := c.Anchor(y, q)
	ny, nq := NextQuarter(y, q)
	next := c.Anchor(ny, nq)

	switch {
	case t.Before(curr):
		py, pq := PrevQuarter(y, q)
		return anchorInfo{year: py, quarter: pq, start: c.Anchor(py, pq)}
	case t.Before(next):
		return anchorInfo{year: y, quarter: q, start: curr}
	default:
		return anchorInfo{year: ny, quarter: nq, start: next}
	}
}

// Resolve maps an instant to its business (year, quarter, week).
//
// The business year is the year of the quarter whose anchor was selected. For
// Q1 this differs from the anchor's own calendar year when the anchor falls in
// late December; using the quarter's year keeps Resolve(Anchor(y, q)) == (y, q, 1).
// Keying by the anchor's year instead would collide: Q1 2025 is anchored on
// 2024-12-30 and Q1 2024 on 2024-01-01, and both would become (2024, 1).
func (c Calendar) Resolve(t time.Time) Record {
	ai := c.resolveAnchor(t)
	return Record{
		Year:    ai.year,
		Quarter: ai.quarter,
		Week:    weekOfQuarter(t, ai.start),
	}
}

func weekOfQuarter(t, anchor time.Time) int {
	return int(t.Sub(anchor)/WeekLength) + 1
}

// WeekWindow returns the half-open interval [start, end) of a week.
// The last week of a quarter ends at the next quarter's anchor.
func (c Calendar) WeekWindow(r Record) (start, end time.Time) {
	anchor := c.Anchor(r.Year, r.Quarter)
	start = anchor.Add(time.Duration(r.Week-1) * WeekLength)
	end = start.Add(WeekLength)

	ny, nq := NextQuarter(r.Year, r.Quarter)
	if next := c.Anchor(ny, nq); end.After(next) {
		end = next
	}
	return start, end
}

// WeeksInQuarter returns how many weeks start inside the quarter's interval.
func (c Calendar) WeeksInQuarter(year, quarter int) int {
	ny, nq := NextQuarter(year, quarter)
	span := c.Anchor(ny, nq).Sub(c.Anchor(year, quarter))
	return int((span + WeekLength - 1) / WeekLength)
}

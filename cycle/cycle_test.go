// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cycle

import (
	"testing"
	"time"
)

var kst = time.FixedZone("KST", 9*60*60)

func at(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, kst)
}

func TestAnchor(t *testing.T) {
	cal := NewCalendar(kst)

	tests := []struct {
		year, quarter int
		want          time.Time
	}{
		{2024, 1, at(2024, time.January, 1, 18, 0, 0)},    // Jan 1 is a Monday
		{2024, 2, at(2024, time.April, 1, 18, 0, 0)},      // Apr 1 is a Monday
		{2024, 4, at(2024, time.September, 30, 18, 0, 0)}, // Oct 1 is a Tuesday
		{2025, 1, at(2024, time.December, 30, 18, 0, 0)},  // Jan 1 is a Wednesday
		{2025, 2, at(2025, time.March, 31, 18, 0, 0)},
		{2025, 3, at(2025, time.June, 30, 18, 0, 0)},
		{2025, 4, at(2025, time.September, 29, 18, 0, 0)},
		{2023, 1, at(2022, time.December, 26, 18, 0, 0)}, // Jan 1 is a Sunday
		{2018, 2, at(2018, time.March, 26, 18, 0, 0)},
	}

	for _, tt := range tests {
		got := cal.Anchor(tt.year, tt.quarter)
		if !got.Equal(tt.want) {
			t.Errorf("Anchor(%d, %d) = %v, want %v", tt.year, tt.quarter, got, tt.want)
		}
	}
}

func TestAnchor_AlwaysMondayEvening(t *testing.T) {
	cal := NewCalendar(kst)

	for year := 1999; year <= 2101; year++ {
		for q := 1; q <= 4; q++ {
			a := cal.Anchor(year, q).In(kst)
			if a.Weekday() != time.Monday {
				t.Fatalf("Anchor(%d, %d) = %v is a %v", year, q, a, a.Weekday())
			}
			if a.Hour() != AnchorHour || a.Minute() != 0 || a.Second() != 0 || a.Nanosecond() != 0 {
				t.Fatalf("Anchor(%d, %d) = %v is not 18:00:00", year, q, a)
			}
			first := time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, kst)
			if a.After(first.Add(AnchorHour*time.Hour)) || first.Sub(a) >= WeekLength {
				t.Fatalf("Anchor(%d, %d) = %v is not in the week of %v", year, q, a, first)
			}
		}
	}
}

func TestResolve(t *testing.T) {
	cal := NewCalendar(kst)

	tests := []struct {
		name string
		at   time.Time
		want Record
	}{
		{"Q1 2025 anchor", at(2024, time.December, 30, 18, 0, 0), Record{2025, 1, 1}},
		{"one second before Q1 2025 anchor", at(2024, time.December, 30, 17, 59, 59), Record{2024, 4, 13}},
		{"new year's day belongs to Q1 week 1", at(2025, time.January, 1, 0, 0, 0), Record{2025, 1, 1}},
		{"second week boundary", at(2025, time.January, 6, 18, 0, 0), Record{2025, 1, 2}},
		{"just before second week", at(2025, time.January, 6, 17, 59, 59), Record{2025, 1, 1}},
		{"calendar Q2 day still in Q1", at(2024, time.April, 1, 17, 59, 59), Record{2024, 1, 13}},
		{"end of March already in Q2", at(2025, time.March, 31, 18, 0, 0), Record{2025, 2, 1}},
		{"mid quarter", at(2025, time.May, 15, 12, 0, 0), Record{2025, 2, 7}},
		{"Q4 anchor in September", at(2025, time.September, 29, 18, 0, 0), Record{2025, 4, 1}},
		{"late September before Q4 anchor", at(2025, time.September, 29, 9, 0, 0), Record{2025, 3, 13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.Resolve(tt.at); got != tt.want {
				t.Errorf("Resolve(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestResolve_IgnoresInputLocation(t *testing.T) {
	cal := NewCalendar(kst)
	instant := at(2024, time.December, 30, 18, 0, 0)

	if got := cal.Resolve(instant.UTC()); got != (Record{2025, 1, 1}) {
		t.Errorf("Resolve(UTC instant) = %v, want 2025-Q1-W01", got)
	}
}

func TestResolve_AnchorBoundaries(t *testing.T) {
	cal := NewCalendar(kst)

	for year := 2015; year <= 2035; year++ {
		for q := 1; q <= 4; q++ {
			anchor := cal.Anchor(year, q)

			if got := cal.Resolve(anchor); got != (Record{year, q, 1}) {
				t.Errorf("Resolve(Anchor(%d, %d)) = %v, want week 1", year, q, got)
			}

			py, pq := PrevQuarter(year, q)
			wantPrev := Record{py, pq, cal.WeeksInQuarter(py, pq)}
			if got := cal.Resolve(anchor.Add(-time.Second)); got != wantPrev {
				t.Errorf("Resolve(Anchor(%d, %d) - 1s) = %v, want %v", year, q, got, wantPrev)
			}
		}
	}
}

func TestResolve_DecemberAnchorKeepsQuarterYear(t *testing.T) {
	cal := NewCalendar(kst)

	q1of2024 := cal.Resolve(cal.Anchor(2024, 1))
	q1of2025 := cal.Resolve(cal.Anchor(2025, 1))

	if cal.Anchor(2025, 1).Year() != 2024 {
		t.Fatalf("Expected the 2025 Q1 anchor in December 2024, got %v", cal.Anchor(2025, 1))
	}
	if q1of2024 == q1of2025 {
		t.Errorf("Q1 2024 and Q1 2025 resolved to the same record %v", q1of2024)
	}
	if q1of2025 != (Record{2025, 1, 1}) {
		t.Errorf("Expected 2025-Q1-W01, got %v", q1of2025)
	}
	if got := cal.Resolve(at(2024, time.December, 31, 9, 0, 0)); got != (Record{2025, 1, 1}) {
		t.Errorf("Expected Dec 31 2024 in 2025-Q1-W01, got %v", got)
	}
}

func TestResolve_WeekArithmetic(t *testing.T) {
	cal := NewCalendar(kst)
	anchor := cal.Anchor(2025, 3)

	tests := []struct {
		offset time.Duration
		week   int
	}{
		{0, 1},
		{167 * time.Hour, 1},
		{168*time.Hour - time.Nanosecond, 1},
		{168 * time.Hour, 2},
		{335 * time.Hour, 2},
		{336 * time.Hour, 3},
		{12 * WeekLength, 13},
	}

	for _, tt := range tests {
		got := cal.Resolve(anchor.Add(tt.offset))
		if got.Year != 2025 || got.Quarter != 3 || got.Week != tt.week {
			t.Errorf("Resolve(anchor + %v) = %v, want week %d", tt.offset, got, tt.week)
		}
	}
}

func TestWeeksInQuarter(t *testing.T) {
	cal := NewCalendar(kst)

	tests := []struct {
		year, quarter, want int
	}{
		{2024, 4, 13},
		{2025, 1, 13},
		{2017, 4, 14}, // Sep 25 2017 -> Jan 1 2018
		{2018, 1, 12}, // Jan 1 2018 -> Mar 26 2018
	}

	for _, tt := range tests {
		if got := cal.WeeksInQuarter(tt.year, tt.quarter); got != tt.want {
			t.Errorf("WeeksInQuarter(%d, %d) = %d, want %d", tt.year, tt.quarter, got, tt.want)
		}
	}
}

// TestResolve_TotalAndContiguous samples densely across several years and checks
// that every instant lands in exactly one window and windows advance one step at a time.
func TestResolve_TotalAndContiguous(t *testing.T) {
	for _, loc := range []*time.Location{kst, time.UTC} {
		t.Run(loc.String(), func(t *testing.T) {
			cal := NewCalendar(loc)
			start := time.Date(2016, time.September, 1, 0, 0, 0, 0, loc)
			end := time.Date(2026, time.June, 1, 0, 0, 0, 0, loc)

			prev := cal.Resolve(start)
			for ts := start; ts.Before(end); ts = ts.Add(30 * time.Minute) {
				rec := cal.Resolve(ts)

				ws, we := cal.WeekWindow(rec)
				if ts.Before(ws) || !ts.Before(we) {
					t.Fatalf("%v resolved to %v whose window [%v, %v) does not contain it", ts, rec, ws, we)
				}

				switch {
				case rec == prev:
				case rec.SameQuarter(prev) && rec.Week == prev.Week+1:
				case rec.Week == 1 && prev.Week == cal.WeeksInQuarter(prev.Year, prev.Quarter):
					ny, nq := NextQuarter(prev.Year, prev.Quarter)
					if rec.Year != ny || rec.Quarter != nq {
						t.Fatalf("%v: quarter jumped from %v to %v", ts, prev, rec)
					}
				default:
					t.Fatalf("%v: non-contiguous step from %v to %v", ts, prev, rec)
				}
				prev = rec
			}
		})
	}
}

func TestWeekWindow(t *testing.T) {
	cal := NewCalendar(kst)

	start, end := cal.WeekWindow(Record{2025, 1, 2})
	if !start.Equal(at(2025, time.January, 6, 18, 0, 0)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(at(2025, time.January, 13, 18, 0, 0)) {
		t.Errorf("end = %v", end)
	}

	_, last := cal.WeekWindow(Record{2025, 1, 13})
	if !last.Equal(cal.Anchor(2025, 2)) {
		t.Errorf("last week of Q1 ends %v, want next anchor %v", last, cal.Anchor(2025, 2))
	}
}

func TestRecordCompare(t *testing.T) {
	a := Record{2024, 4, 13}
	b := Record{2025, 1, 1}
	c := Record{2025, 1, 2}

	if !a.Before(b) || !b.Before(c) || c.Before(a) {
		t.Error("records not ordered chronologically")
	}
	if a.Compare(a) != 0 {
		t.Error("record should equal itself")
	}
	if b.String() != "2025-Q1-W01" {
		t.Errorf("String() = %q", b.String())
	}
}

func TestZeroCalendarUsesUTC(t *testing.T) {
	var cal Calendar
	a := cal.Anchor(2024, 1)
	if a.Location() != time.UTC || a.Hour() != AnchorHour {
		t.Errorf("zero Calendar anchor = %v, want 18:00 UTC", a)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cycle maps wall-clock instants onto the voting calendar.

# Anchors

Every quarter starts at its anchor: Monday 18:00 of the week that contains
the quarter's first calendar day (Jan 1, Apr 1, Jul 1, Oct 1). When the first
day is itself a Monday, the anchor is that day.

	cal := cycle.NewCalendar(loc)
	start := cal.Anchor(2025, 1) // 2024-12-30 18:00 in loc

A Q1 anchor can fall in the last days of December. Anchors for Q2-Q4 always
fall in the same calendar year.

# Resolution

Resolve finds the quarter whose interval [Anchor(y,q), Anchor(next)) holds the
instant and counts 168-hour weeks from that anchor:

	rec := cal.Resolve(time.Now())
	fmt.Println(rec) // 2025-Q1-W03

Intervals are left-inclusive: an anchor instant is week 1 of its own quarter,
and an instant exactly 168h past the anchor is week 2.

# Time Policy

Week arithmetic uses absolute durations, so results do not depend on wall
clock jumps. Only the anchor is a wall-clock time in the calendar's location.
Use a zone without daylight saving time (the service defaults to Asia/Seoul).
*/
package cycle

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

var (
	// ErrNotFound reports a week, quarter, season or submission lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition reports a vote status change the state machine forbids,
	// including a rollover of a week that was already closed.
	ErrInvalidTransition = errors.New("invalid vote status transition")

	// ErrRaceLost reports a concurrent writer that won a uniqueness or status race.
	// The caller may retry.
	ErrRaceLost = errors.New("lost race to concurrent writer")

	// ErrRolloverNotDue reports a rollover attempt before the open week has ended.
	ErrRolloverNotDue = errors.New("rollover not due")
)

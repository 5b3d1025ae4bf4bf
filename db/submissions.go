// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/weekly-pick/auth"
	"github.com/danielhkuo/weekly-pick/models"
)

// UpsertSubmission records sub as the principal's only submission for its week.
// An existing submission keeps its ID and has its ballots replaced.
// Must run inside InTx so the ballot swap is atomic.
func (s *Store) UpsertSubmission(ctx context.Context, sub *models.VoteSubmission) (isUpdate bool, err error) {
	var existingID string
	err = s.q.QueryRowContext(ctx, `
		SELECT id FROM vote_submission WHERE week_id = $1 AND principal_key = $2
	`, sub.WeekID, sub.PrincipalKey).Scan(&existingID)

	switch {
	case err == nil:
		isUpdate = true
		sub.ID = existingID
		_, err = s.q.ExecContext(ctx, `
			UPDATE vote_submission
			SET submitted_at = $1, ip_hash = $2, user_agent = $3
			WHERE id = $4
		`, utc(sub.SubmittedAt), sub.IPHash, sub.UserAgent, sub.ID)
		if err != nil {
			return false, fmt.Errorf("failed to update submission: %w", err)
		}

		_, err = s.q.ExecContext(ctx, `DELETE FROM ballot WHERE submission_id = $1`, sub.ID)
		if err != nil {
			return false, fmt.Errorf("failed to delete old ballots: %w", err)
		}

	case errors.Is(err, sql.ErrNoRows):
		sub.ID, err = auth.GenerateID(16)
		if err != nil {
			return false, err
		}
		_, err = s.q.ExecContext(ctx, `
			INSERT INTO vote_submission (id, week_id, principal_key, member_id, cookie_id, ip_hash, user_agent, submitted_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, sub.ID, sub.WeekID, sub.PrincipalKey, sub.MemberID, sub.CookieID, sub.IPHash, sub.UserAgent, utc(sub.SubmittedAt))
		if err != nil {
			return false, mapWriteErr(err, "insert submission")
		}

	default:
		return false, fmt.Errorf("failed to query submission: %w", err)
	}

	for i := range sub.Ballots {
		b := &sub.Ballots[i]
		b.SubmissionID = sub.ID
		_, err = s.q.ExecContext(ctx, `
			INSERT INTO ballot (submission_id, candidate_id, ballot_type)
			VALUES ($1, $2, $3)
		`, b.SubmissionID, b.CandidateID, b.BallotType)
		if err != nil {
			return false, mapWriteErr(err, "insert ballot")
		}
	}

	return isUpdate, nil
}

// FindSubmission returns the principal's submission for a week with its ballots.
func (s *Store) FindSubmission(ctx context.Context, weekID, principalKey string) (models.VoteSubmission, error) {
	var sub models.VoteSubmission
	var memberID sql.NullInt64
	err := s.q.QueryRowContext(ctx, `
		SELECT id, week_id, principal_key, member_id, submitted_at
		FROM vote_submission
		WHERE week_id = $1 AND principal_key = $2
	`, weekID, principalKey).Scan(&sub.ID, &sub.WeekID, &sub.PrincipalKey, &memberID, &sub.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return sub, fmt.Errorf("submission for week %s: %w", weekID, models.ErrNotFound)
	}
	if err != nil {
		return sub, fmt.Errorf("failed to query submission: %w", err)
	}
	if memberID.Valid {
		sub.MemberID = &memberID.Int64
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT submission_id, candidate_id, ballot_type
		FROM ballot
		WHERE submission_id = $1
		ORDER BY candidate_id
	`, sub.ID)
	if err != nil {
		return sub, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()

	sub.Ballots = []models.Ballot{}
	for rows.Next() {
		var b models.Ballot
		if err := rows.Scan(&b.SubmissionID, &b.CandidateID, &b.BallotType); err != nil {
			return sub, fmt.Errorf("failed to scan ballot: %w", err)
		}
		sub.Ballots = append(sub.Ballots, b)
	}
	return sub, rows.Err()
}

func (s *Store) CountSubmissions(ctx context.Context, weekID string) (int, error) {
	var n int
	err := s.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM vote_submission WHERE week_id = $1
	`, weekID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return n, nil
}

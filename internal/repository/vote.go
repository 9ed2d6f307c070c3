// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"fmt"

	"codeberg.org/oliverandrich/scentbook/internal/models"
)

// CastVote stores a vote. When replace is set, earlier votes of the same
// kind by the same user on the same fragrance are removed first. Casting the
// same value twice is a no-op.
func (r *Repository) CastVote(ctx context.Context, vote *models.Vote, replace bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM fragrance_votes WHERE user_id = ? AND fragrance_id = ? AND kind = ? AND value != ?",
			vote.UserID, vote.FragranceID, vote.Kind, vote.Value); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO fragrance_votes (user_id, fragrance_id, kind, value) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, fragrance_id, kind, value) DO NOTHING`,
		vote.UserID, vote.FragranceID, vote.Kind, vote.Value); err != nil {
		return wrapError(err)
	}

	if err := tx.GetContext(ctx, &vote.ID,
		"SELECT id FROM fragrance_votes WHERE user_id = ? AND fragrance_id = ? AND kind = ? AND value = ?",
		vote.UserID, vote.FragranceID, vote.Kind, vote.Value); err != nil {
		return wrapError(err)
	}
	return tx.Commit()
}

// RetractVotes removes all votes of a kind by a user on a fragrance.
func (r *Repository) RetractVotes(ctx context.Context, userID, fragranceID int64, kind models.VoteKind) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM fragrance_votes WHERE user_id = ? AND fragrance_id = ? AND kind = ?",
		userID, fragranceID, kind)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// VoteTallies counts votes per kind and value for a fragrance.
func (r *Repository) VoteTallies(ctx context.Context, fragranceID int64) ([]models.VoteTally, error) {
	out := []models.VoteTally{}
	if err := r.db.SelectContext(ctx, &out,
		`SELECT kind, value, count(*) AS count FROM fragrance_votes
		 WHERE fragrance_id = ? GROUP BY kind, value ORDER BY kind, count DESC, value`, fragranceID); err != nil {
		return nil, err
	}
	return out, nil
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/scentbook/internal/models"
)

// AddSimilar records that s.SimilarID resembles s.FragranceID.
func (r *Repository) AddSimilar(ctx context.Context, s *models.SimilarFragrance) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO similar_fragrances (user_id, fragrance_id, similar_id) VALUES (?, ?, ?)",
		s.UserID, s.FragranceID, s.SimilarID)
	if err != nil {
		return wrapError(err)
	}
	if s.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	return r.db.GetContext(ctx, &s.SimilarName, "SELECT name FROM fragrances WHERE id = ?", s.SimilarID)
}

// ListSimilar returns the fragrances recorded as similar to fragranceID.
func (r *Repository) ListSimilar(ctx context.Context, fragranceID int64) ([]models.SimilarFragrance, error) {
	out := []models.SimilarFragrance{}
	if err := r.db.SelectContext(ctx, &out,
		`SELECT s.id, s.user_id, s.fragrance_id, s.similar_id, f.name AS similar_name
		 FROM similar_fragrances s JOIN fragrances f ON f.id = s.similar_id
		 WHERE s.fragrance_id = ? ORDER BY f.name`, fragranceID); err != nil {
		return nil, err
	}
	return out, nil
}

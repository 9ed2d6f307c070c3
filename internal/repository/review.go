// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/scentbook/internal/models"
)

const reviewSelect = `SELECT r.id, r.user_id, r.fragrance_id, r.content, r.rating, r.created_at, u.username
	FROM reviews r JOIN users u ON u.id = r.user_id`

// CreateReview inserts a review and reloads it with the author's name.
func (r *Repository) CreateReview(ctx context.Context, review *models.Review) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (user_id, fragrance_id, content, rating) VALUES (?, ?, ?, ?)",
		review.UserID, review.FragranceID, review.Content, review.Rating,
	)
	if err != nil {
		return wrapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	var created models.Review
	if err := r.db.GetContext(ctx, &created, reviewSelect+" WHERE r.id = ?", id); err != nil {
		return wrapError(err)
	}
	*review = created
	return nil
}

// ListReviews returns the reviews of a fragrance, newest first.
func (r *Repository) ListReviews(ctx context.Context, fragranceID int64) ([]models.Review, error) {
	out := []models.Review{}
	if err := r.db.SelectContext(ctx, &out,
		reviewSelect+" WHERE r.fragrance_id = ? ORDER BY r.created_at DESC, r.id DESC", fragranceID); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReview removes a review written by userID.
func (r *Repository) DeleteReview(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// RatingSummary averages the ratings of a fragrance. Average is zero when
// there are no reviews.
func (r *Repository) RatingSummary(ctx context.Context, fragranceID int64) (models.RatingSummary, error) {
	var s models.RatingSummary
	err := r.db.GetContext(ctx, &s,
		"SELECT coalesce(avg(rating), 0) AS average, count(*) AS count FROM reviews WHERE fragrance_id = ?", fragranceID)
	return s, err
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/scentbook/internal/models"
)

const wishlistSelect = `SELECT w.id, w.user_id, w.fragrance_id, f.name AS fragrance_name, w.status, w.updated_at
	FROM wishlist w JOIN fragrances f ON f.id = w.fragrance_id`

// SetWishlistStatus creates or updates the entry for a user and fragrance.
func (r *Repository) SetWishlistStatus(ctx context.Context, userID, fragranceID int64, status models.WishlistStatus) (*models.WishlistEntry, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO wishlist (user_id, fragrance_id, status) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, fragrance_id)
		 DO UPDATE SET status = excluded.status, updated_at = CURRENT_TIMESTAMP`,
		userID, fragranceID, status,
	)
	if err != nil {
		return nil, wrapError(err)
	}

	var entry models.WishlistEntry
	if err := r.db.GetContext(ctx, &entry,
		wishlistSelect+" WHERE w.user_id = ? AND w.fragrance_id = ?", userID, fragranceID); err != nil {
		return nil, wrapError(err)
	}
	return &entry, nil
}

// RemoveFromWishlist deletes the entry for a user and fragrance.
func (r *Repository) RemoveFromWishlist(ctx context.Context, userID, fragranceID int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM wishlist WHERE user_id = ? AND fragrance_id = ?", userID, fragranceID)
	if err != nil {
		return err
	}
	return expectRow(res)
}

// ListWishlist returns a user's entries ordered by fragrance name. An empty
// status returns every entry.
func (r *Repository) ListWishlist(ctx context.Context, userID int64, status models.WishlistStatus) ([]models.WishlistEntry, error) {
	out := []models.WishlistEntry{}
	query := wishlistSelect + " WHERE w.user_id = ?"
	args := []any{userID}
	if status != "" {
		query += " AND w.status = ?"
		args = append(args, status)
	}
	if err := r.db.SelectContext(ctx, &out, query+" ORDER BY f.name", args...); err != nil {
		return nil, err
	}
	return out, nil
}

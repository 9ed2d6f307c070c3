// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package fragrance

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/oliverandrich/scentbook/internal/models"
)

var ErrInvalidStatus = errors.New("status must be one of: owned, wanted, used")

// SetWishlist puts a fragrance on the user's list. An empty status means
// wanted.
func (s *Service) SetWishlist(ctx context.Context, userID, fragranceID int64, status string) (*models.WishlistEntry, error) {
	st := models.WishlistStatus(status)
	if st == "" {
		st = models.WishlistWanted
	}
	if !st.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.requireFragrance(ctx, fragranceID); err != nil {
		return nil, err
	}

	entry, err := s.repo.SetWishlistStatus(ctx, userID, fragranceID, st)
	if err != nil {
		return nil, fmt.Errorf("failed to update wishlist: %w", err)
	}
	return entry, nil
}

// RemoveFromWishlist drops a fragrance from the user's list.
func (s *Service) RemoveFromWishlist(ctx context.Context, userID, fragranceID int64) error {
	if err := s.repo.RemoveFromWishlist(ctx, userID, fragranceID); err != nil {
		return notFound(err, "remove wishlist entry")
	}
	return nil
}

// Wishlist lists the user's entries, optionally filtered by status.
func (s *Service) Wishlist(ctx context.Context, userID int64, status string) ([]models.WishlistEntry, error) {
	st := models.WishlistStatus(status)
	if st != "" && !st.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListWishlist(ctx, userID, st)
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package fragrance

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/oliverandrich/scentbook/internal/models"
	"codeberg.org/oliverandrich/scentbook/internal/repository"
)

var ErrSelfSimilar = errors.New("a fragrance cannot be similar to itself")

// AddSimilar records that similarID resembles fragranceID. The pair is
// directed and recorded once regardless of who suggests it.
func (s *Service) AddSimilar(ctx context.Context, userID, fragranceID, similarID int64) (*models.SimilarFragrance, error) {
	if fragranceID == similarID {
		return nil, ErrSelfSimilar
	}
	for _, id := range []int64{fragranceID, similarID} {
		if err := s.requireFragrance(ctx, id); err != nil {
			return nil, err
		}
	}

	sf := &models.SimilarFragrance{UserID: userID, FragranceID: fragranceID, SimilarID: similarID}
	if err := s.repo.AddSimilar(ctx, sf); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to add similar fragrance: %w", err)
	}
	return sf, nil
}

// Similar lists the fragrances recorded as similar to fragranceID.
func (s *Service) Similar(ctx context.Context, fragranceID int64) ([]models.SimilarFragrance, error) {
	if err := s.requireFragrance(ctx, fragranceID); err != nil {
		return nil, err
	}
	return s.repo.ListSimilar(ctx, fragranceID)
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package fragrance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"codeberg.org/oliverandrich/scentbook/internal/models"
)

const (
	MinRating       = 1.0
	MaxRating       = 10.0
	MaxReviewLength = 2000
)

var (
	ErrRatingRange   = fmt.Errorf("rating must be between %g and %g", MinRating, MaxRating)
	ErrRatingStep    = errors.New("rating must be a multiple of 0.5")
	ErrEmptyReview   = errors.New("review content cannot be empty")
	ErrReviewTooLong = fmt.Errorf("review content must not exceed %d characters", MaxReviewLength)
)

// ValidateRating checks that r lies in [1, 10] in steps of 0.5.
func ValidateRating(r float64) error {
	if !(r >= MinRating && r <= MaxRating) {
		return ErrRatingRange
	}
	if math.Mod(r*2, 1) != 0 {
		return ErrRatingStep
	}
	return nil
}

// NormalizeReview trims content and enforces the length rules.
func NormalizeReview(content string) (string, error) {
	if utf8.RuneCountInString(content) > MaxReviewLength {
		return "", ErrReviewTooLong
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyReview
	}
	return content, nil
}

// AddReview stores a review by userID. A user may review a fragrance more
// than once.
func (s *Service) AddReview(ctx context.Context, userID, fragranceID int64, content string, rating float64) (*models.Review, error) {
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}
	content, err := NormalizeReview(content)
	if err != nil {
		return nil, err
	}
	if err := s.requireFragrance(ctx, fragranceID); err != nil {
		return nil, err
	}

	review := &models.Review{UserID: userID, FragranceID: fragranceID, Content: content, Rating: rating}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	slog.Info("review_created", "review_id", review.ID, "fragrance_id", fragranceID, "user_id", userID)
	return review, nil
}

// Reviews returns the reviews of a fragrance with their rating summary.
func (s *Service) Reviews(ctx context.Context, fragranceID int64) ([]models.Review, models.RatingSummary, error) {
	if err := s.requireFragrance(ctx, fragranceID); err != nil {
		return nil, models.RatingSummary{}, err
	}
	reviews, err := s.repo.ListReviews(ctx, fragranceID)
	if err != nil {
		return nil, models.RatingSummary{}, fmt.Errorf("failed to list reviews: %w", err)
	}
	summary, err := s.repo.RatingSummary(ctx, fragranceID)
	if err != nil {
		return nil, models.RatingSummary{}, fmt.Errorf("failed to summarize ratings: %w", err)
	}
	return reviews, summary, nil
}

// DeleteReview removes one of the user's own reviews.
func (s *Service) DeleteReview(ctx context.Context, userID, reviewID int64) error {
	if err := s.repo.DeleteReview(ctx, reviewID, userID); err != nil {
		return notFound(err, "delete review")
	}
	slog.Info("review_deleted", "review_id", reviewID, "user_id", userID)
	return nil
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package fragrance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/oliverandrich/scentbook/internal/models"
)

var (
	ErrInvalidVoteKind  = errors.New("unknown vote kind")
	ErrInvalidVoteValue = errors.New("value not allowed for this vote")
)

// Vote records the user's opinion on one property of a fragrance. Seasons
// accumulate; every other kind keeps only the latest value.
func (s *Service) Vote(ctx context.Context, userID, fragranceID int64, kind, value string) (*models.Vote, error) {
	k := models.VoteKind(kind)
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVoteKind, kind)
	}
	if !k.Accepts(value) {
		return nil, fmt.Errorf("%w: must be one of: %s", ErrInvalidVoteValue, strings.Join(k.Values(), ", "))
	}
	if err := s.requireFragrance(ctx, fragranceID); err != nil {
		return nil, err
	}

	vote := &models.Vote{UserID: userID, FragranceID: fragranceID, Kind: k, Value: value}
	if err := s.repo.CastVote(ctx, vote, !k.Multiple()); err != nil {
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}
	return vote, nil
}

// RetractVote removes the user's votes of one kind.
func (s *Service) RetractVote(ctx context.Context, userID, fragranceID int64, kind string) error {
	k := models.VoteKind(kind)
	if !k.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVoteKind, kind)
	}
	if err := s.repo.RetractVotes(ctx, userID, fragranceID, k); err != nil {
		return notFound(err, "retract vote")
	}
	return nil
}

// Votes tallies all votes on a fragrance.
func (s *Service) Votes(ctx context.Context, fragranceID int64) ([]models.VoteTally, error) {
	if err := s.requireFragrance(ctx, fragranceID); err != nil {
		return nil, err
	}
	return s.repo.VoteTallies(ctx, fragranceID)
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "slices"

// VoteKind is a property of a fragrance users can vote on.
type VoteKind string

const (
	VoteGender     VoteKind = "gender"
	VoteSeason     VoteKind = "season"
	VoteSillage    VoteKind = "sillage"
	VoteLongevity  VoteKind = "longevity"
	VotePriceValue VoteKind = "price_value"
)

var voteValues = map[VoteKind][]string{
	VoteGender:     {"male", "mostly male", "female", "mostly female", "unisex"},
	VoteSeason:     {"winter", "spring", "summer", "fall"},
	VoteSillage:    {"intimate", "moderate", "strong", "enormous"},
	VoteLongevity:  {"very weak", "weak", "moderate", "long lasting", "eternal"},
	VotePriceValue: {"way overpriced", "overpriced", "ok", "good value", "great value"},
}

// Valid reports whether k is a known kind.
func (k VoteKind) Valid() bool {
	_, ok := voteValues[k]
	return ok
}

// Values lists the accepted values of k in display order.
func (k VoteKind) Values() []string {
	return slices.Clone(voteValues[k])
}

// Accepts reports whether value is allowed for k.
func (k VoteKind) Accepts(value string) bool {
	return slices.Contains(voteValues[k], value)
}

// Multiple reports whether a user may cast several values of k for the same
// fragrance. Only seasons are multi-valued.
func (k VoteKind) Multiple() bool {
	return k == VoteSeason
}

// Vote is one user's value for one kind on one fragrance.
type Vote struct { //nolint:govet // fieldalignment not critical for models
	ID          int64    `db:"id" json:"id"`
	UserID      int64    `db:"user_id" json:"user_id"`
	FragranceID int64    `db:"fragrance_id" json:"fragrance_id"`
	Kind        VoteKind `db:"kind" json:"kind"`
	Value       string   `db:"value" json:"value"`
}

// VoteTally counts the votes for one value.
type VoteTally struct { //nolint:govet // fieldalignment not critical for models
	Kind  VoteKind `db:"kind" json:"kind"`
	Value string   `db:"value" json:"value"`
	Count int64    `db:"count" json:"count"`
}

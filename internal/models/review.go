// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Review is a user's rating and write-up of a fragrance.
type Review struct { //nolint:govet // fieldalignment not critical for models
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	FragranceID int64     `db:"fragrance_id" json:"fragrance_id"`
	Content     string    `db:"content" json:"content"`
	Rating      float64   `db:"rating" json:"rating"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	Username    string    `db:"username" json:"username"`
}

// RatingSummary aggregates the reviews of one fragrance.
type RatingSummary struct {
	Average float64 `db:"average" json:"average"`
	Count   int64   `db:"count" json:"count"`
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// WishlistStatus is where a fragrance stands in a user's collection.
type WishlistStatus string

const (
	WishlistOwned  WishlistStatus = "owned"
	WishlistWanted WishlistStatus = "wanted"
	WishlistUsed   WishlistStatus = "used"
)

// Valid reports whether s is a known status.
func (s WishlistStatus) Valid() bool {
	switch s {
	case WishlistOwned, WishlistWanted, WishlistUsed:
		return true
	}
	return false
}

// WishlistEntry links a user to a fragrance with a status.
type WishlistEntry struct { //nolint:govet // fieldalignment not critical for models
	ID            int64          `db:"id" json:"id"`
	UserID        int64          `db:"user_id" json:"user_id"`
	FragranceID   int64          `db:"fragrance_id" json:"fragrance_id"`
	FragranceName string         `db:"fragrance_name" json:"fragrance_name"`
	Status        WishlistStatus `db:"status" json:"status"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

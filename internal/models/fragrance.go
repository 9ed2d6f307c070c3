// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// FragranceType is the concentration of a fragrance.
type FragranceType string

const (
	FragranceTypeEDP    FragranceType = "Eau de Parfum"
	FragranceTypeElixir FragranceType = "Elixir"
	FragranceTypeParfum FragranceType = "Parfum"
	FragranceTypeEDT    FragranceType = "Eau de Toilette"
)

// FragranceTypes lists all known concentrations.
func FragranceTypes() []FragranceType {
	return []FragranceType{FragranceTypeEDP, FragranceTypeElixir, FragranceTypeParfum, FragranceTypeEDT}
}

// Valid reports whether t is a known concentration.
func (t FragranceType) Valid() bool {
	for _, known := range FragranceTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Company is a fragrance house.
type Company struct { //nolint:govet // fieldalignment not critical for models
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}

// Fragrance is a catalogue entry. Optional columns use sql.Null types and are
// flattened into pointers for JSON by the handlers.
type Fragrance struct { //nolint:govet // fieldalignment not critical for models
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	Description   sql.NullString `db:"description"`
	CompanyID     sql.NullInt64  `db:"company_id"`
	Price         sql.NullInt64  `db:"price"`
	FragranceType sql.NullString `db:"fragrance_type"`
	ML            sql.NullInt64  `db:"ml"`
	Picture       sql.NullString `db:"picture"`
	CreatedAt     time.Time      `db:"created_at"`
}

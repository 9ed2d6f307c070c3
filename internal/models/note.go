// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

// NoteType is the position of a note in the fragrance pyramid.
type NoteType string

const (
	NoteTop    NoteType = "top"
	NoteMiddle NoteType = "middle"
	NoteBase   NoteType = "base"
)

// Valid reports whether t is a pyramid level.
func (t NoteType) Valid() bool {
	return t == NoteTop || t == NoteMiddle || t == NoteBase
}

// NoteGroup is a family of notes such as citrus or woods.
type NoteGroup struct { //nolint:govet // fieldalignment not critical for models
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}

// Note is a single ingredient impression.
type Note struct { //nolint:govet // fieldalignment not critical for models
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	GroupID     int64  `db:"group_id" json:"group_id"`
}

// FragranceNote places a note in a fragrance's pyramid.
type FragranceNote struct { //nolint:govet // fieldalignment not critical for models
	FragranceID int64    `db:"fragrance_id" json:"fragrance_id"`
	NoteID      int64    `db:"note_id" json:"note_id"`
	NoteName    string   `db:"note_name" json:"note_name"`
	NoteType    NoteType `db:"note_type" json:"note_type"`
}

// SimilarFragrance records that a user found two fragrances alike.
type SimilarFragrance struct { //nolint:govet // fieldalignment not critical for models
	ID          int64  `db:"id" json:"id"`
	UserID      int64  `db:"user_id" json:"user_id"`
	FragranceID int64  `db:"fragrance_id" json:"fragrance_id"`
	SimilarID   int64  `db:"similar_id" json:"similar_id"`
	SimilarName string `db:"similar_name" json:"similar_name"`
}

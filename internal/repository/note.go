// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/scentbook/internal/models"
)

// CreateNoteGroup inserts a note group and sets its ID.
func (r *Repository) CreateNoteGroup(ctx context.Context, g *models.NoteGroup) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO note_groups (name, description) VALUES (?, ?)", g.Name, g.Description)
	if err != nil {
		return wrapError(err)
	}
	g.ID, err = res.LastInsertId()
	return err
}

// GetNoteGroupByID retrieves a note group by ID.
func (r *Repository) GetNoteGroupByID(ctx context.Context, id int64) (*models.NoteGroup, error) {
	var g models.NoteGroup
	if err := r.db.GetContext(ctx, &g, "SELECT id, name, description FROM note_groups WHERE id = ?", id); err != nil {
		return nil, wrapError(err)
	}
	return &g, nil
}

// CreateNote inserts a note and sets its ID.
func (r *Repository) CreateNote(ctx context.Context, n *models.Note) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO notes (name, description, group_id) VALUES (?, ?, ?)", n.Name, n.Description, n.GroupID)
	if err != nil {
		return wrapError(err)
	}
	n.ID, err = res.LastInsertId()
	return err
}

// GetNoteByID retrieves a note by ID.
func (r *Repository) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	var n models.Note
	if err := r.db.GetContext(ctx, &n, "SELECT id, name, description, group_id FROM notes WHERE id = ?", id); err != nil {
		return nil, wrapError(err)
	}
	return &n, nil
}

// AddFragranceNote places a note in a fragrance's pyramid.
func (r *Repository) AddFragranceNote(ctx context.Context, fn *models.FragranceNote) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO fragrance_notes (fragrance_id, note_id, note_type) VALUES (?, ?, ?)",
		fn.FragranceID, fn.NoteID, fn.NoteType); err != nil {
		return wrapError(err)
	}
	return r.db.GetContext(ctx, &fn.NoteName, "SELECT name FROM notes WHERE id = ?", fn.NoteID)
}

// ListFragranceNotes returns the pyramid of a fragrance, top notes first.
func (r *Repository) ListFragranceNotes(ctx context.Context, fragranceID int64) ([]models.FragranceNote, error) {
	out := []models.FragranceNote{}
	if err := r.db.SelectContext(ctx, &out,
		`SELECT fn.fragrance_id, fn.note_id, n.name AS note_name, fn.note_type
		 FROM fragrance_notes fn JOIN notes n ON n.id = fn.note_id
		 WHERE fn.fragrance_id = ?
		 ORDER BY CASE fn.note_type WHEN 'top' THEN 0 WHEN 'middle' THEN 1 ELSE 2 END, n.name`,
		fragranceID); err != nil {
		return nil, err
	}
	return out, nil
}

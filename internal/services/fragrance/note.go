// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package fragrance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"codeberg.org/oliverandrich/scentbook/internal/models"
	"codeberg.org/oliverandrich/scentbook/internal/repository"
)

var (
	ErrEmptyNoteName     = errors.New("note name is required")
	ErrNoteGroupNotFound = errors.New("note group not found")
	ErrNoteNotFound      = errors.New("note not found")
	ErrInvalidNoteType   = errors.New("note type must be one of: top, middle, base")
)

func (s *Service) CreateNoteGroup(ctx context.Context, name, description string) (*models.NoteGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyNoteName
	}

	g := &models.NoteGroup{Name: name, Description: strings.TrimSpace(description)}
	if err := s.repo.CreateNoteGroup(ctx, g); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create note group: %w", err)
	}
	slog.Info("note_group_created", "note_group_id", g.ID, "name", g.Name)
	return g, nil
}

func (s *Service) CreateNote(ctx context.Context, name, description string, groupID int64) (*models.Note, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyNoteName
	}
	if _, err := s.repo.GetNoteGroupByID(ctx, groupID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteGroupNotFound
		}
		return nil, fmt.Errorf("failed to get note group: %w", err)
	}

	n := &models.Note{Name: name, Description: strings.TrimSpace(description), GroupID: groupID}
	if err := s.repo.CreateNote(ctx, n); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	slog.Info("note_created", "note_id", n.ID, "name", n.Name)
	return n, nil
}

// AddNote places a note in the pyramid of a fragrance. Each note appears at
// most once per fragrance.
func (s *Service) AddNote(ctx context.Context, fragranceID, noteID int64, noteType string) (*models.FragranceNote, error) {
	nt := models.NoteType(noteType)
	if !nt.Valid() {
		return nil, ErrInvalidNoteType
	}
	if err := s.requireFragrance(ctx, fragranceID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetNoteByID(ctx, noteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	fn := &models.FragranceNote{FragranceID: fragranceID, NoteID: noteID, NoteType: nt}
	if err := s.repo.AddFragranceNote(ctx, fn); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	return fn, nil
}

// Notes returns the pyramid of a fragrance.
func (s *Service) Notes(ctx context.Context, fragranceID int64) ([]models.FragranceNote, error) {
	if err := s.requireFragrance(ctx, fragranceID); err != nil {
		return nil, err
	}
	return s.repo.ListFragranceNotes(ctx, fragranceID)
}

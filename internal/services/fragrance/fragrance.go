// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package fragrance manages the catalogue of fragrances and their houses.
package fragrance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"codeberg.org/oliverandrich/scentbook/internal/models"
	"codeberg.org/oliverandrich/scentbook/internal/repository"
)

const (
	MinNameLength = 3
	MaxNameLength = 150

	defaultPageSize = 50
	maxPageSize     = 200
)

var (
	ErrInvalidName      = fmt.Errorf("name must be %d to %d characters", MinNameLength, MaxNameLength)
	ErrInvalidType      = errors.New("unknown fragrance type")
	ErrNegativeValue    = errors.New("price and ml must not be negative")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrNameTaken        = errors.New("name already exists")
	ErrEmptyCompanyName = errors.New("company name is required")

	ErrFragranceNotFound = errors.New("fragrance not found")
	ErrNotFound          = errors.New("entry not found")
	ErrDuplicate         = errors.New("already recorded")
)

type Service struct {
	repo *repository.Repository
}

func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams describes a new fragrance. Nil fields are stored as NULL.
type CreateParams struct {
	Description *string
	CompanyID   *int64
	Price       *int64
	Type        *string
	ML          *int64
	Picture     *string
	Name        string
}

// Create validates params and stores a fragrance.
func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Fragrance, error) {
	name := strings.TrimSpace(params.Name)
	if n := utf8.RuneCountInString(name); n < MinNameLength || n > MaxNameLength {
		return nil, ErrInvalidName
	}
	if params.Type != nil && !models.FragranceType(*params.Type).Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, *params.Type)
	}
	if (params.Price != nil && *params.Price < 0) || (params.ML != nil && *params.ML < 0) {
		return nil, ErrNegativeValue
	}
	if params.CompanyID != nil {
		if _, err := s.repo.GetCompanyByID(ctx, *params.CompanyID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCompanyNotFound
			}
			return nil, fmt.Errorf("failed to get company: %w", err)
		}
	}

	f := &models.Fragrance{
		Name:          name,
		Description:   nullString(params.Description),
		CompanyID:     nullInt(params.CompanyID),
		Price:         nullInt(params.Price),
		FragranceType: nullString(params.Type),
		ML:            nullInt(params.ML),
		Picture:       nullString(params.Picture),
	}
	if err := s.repo.CreateFragrance(ctx, f); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create fragrance: %w", err)
	}

	slog.Info("fragrance_created", "fragrance_id", f.ID, "name", f.Name)
	return f, nil
}

// CreateCompany stores a new fragrance house.
func (s *Service) CreateCompany(ctx context.Context, name, description string) (*models.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCompanyName
	}

	company := &models.Company{Name: name, Description: strings.TrimSpace(description)}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	slog.Info("company_created", "company_id", company.ID, "name", company.Name)
	return company, nil
}

// Get returns a single fragrance.
func (s *Service) Get(ctx context.Context, id int64) (*models.Fragrance, error) {
	f, err := s.repo.GetFragranceByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFragranceNotFound
		}
		return nil, fmt.Errorf("failed to get fragrance: %w", err)
	}
	return f, nil
}

// List returns one page of fragrances. Out-of-range sizes fall back to the default.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Fragrance, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListFragrances(ctx, limit, offset)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func (s *Service) requireFragrance(ctx context.Context, id int64) error {
	_, err := s.Get(ctx, id)
	return err
}

// notFound maps a missing row to ErrNotFound.
func notFound(err error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/scentbook/internal/models"
)

const fragranceColumns = "id, name, description, company_id, price, fragrance_type, ml, picture, created_at"

// CreateCompany inserts a company and sets its ID.
func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO companies (name, description) VALUES (?, ?)", company.Name, company.Description)
	if err != nil {
		return wrapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	company.ID = id
	return nil
}

// GetCompanyByID retrieves a company by ID.
func (r *Repository) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	var company models.Company
	if err := r.db.GetContext(ctx, &company, "SELECT id, name, description FROM companies WHERE id = ?", id); err != nil {
		return nil, wrapError(err)
	}
	return &company, nil
}

// CreateFragrance inserts a fragrance and reloads it.
func (r *Repository) CreateFragrance(ctx context.Context, f *models.Fragrance) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO fragrances (name, description, company_id, price, fragrance_type, ml, picture)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.Name, f.Description, f.CompanyID, f.Price, f.FragranceType, f.ML, f.Picture,
	)
	if err != nil {
		return wrapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	created, err := r.GetFragranceByID(ctx, id)
	if err != nil {
		return err
	}
	*f = *created
	return nil
}

// GetFragranceByID retrieves a fragrance by ID.
func (r *Repository) GetFragranceByID(ctx context.Context, id int64) (*models.Fragrance, error) {
	var f models.Fragrance
	if err := r.db.GetContext(ctx, &f, "SELECT "+fragranceColumns+" FROM fragrances WHERE id = ?", id); err != nil {
		return nil, wrapError(err)
	}
	return &f, nil
}

// ListFragrances returns fragrances ordered by name.
func (r *Repository) ListFragrances(ctx context.Context, limit, offset int) ([]models.Fragrance, error) {
	var out []models.Fragrance
	if err := r.db.SelectContext(ctx, &out,
		"SELECT "+fragranceColumns+" FROM fragrances ORDER BY name LIMIT ? OFFSET ?", limit, offset); err != nil {
		return nil, err
	}
	return out, nil
}

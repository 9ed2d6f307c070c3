// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/scentbook/internal/models"
)

const userColumns = "id, username, email, role, password_hash, avatar, created_at, updated_at"

// CreateUser inserts the user and fills in ID and timestamps.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, role, password_hash, avatar) VALUES (?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.Role, user.PasswordHash, user.Avatar,
	)
	if err != nil {
		return wrapError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	created, err := r.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	*user = *created
	return nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE id = ?", id); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE username = ? ORDER BY id LIMIT 1", username); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE email = ?", email); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// UsernameExists checks if a user with the given username exists.
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM users WHERE username = ?", username); err != nil {
		return false, err
	}
	return count > 0, nil
}

// EmailExists checks if a user with the given email exists.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM users WHERE email = ?", email); err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetUserRole changes the role of a user.
func (r *Repository) SetUserRole(ctx context.Context, id int64, role models.Role) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", role, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountAdmins returns the number of admin users.
func (r *Repository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM users WHERE role = ?", models.RoleAdmin); err != nil {
		return 0, err
	}
	return count, nil
}

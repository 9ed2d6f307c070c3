// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/scentbook/internal/auth"
	"codeberg.org/oliverandrich/scentbook/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestGetUser(t *testing.T) {
	user := &models.User{ID: 123, Username: "testuser"}
	ctx := auth.WithUser(context.Background(), user)

	assert.Same(t, user, auth.GetUser(ctx))
	assert.True(t, auth.IsAuthenticated(ctx))
}

func TestGetUser_Missing(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, auth.GetUser(ctx))
	assert.False(t, auth.IsAuthenticated(ctx))
}

func TestWithUser_Nil(t *testing.T) {
	ctx := auth.WithUser(context.Background(), nil)

	assert.False(t, auth.IsAuthenticated(ctx))
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/oliverandrich/scentbook/internal/auth"
	"codeberg.org/oliverandrich/scentbook/internal/handlers"
	"codeberg.org/oliverandrich/scentbook/internal/models"
	"codeberg.org/oliverandrich/scentbook/internal/services/fragrance"
	"codeberg.org/oliverandrich/scentbook/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type communityFixture struct {
	h     *handlers.FragranceHandlers
	alice *models.User
	oud   *models.Fragrance
	iris  *models.Fragrance
}

func newCommunityFixture(t *testing.T) communityFixture {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	return communityFixture{
		h:     handlers.NewFragrance(fragrance.NewService(repo)),
		alice: testutil.NewTestUser(t, repo, "alice", models.RoleUser),
		oud:   testutil.NewTestFragrance(t, repo, "Oud Nocturne"),
		iris:  testutil.NewTestFragrance(t, repo, "Iris Pallida"),
	}
}

// call runs handler with path params given as name, value pairs.
func call(t *testing.T, handler echo.HandlerFunc, user *models.User, method, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	c, rec := testutil.NewEchoContext(echo.New(), method, "/", r)
	if user != nil {
		c.SetRequest(c.Request().WithContext(auth.WithUser(c.Request().Context(), user)))
	}
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	require.NoError(t, handler(c))
	return rec
}

func TestReviewHandlers(t *testing.T) {
	fx := newCommunityFixture(t)
	id := "1"

	rec := call(t, fx.h.AddReview, nil, http.MethodPost, `{"content":"Smoky.","rating":8}`, "id", id)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, fx.h.AddReview, fx.alice, http.MethodPost, `{"content":"Smoky.","rating":8.25}`, "id", id)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"detail":"rating must be a multiple of 0.5"}`, rec.Body.String())

	rec = call(t, fx.h.AddReview, fx.alice, http.MethodPost, `{"content":"   ","rating":8}`, "id", id)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = call(t, fx.h.AddReview, fx.alice, http.MethodPost, `{"content":"Smoky.","rating":8}`, "id", "999")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, fx.h.AddReview, fx.alice, http.MethodPost, `{"content":"Smoky.","rating":8.5}`, "id", id)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)

	rec = call(t, fx.h.Reviews, nil, http.MethodGet, "", "id", id)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rating":{"average":8.5,"count":1}`)

	rec = call(t, fx.h.Detail, nil, http.MethodGet, "", "id", id)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Oud Nocturne"`)
	assert.Contains(t, rec.Body.String(), `"notes":[]`)

	rec = call(t, fx.h.DeleteReview, fx.alice, http.MethodDelete, "", "id", id, "review_id", "1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = call(t, fx.h.DeleteReview, fx.alice, http.MethodDelete, "", "id", id, "review_id", "1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPathIDValidation(t *testing.T) {
	fx := newCommunityFixture(t)

	for _, id := range []string{"abc", "0", "-1", ""} {
		rec := call(t, fx.h.Detail, nil, http.MethodGet, "", "id", id)
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
	}
}

func TestWishlistHandlers(t *testing.T) {
	fx := newCommunityFixture(t)

	rec := call(t, fx.h.SetWishlist, fx.alice, http.MethodPut, `{"status":"sold"}`, "id", "1")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = call(t, fx.h.SetWishlist, fx.alice, http.MethodPut, `{"status":"owned"}`, "id", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"owned"`)

	rec = call(t, fx.h.Wishlist, fx.alice, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fragrance_name":"Oud Nocturne"`)

	rec = call(t, fx.h.RemoveFromWishlist, fx.alice, http.MethodDelete, "", "id", "1")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(t, fx.h.Wishlist, fx.alice, http.MethodGet, "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestVoteHandlers(t *testing.T) {
	fx := newCommunityFixture(t)

	rec := call(t, fx.h.Vote, fx.alice, http.MethodPut, `{"value":"winter"}`, "id", "1", "kind", "gender")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = call(t, fx.h.Vote, fx.alice, http.MethodPut, `{"value":"unisex"}`, "id", "1", "kind", "gender")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, fx.h.Votes, nil, http.MethodGet, "", "id", "1")
	assert.JSONEq(t, `[{"kind":"gender","value":"unisex","count":1}]`, rec.Body.String())

	rec = call(t, fx.h.RetractVote, fx.alice, http.MethodDelete, "", "id", "1", "kind", "gender")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNoteHandlers(t *testing.T) {
	fx := newCommunityFixture(t)

	rec := call(t, fx.h.CreateNoteGroup, nil, http.MethodPost, `{"name":"Woods"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(t, fx.h.CreateNote, nil, http.MethodPost, `{"name":"Oud","group_id":99}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(t, fx.h.CreateNote, nil, http.MethodPost, `{"name":"Oud","group_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(t, fx.h.AddNote, nil, http.MethodPost, `{"note_id":1,"note_type":"base"}`, "id", "1")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(t, fx.h.AddNote, nil, http.MethodPost, `{"note_id":1,"note_type":"top"}`, "id", "1")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, fx.h.Notes, nil, http.MethodGet, "", "id", "1")
	assert.JSONEq(t, `[{"fragrance_id":1,"note_id":1,"note_name":"Oud","note_type":"base"}]`, rec.Body.String())
}

func TestSimilarHandlers(t *testing.T) {
	fx := newCommunityFixture(t)

	rec := call(t, fx.h.AddSimilar, fx.alice, http.MethodPost, `{"similar_id":1}`, "id", "1")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = call(t, fx.h.AddSimilar, fx.alice, http.MethodPost, `{"similar_id":2}`, "id", "1")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(t, fx.h.AddSimilar, fx.alice, http.MethodPost, `{"similar_id":2}`, "id", "1")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, fx.h.Similar, nil, http.MethodGet, "", "id", "1")
	assert.Contains(t, rec.Body.String(), `"similar_name":"Iris Pallida"`)
}

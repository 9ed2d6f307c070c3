// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strconv"

	"codeberg.org/oliverandrich/scentbook/internal/auth"
	"codeberg.org/oliverandrich/scentbook/internal/models"
	"github.com/labstack/echo/v4"
)

// FragranceDetailResponse is a fragrance with its rating and pyramid.
type FragranceDetailResponse struct {
	FragranceResponse
	Notes  []models.FragranceNote `json:"notes"`
	Rating models.RatingSummary   `json:"rating"`
}

// Detail returns one fragrance.
func (h *FragranceHandlers) Detail(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}
	ctx := c.Request().Context()

	f, err := h.svc.Get(ctx, id)
	if err != nil {
		return fragranceError(c, err)
	}
	notes, err := h.svc.Notes(ctx, id)
	if err != nil {
		return fragranceError(c, err)
	}
	_, summary, err := h.svc.Reviews(ctx, id)
	if err != nil {
		return fragranceError(c, err)
	}

	return c.JSON(http.StatusOK, FragranceDetailResponse{
		FragranceResponse: toFragranceResponse(f),
		Notes:             notes,
		Rating:            summary,
	})
}

// ReviewsResponse lists reviews with their summary.
type ReviewsResponse struct {
	Reviews []models.Review      `json:"reviews"`
	Rating  models.RatingSummary `json:"rating"`
}

// Reviews lists the reviews of a fragrance.
func (h *FragranceHandlers) Reviews(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	reviews, summary, err := h.svc.Reviews(c.Request().Context(), id)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusOK, ReviewsResponse{Reviews: reviews, Rating: summary})
}

// ReviewRequest is the body for a new review.
type ReviewRequest struct {
	Content string  `json:"content" form:"content"`
	Rating  float64 `json:"rating" form:"rating"`
}

// AddReview stores a review by the current user.
func (h *FragranceHandlers) AddReview(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if user == nil {
		return Unauthorized(c, "Not authenticated")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request")
	}

	review, err := h.svc.AddReview(c.Request().Context(), user.ID, id, req.Content, req.Rating)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

// DeleteReview removes one of the current user's reviews.
func (h *FragranceHandlers) DeleteReview(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if user == nil {
		return Unauthorized(c, "Not authenticated")
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return notFound(c)
	}

	if err := h.svc.DeleteReview(c.Request().Context(), user.ID, reviewID); err != nil {
		return fragranceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// WishlistRequest is the body for a wishlist change.
type WishlistRequest struct {
	Status string `json:"status" form:"status"`
}

// SetWishlist puts a fragrance on the current user's list.
func (h *FragranceHandlers) SetWishlist(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if user == nil {
		return Unauthorized(c, "Not authenticated")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}
	var req WishlistRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request")
	}

	entry, err := h.svc.SetWishlist(c.Request().Context(), user.ID, id, req.Status)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *FragranceHandlers) RemoveFromWishlist(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if user == nil {
		return Unauthorized(c, "Not authenticated")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	if err := h.svc.RemoveFromWishlist(c.Request().Context(), user.ID, id); err != nil {
		return fragranceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Wishlist lists the current user's entries. The status query parameter
// filters them.
func (h *FragranceHandlers) Wishlist(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if user == nil {
		return Unauthorized(c, "Not authenticated")
	}

	entries, err := h.svc.Wishlist(c.Request().Context(), user.ID, c.QueryParam("status"))
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// VoteRequest is the body for a vote.
type VoteRequest struct {
	Value string `json:"value" form:"value"`
}

// Vote records the current user's value for the kind in the path.
func (h *FragranceHandlers) Vote(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if user == nil {
		return Unauthorized(c, "Not authenticated")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}
	var req VoteRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request")
	}

	vote, err := h.svc.Vote(c.Request().Context(), user.ID, id, c.Param("kind"), req.Value)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusOK, vote)
}

func (h *FragranceHandlers) RetractVote(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if user == nil {
		return Unauthorized(c, "Not authenticated")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	if err := h.svc.RetractVote(c.Request().Context(), user.ID, id, c.Param("kind")); err != nil {
		return fragranceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Votes returns the vote tallies of a fragrance.
func (h *FragranceHandlers) Votes(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	tallies, err := h.svc.Votes(c.Request().Context(), id)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusOK, tallies)
}

// NoteGroupRequest is the body for a new note group.
type NoteGroupRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

func (h *FragranceHandlers) CreateNoteGroup(c echo.Context) error {
	var req NoteGroupRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request")
	}

	g, err := h.svc.CreateNoteGroup(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusCreated, g)
}

// NoteRequest is the body for a new note.
type NoteRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	GroupID     int64  `json:"group_id" form:"group_id"`
}

func (h *FragranceHandlers) CreateNote(c echo.Context) error {
	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request")
	}

	n, err := h.svc.CreateNote(c.Request().Context(), req.Name, req.Description, req.GroupID)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

// FragranceNoteRequest places a note in a pyramid.
type FragranceNoteRequest struct {
	NoteType string `json:"note_type" form:"note_type"`
	NoteID   int64  `json:"note_id" form:"note_id"`
}

// AddNote adds a note to the fragrance in the path.
func (h *FragranceHandlers) AddNote(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}
	var req FragranceNoteRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request")
	}

	fn, err := h.svc.AddNote(c.Request().Context(), id, req.NoteID, req.NoteType)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusCreated, fn)
}

// Notes returns the pyramid of a fragrance.
func (h *FragranceHandlers) Notes(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	notes, err := h.svc.Notes(c.Request().Context(), id)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}

// SimilarRequest names the fragrance that resembles the one in the path.
type SimilarRequest struct {
	SimilarID int64 `json:"similar_id" form:"similar_id"`
}

func (h *FragranceHandlers) AddSimilar(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if user == nil {
		return Unauthorized(c, "Not authenticated")
	}
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}
	var req SimilarRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request")
	}

	sf, err := h.svc.AddSimilar(c.Request().Context(), user.ID, id, req.SimilarID)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusCreated, sf)
}

// Similar lists fragrances recorded as similar to the one in the path.
func (h *FragranceHandlers) Similar(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return notFound(c)
	}

	similar, err := h.svc.Similar(c.Request().Context(), id)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusOK, similar)
}

func pathID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

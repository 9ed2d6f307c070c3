// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"codeberg.org/oliverandrich/scentbook/internal/models"
	"codeberg.org/oliverandrich/scentbook/internal/services/fragrance"
	"github.com/labstack/echo/v4"
)

// FragranceHandlers contains the catalogue handlers.
type FragranceHandlers struct {
	svc *fragrance.Service
}

// NewFragrance creates a new FragranceHandlers instance.
func NewFragrance(svc *fragrance.Service) *FragranceHandlers {
	return &FragranceHandlers{svc: svc}
}

// FragranceResponse is the JSON form of a fragrance.
type FragranceResponse struct { //nolint:govet // fieldalignment not critical for responses
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	CompanyID     *int64    `json:"company_id"`
	Price         *int64    `json:"price"`
	FragranceType *string   `json:"fragrance_type"`
	ML            *int64    `json:"ml"`
	Picture       *string   `json:"picture"`
	CreatedAt     time.Time `json:"created_at"`
}

func toFragranceResponse(f *models.Fragrance) FragranceResponse {
	r := FragranceResponse{ID: f.ID, Name: f.Name, CreatedAt: f.CreatedAt}
	if f.Description.Valid {
		r.Description = &f.Description.String
	}
	if f.CompanyID.Valid {
		r.CompanyID = &f.CompanyID.Int64
	}
	if f.Price.Valid {
		r.Price = &f.Price.Int64
	}
	if f.FragranceType.Valid {
		r.FragranceType = &f.FragranceType.String
	}
	if f.ML.Valid {
		r.ML = &f.ML.Int64
	}
	if f.Picture.Valid {
		r.Picture = &f.Picture.String
	}
	return r
}

// List returns a page of fragrances. Query parameters limit and offset are
// optional.
func (h *FragranceHandlers) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	items, err := h.svc.List(c.Request().Context(), limit, offset)
	if err != nil {
		return InternalServerError(c, err)
	}

	out := make([]FragranceResponse, 0, len(items))
	for i := range items {
		out = append(out, toFragranceResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// FragranceRequest is the body for a new fragrance.
type FragranceRequest struct { //nolint:govet // fieldalignment not critical for requests
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	CompanyID     *int64  `json:"company_id"`
	Price         *int64  `json:"price"`
	FragranceType *string `json:"fragrance_type"`
	ML            *int64  `json:"ml"`
	Picture       *string `json:"picture"`
}

// Create adds a fragrance.
func (h *FragranceHandlers) Create(c echo.Context) error {
	var req FragranceRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request")
	}

	f, err := h.svc.Create(c.Request().Context(), fragrance.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   req.CompanyID,
		Price:       req.Price,
		Type:        req.FragranceType,
		ML:          req.ML,
		Picture:     req.Picture,
	})
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusCreated, toFragranceResponse(f))
}

// CompanyRequest is the body for a new company.
type CompanyRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

// CreateCompany adds a fragrance house.
func (h *FragranceHandlers) CreateCompany(c echo.Context) error {
	var req CompanyRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request")
	}

	company, err := h.svc.CreateCompany(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return fragranceError(c, err)
	}
	return c.JSON(http.StatusCreated, company)
}

func fragranceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, fragrance.ErrInvalidName),
		errors.Is(err, fragrance.ErrInvalidType),
		errors.Is(err, fragrance.ErrNegativeValue),
		errors.Is(err, fragrance.ErrEmptyCompanyName),
		errors.Is(err, fragrance.ErrRatingRange),
		errors.Is(err, fragrance.ErrRatingStep),
		errors.Is(err, fragrance.ErrEmptyReview),
		errors.Is(err, fragrance.ErrReviewTooLong),
		errors.Is(err, fragrance.ErrInvalidStatus),
		errors.Is(err, fragrance.ErrInvalidVoteKind),
		errors.Is(err, fragrance.ErrInvalidVoteValue),
		errors.Is(err, fragrance.ErrInvalidNoteType),
		errors.Is(err, fragrance.ErrEmptyNoteName),
		errors.Is(err, fragrance.ErrSelfSimilar):
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, fragrance.ErrCompanyNotFound),
		errors.Is(err, fragrance.ErrNoteGroupNotFound),
		errors.Is(err, fragrance.ErrNoteNotFound):
		return BadRequest(c, err.Error())
	case errors.Is(err, fragrance.ErrFragranceNotFound),
		errors.Is(err, fragrance.ErrNotFound):
		return detail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, fragrance.ErrNameTaken),
		errors.Is(err, fragrance.ErrDuplicate):
		return detail(c, http.StatusConflict, err.Error())
	default:
		return InternalServerError(c, err)
	}
}

// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"time"

	"codeberg.org/oliverandrich/scentbook/internal/handlers"
	mw "codeberg.org/oliverandrich/scentbook/internal/middleware"
	"codeberg.org/oliverandrich/scentbook/internal/models"
	"codeberg.org/oliverandrich/scentbook/internal/router"
	"codeberg.org/oliverandrich/scentbook/internal/services/auth"
	"codeberg.org/oliverandrich/scentbook/internal/services/fragrance"
	"codeberg.org/oliverandrich/scentbook/internal/services/session"
	"github.com/labstack/echo/v4"
)

const (
	loginBurst    = 10
	loginInterval = 6 * time.Second
)

func setupRoutes(e *echo.Echo, pages *router.Router, authSvc *auth.Service, sessions *session.Manager, fragrances *fragrance.Service) {
	h := handlers.New(pages)
	a := handlers.NewAuth(authSvc, sessions)
	f := handlers.NewFragrance(fragrances)

	e.GET("/health", h.Health)

	api := e.Group("/api/auth")
	api.GET("/csrf-token", a.CSRFToken)
	api.POST("/register", a.Register)
	api.POST("/login", a.Login, mw.LoginRateLimit(loginBurst, loginInterval))
	api.POST("/logout", a.Logout)
	api.GET("/me", a.Me, mw.RequireAuth)

	admin := mw.RequireRole(models.RoleAdmin)
	frag := e.Group("/fragrance")
	frag.GET("", f.List)
	frag.POST("/new-fragrance", f.Create, admin)
	frag.POST("/new-company", f.CreateCompany, admin)
	frag.POST("/new-note-group", f.CreateNoteGroup, admin)
	frag.POST("/new-note", f.CreateNote, admin)
	frag.GET("/wishlist", f.Wishlist, mw.RequireAuth)

	frag.GET("/:id", f.Detail)
	frag.GET("/:id/reviews", f.Reviews)
	frag.POST("/:id/reviews", f.AddReview, mw.RequireAuth)
	frag.DELETE("/:id/reviews/:review_id", f.DeleteReview, mw.RequireAuth)
	frag.PUT("/:id/wishlist", f.SetWishlist, mw.RequireAuth)
	frag.DELETE("/:id/wishlist", f.RemoveFromWishlist, mw.RequireAuth)
	frag.GET("/:id/votes", f.Votes)
	frag.PUT("/:id/votes/:kind", f.Vote, mw.RequireAuth)
	frag.DELETE("/:id/votes/:kind", f.RetractVote, mw.RequireAuth)
	frag.GET("/:id/notes", f.Notes)
	frag.POST("/:id/notes", f.AddNote, admin)
	frag.GET("/:id/similar", f.Similar)
	frag.POST("/:id/similar", f.AddSimilar, mw.RequireAuth)

	// Everything else is a page from the route table.
	e.GET("/", h.Page)
	e.GET("/*", h.Page)
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelmatch/internal/middleware"
)

// apiPrefix is the mount point of the versioned API.
const apiPrefix = "/api/v1"

// slowRequestThreshold promotes access log lines to warn. Recommendation
// requests fan out to the catalog and routinely take a second or two.
const slowRequestThreshold = 5 * time.Second

// NewRouter builds the HTTP handler tree.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(slowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route(apiPrefix, func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/health", h.Health)

		r.Post("/onboarding", h.Onboarding)
		r.Post("/recommendations/refresh", h.RefreshRecommendations)
		r.Get("/profile/{userKey}", h.GetProfile)

		r.Route("/users/{userKey}", func(r chi.Router) {
			r.Use(userKeyCtx)

			r.Get("/watchlist", h.ListWatchlist)
			r.Post("/watchlist", h.AddToWatchlist)
			r.Patch("/watchlist/{kind}/{itemID}", h.UpdateWatchlistStatus)
			r.Delete("/watchlist/{kind}/{itemID}", h.RemoveFromWatchlist)

			r.Get("/ratings", h.ListRatings)
			r.Put("/ratings", h.PutRating)
			r.Delete("/ratings/{kind}/{itemID}", h.RemoveRating)

			r.Get("/favorites", h.ListFavorites)
			r.Post("/favorites", h.AddFavorite)
			r.Delete("/favorites/{personID}", h.RemoveFavorite)
		})
	})

	return r
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/store"
)

// userKeyCtx validates the {userKey} path segment and tags the context.
func userKeyCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userKey := chi.URLParam(r, "userKey")
		if err := store.ValidateUserKey(userKey); err != nil {
			NewResponseWriter(w, r).BadRequest("Invalid user key")
			return
		}
		next.ServeHTTP(w, r.WithContext(logging.ContextWithUserKey(r.Context(), userKey)))
	})
}

// itemIDParam builds the entry id from the {kind}/{itemID} path segments.
func itemIDParam(rw *ResponseWriter, r *http.Request) (string, bool) {
	kind, ok := catalog.ParseMediaKind(chi.URLParam(r, "kind"))
	if !ok {
		rw.BadRequest("Kind must be movie or series")
		return "", false
	}
	id, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil || id <= 0 {
		rw.BadRequest("Item ID must be a positive integer")
		return "", false
	}
	return store.ItemID(kind, id), true
}

func mustKind(s string) catalog.MediaKind {
	kind, _ := catalog.ParseMediaKind(s)
	return kind
}

// ListWatchlist handles GET /api/v1/users/{userKey}/watchlist.
func (h *Handler) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	entries, err := h.store.Watchlist.GetAll(r.Context(), chi.URLParam(r, "userKey"))
	if err != nil {
		rw.StoreError(err)
		return
	}
	rw.List(entries, len(entries))
}

// AddToWatchlist handles POST /api/v1/users/{userKey}/watchlist.
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req WatchlistAddRequest
	if !bind(rw, w, r, &req) {
		return
	}
	status := store.WatchStatus(req.Status)
	if status == "" {
		status = store.StatusWantToWatch
	}
	now := h.now().UTC()
	entry := store.WatchlistEntry{
		ItemID:     req.ItemID,
		Kind:       mustKind(req.Kind),
		Title:      req.Title,
		PosterPath: req.PosterPath,
		Status:     status,
		AddedAt:    now,
		UpdatedAt:  now,
	}

	added, err := h.store.Watchlist.Add(r.Context(), chi.URLParam(r, "userKey"), entry)
	if err != nil {
		rw.StoreError(err)
		return
	}
	if !added {
		rw.Conflict("Title is already on the watchlist")
		return
	}
	rw.Created(entry)
}

// UpdateWatchlistStatus handles PATCH /api/v1/users/{userKey}/watchlist/{kind}/{itemID}.
func (h *Handler) UpdateWatchlistStatus(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, ok := itemIDParam(rw, r)
	if !ok {
		return
	}

	var req StatusRequest
	if !bind(rw, w, r, &req) {
		return
	}

	userKey := chi.URLParam(r, "userKey")
	found, err := h.store.Watchlist.UpdateStatus(r.Context(), userKey, id, store.WatchStatus(req.Status))
	if err != nil {
		rw.StoreError(err)
		return
	}
	if !found {
		rw.NotFound("Title is not on the watchlist")
		return
	}

	entry, err := h.store.Watchlist.Get(r.Context(), userKey, id)
	if err != nil {
		rw.StoreError(err)
		return
	}
	rw.Success(entry)
}

// RemoveFromWatchlist handles DELETE /api/v1/users/{userKey}/watchlist/{kind}/{itemID}.
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, ok := itemIDParam(rw, r)
	if !ok {
		return
	}
	removed, err := h.store.Watchlist.Remove(r.Context(), chi.URLParam(r, "userKey"), id)
	if err != nil {
		rw.StoreError(err)
		return
	}
	if !removed {
		rw.NotFound("Title is not on the watchlist")
		return
	}
	rw.Success(map[string]any{"removed": id})
}

// ListRatings handles GET /api/v1/users/{userKey}/ratings.
func (h *Handler) ListRatings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ratings, err := h.store.Ratings.GetAll(r.Context(), chi.URLParam(r, "userKey"))
	if err != nil {
		rw.StoreError(err)
		return
	}
	rw.List(ratings, len(ratings))
}

// PutRating handles PUT /api/v1/users/{userKey}/ratings. A second rating
// for the same title replaces the first.
func (h *Handler) PutRating(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RatingRequest
	if !bind(rw, w, r, &req) {
		return
	}
	rating := store.Rating{
		ItemID:  req.ItemID,
		Kind:    mustKind(req.Kind),
		Title:   req.Title,
		Score:   req.Score,
		RatedAt: h.now().UTC(),
	}
	if err := h.store.Ratings.Put(r.Context(), chi.URLParam(r, "userKey"), rating); err != nil {
		rw.StoreError(err)
		return
	}
	rw.Success(rating)
}

// RemoveRating handles DELETE /api/v1/users/{userKey}/ratings/{kind}/{itemID}.
func (h *Handler) RemoveRating(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, ok := itemIDParam(rw, r)
	if !ok {
		return
	}
	removed, err := h.store.Ratings.Remove(r.Context(), chi.URLParam(r, "userKey"), id)
	if err != nil {
		rw.StoreError(err)
		return
	}
	if !removed {
		rw.NotFound("Title has not been rated")
		return
	}
	rw.Success(map[string]any{"removed": id})
}

// ListFavorites handles GET /api/v1/users/{userKey}/favorites.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	people, err := h.store.Favorites.GetAll(r.Context(), chi.URLParam(r, "userKey"))
	if err != nil {
		rw.StoreError(err)
		return
	}
	rw.List(people, len(people))
}

// AddFavorite handles POST /api/v1/users/{userKey}/favorites.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req FavoriteRequest
	if !bind(rw, w, r, &req) {
		return
	}
	person := store.FavoritePerson{
		PersonID:    req.PersonID,
		Name:        req.Name,
		Department:  req.Department,
		ProfilePath: req.ProfilePath,
		AddedAt:     h.now().UTC(),
	}

	added, err := h.store.Favorites.Add(r.Context(), chi.URLParam(r, "userKey"), person)
	if err != nil {
		rw.StoreError(err)
		return
	}
	if !added {
		rw.Conflict("Person is already a favorite")
		return
	}
	rw.Created(person)
}

// RemoveFavorite handles DELETE /api/v1/users/{userKey}/favorites/{personID}.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := strconv.Atoi(chi.URLParam(r, "personID"))
	if err != nil || id <= 0 {
		rw.BadRequest("Person ID must be a positive integer")
		return
	}
	removed, err := h.store.Favorites.Remove(r.Context(), chi.URLParam(r, "userKey"), strconv.Itoa(id))
	if err != nil {
		rw.StoreError(err)
		return
	}
	if !removed {
		rw.NotFound("Person is not a favorite")
		return
	}
	rw.Success(map[string]any{"removed": id})
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/store"
)

// Onboarding handles POST /api/v1/onboarding. It extracts the taste
// profile, stores it with the answers and returns the first recommendations.
func (h *Handler) Onboarding(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req OnboardingRequest
	if !bind(rw, w, r, &req) {
		return
	}
	ctx := logging.ContextWithUserKey(r.Context(), req.UserKey)
	answers := recommend.KnownAnswers(req.Answers)

	profile, resp := h.recommender.Generate(ctx, answers)
	if _, err := h.store.SaveProfile(ctx, req.UserKey, profile, answers); err != nil {
		rw.StoreError(err)
		return
	}

	logging.Ctx(ctx).Info().
		Str("personality", string(profile.Personality)).
		Int("items", len(resp.Items)).
		Bool("fallback", resp.Fallback).
		Msg("Onboarding completed")

	rw.Success(OnboardingResponse{Profile: profile, Recommendations: resp})
}

// RefreshRecommendations handles POST /api/v1/recommendations/refresh.
// force_new rotates the pages and trending window queried.
func (h *Handler) RefreshRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RefreshRequest
	if !bind(rw, w, r, &req) {
		return
	}
	ctx := logging.ContextWithUserKey(r.Context(), req.UserKey)

	stored, err := h.store.GetProfile(ctx, req.UserKey)
	if errors.Is(err, store.ErrNotFound) {
		rw.Error(http.StatusNotFound, ErrCodeProfileRequired, "Complete onboarding before requesting recommendations")
		return
	}
	if err != nil {
		rw.StoreError(err)
		return
	}

	rw.Success(h.recommender.Refresh(ctx, stored.Profile, req.ForceNew))
}

// GetProfile handles GET /api/v1/profile/{userKey}.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userKey := chi.URLParam(r, "userKey")
	if err := store.ValidateUserKey(userKey); err != nil {
		rw.BadRequest("Invalid user key")
		return
	}

	stored, err := h.store.GetProfile(r.Context(), userKey)
	if errors.Is(err, store.ErrNotFound) {
		rw.NotFound("No profile for user")
		return
	}
	if err != nil {
		rw.StoreError(err)
		return
	}
	rw.Success(stored)
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// OnboardingRequest is the body of POST /api/v1/onboarding. Answers are
// keyed by question number ("1".."6" in JSON). Missing, blank or unknown
// answers are accepted; unknown question numbers are ignored.
type OnboardingRequest struct {
	UserKey string         `json:"user_key" validate:"required,userkey"`
	Answers map[int]string `json:"answers"`
}

// RefreshRequest is the body of POST /api/v1/recommendations/refresh.
type RefreshRequest struct {
	UserKey  string `json:"user_key" validate:"required,userkey"`
	ForceNew bool   `json:"force_new"`
}

// WatchlistAddRequest adds a title to a watchlist.
type WatchlistAddRequest struct {
	ItemID     int    `json:"item_id" validate:"gt=0"`
	Kind       string `json:"kind" validate:"required,mediakind"`
	Title      string `json:"title" validate:"required,max=500"`
	PosterPath string `json:"poster_path" validate:"max=500"`
	Status     string `json:"status" validate:"omitempty,watchstatus"`
}

// StatusRequest changes a watchlist entry's status.
type StatusRequest struct {
	Status string `json:"status" validate:"required,watchstatus"`
}

// RatingRequest records or replaces a rating.
type RatingRequest struct {
	ItemID int    `json:"item_id" validate:"gt=0"`
	Kind   string `json:"kind" validate:"required,mediakind"`
	Title  string `json:"title" validate:"max=500"`
	Score  int    `json:"score" validate:"gte=1,lte=10"`
}

// FavoriteRequest adds a favorite person.
type FavoriteRequest struct {
	PersonID    int    `json:"person_id" validate:"gt=0"`
	Name        string `json:"name" validate:"required,max=200"`
	Department  string `json:"department" validate:"max=100"`
	ProfilePath string `json:"profile_path" validate:"max=500"`
}

// OnboardingResponse is returned by the onboarding endpoint.
type OnboardingResponse struct {
	Profile         recommend.TasteProfile `json:"profile"`
	Recommendations *recommend.Response    `json:"recommendations"`
}

// bind decodes and validates a request body, writing the error response on
// failure.
func bind(rw *ResponseWriter, w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		rw.BadRequest("Invalid JSON body: " + err.Error())
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

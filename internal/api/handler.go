// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/store"
)

// Recommender produces taste profiles and ranked recommendations.
type Recommender interface {
	Generate(ctx context.Context, answers map[int]string) (recommend.TasteProfile, *recommend.Response)
	Refresh(ctx context.Context, profile recommend.TasteProfile, forceNew bool) *recommend.Response
}

var _ Recommender = (*recommend.Pipeline)(nil)

// CatalogStatus reports the catalog circuit breaker state.
type CatalogStatus interface {
	BreakerState() string
}

// Handler serves the JSON API.
type Handler struct {
	recommender Recommender
	store       *store.Store
	catalog     CatalogStatus
	version     string
	startTime   time.Time
	now         func() time.Time
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithVersion sets the version reported by the health endpoint.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) { h.version = v }
}

// WithClock overrides the clock used for entry timestamps.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates the API handler. cat may be nil when no catalog
// breaker state is available.
func NewHandler(rec Recommender, st *store.Store, cat CatalogStatus, opts ...HandlerOption) *Handler {
	h := &Handler{
		recommender: rec,
		store:       st,
		catalog:     cat,
		version:     "dev",
		startTime:   time.Now(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

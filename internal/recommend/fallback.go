// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// fallbackMinRating is the rating a popular title needs to be offered as a
// fallback.
const fallbackMinRating = 7.0

// Fallback serves well-rated popular titles when personalized aggregation
// produced nothing usable.
type Fallback struct {
	catalog Catalog
	limit   int
	logger  zerolog.Logger
}

// NewFallback creates a Fallback returning at most limit items.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewFallback(cat Catalog, limit int, logger zerolog.Logger) *Fallback {
	return &Fallback{
		catalog: cat,
		limit:   limit,
		logger:  logger.With().Str("component", "fallback").Logger(),
	}
}

// Items fetches popular movies and series concurrently and returns the
// well-rated ones with posters, movies first. It never fails; the result may
// be empty.
func (f *Fallback) Items(ctx context.Context) []catalog.Item {
	kinds := []catalog.MediaKind{catalog.KindMovie, catalog.KindSeries}
	slots := make([][]catalog.Item, len(kinds))

	var g errgroup.Group
	for i, kind := range kinds {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					metrics.RecommendPanics.WithLabelValues("fallback").Inc()
					f.logger.Error().
						Str("kind", string(kind)).
						Interface("panic", r).
						Msg("Fallback fetch panicked")
				}
			}()
			slots[i] = f.catalog.Popular(ctx, kind, 1)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // fetches never return errors

	out := make([]catalog.Item, 0, f.limit)
	for _, slot := range slots {
		for _, it := range slot {
			if len(out) >= f.limit {
				return out
			}
			if it.Rating > fallbackMinRating && it.PosterPath != "" {
				out = append(out, it)
			}
		}
	}
	if len(out) == 0 {
		f.logger.Warn().Msg("Fallback produced no items")
	}
	return out
}

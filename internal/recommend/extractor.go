// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
)

// Enhancement is extra profile evidence supplied by a SentimentEnhancer.
type Enhancement struct {
	// Moods are appended after keyword moods, skipping duplicates.
	Moods []Mood

	// GenreBoosts are added to genre weights; results are clamped to 1.0.
	GenreBoosts map[int]float64
}

// Empty reports whether the enhancement carries no evidence.
func (e Enhancement) Empty() bool {
	return len(e.Moods) == 0 && len(e.GenreBoosts) == 0
}

// SentimentEnhancer refines a keyword-derived profile, typically with a
// language model.
type SentimentEnhancer interface {
	Enhance(ctx context.Context, answers map[int]string) (Enhancement, error)
}

// NoopEnhancer returns an empty enhancement.
type NoopEnhancer struct{}

// Enhance implements SentimentEnhancer.
func (NoopEnhancer) Enhance(context.Context, map[int]string) (Enhancement, error) {
	return Enhancement{}, nil
}

var _ SentimentEnhancer = NoopEnhancer{}

// Extractor runs keyword extraction followed by an optional enhancer.
type Extractor struct {
	enhancer SentimentEnhancer
	logger   zerolog.Logger
}

// NewExtractor creates an Extractor. A nil enhancer behaves like NoopEnhancer.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewExtractor(enhancer SentimentEnhancer, logger zerolog.Logger) *Extractor {
	if enhancer == nil {
		enhancer = NoopEnhancer{}
	}
	return &Extractor{
		enhancer: enhancer,
		logger:   logger.With().Str("component", "profile_extractor").Logger(),
	}
}

// Extract returns the profile for answers. Enhancer failures are logged and
// the keyword profile is returned unchanged.
func (e *Extractor) Extract(ctx context.Context, answers map[int]string) TasteProfile {
	profile := ExtractProfile(answers)

	enh, err := e.enhancer.Enhance(ctx, answers)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Sentiment enhancement failed, using keyword profile")
		return profile
	}
	if enh.Empty() {
		return profile
	}
	return applyEnhancement(&profile, enh, answers)
}

// applyEnhancement merges enh into a copy of base and regenerates the insight.
func applyEnhancement(base *TasteProfile, enh Enhancement, answers map[int]string) TasteProfile {
	p := base.Clone()

	seen := make(map[Mood]struct{}, len(p.Moods))
	for _, m := range p.Moods {
		seen[m] = struct{}{}
	}
	for _, m := range enh.Moods {
		if _, ok := ParseMood(string(m)); !ok {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		p.Moods = append(p.Moods, m)
	}

	ids := make([]int, 0, len(enh.GenreBoosts))
	for id := range enh.GenreBoosts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if boost := enh.GenreBoosts[id]; boost > 0 && id > 0 {
			p.Genres.add(id, boost)
		}
	}
	clampGenres(p.Genres)

	p.Insight = buildInsight(&p, answers)
	return p
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend turns onboarding answers into a ranked list of movies and
// series.
//
// # Architecture
//
// A recommendation run flows through five stages:
//
//   - Profile extraction: free-text answers become a TasteProfile (genre
//     weights, personality, moods, complexity) using keyword tables.
//   - Candidate aggregation: several catalog strategies run concurrently
//     (genre, keyword, era, similar, trending) and their results are merged
//     in strategy order.
//   - Deduplication: repeated items are dropped and inadmissible items
//     (no poster, no rating) are filtered out.
//   - Scoring and ranking: every candidate gets a deterministic score and a
//     short reason; the top results are returned.
//   - Fallback: when aggregation fails or yields nothing, popular titles are
//     scored and ranked instead.
//
// # Determinism
//
// Scores contain no randomness. Two runs with the same profile, seed, clock
// and catalog responses produce identical output. Variety between refreshes
// comes only from the seed, which rotates catalog pages and the trending
// window.
//
// # Failure Handling
//
// The pipeline never returns an error. Catalog failures surface as empty
// strategy results, panics inside a strategy are recovered, and a failed or
// empty aggregation switches to the fallback provider. Every degradation is
// logged with its stage and counted in metrics.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	p, err := recommend.NewPipeline(catalogClient, cfg, logger,
//	    recommend.WithEnhancer(llm))
//
//	profile, resp := p.Generate(ctx, answers)
//	more := p.Refresh(ctx, profile, true)
//
// # Thread Safety
//
// Pipeline, Aggregator, Scorer and Extractor are safe for concurrent use.
// TasteProfile values are treated as immutable once produced.
package recommend

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/enhancer"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// buildPipelineConfig overlays the user-facing settings on the pipeline
// defaults. Internal fan-out knobs keep their defaults.
func buildPipelineConfig(cfg *config.RecommendConfig) recommend.Config {
	pc := recommend.DefaultConfig()
	if cfg.MaxResults > 0 {
		pc.MaxResults = cfg.MaxResults
		pc.FallbackLimit = cfg.MaxResults
	}
	pc.MinCandidates = cfg.MinCandidates
	if cfg.MaxConcurrency > 0 {
		pc.MaxConcurrency = cfg.MaxConcurrency
	}
	if cfg.Timeout > 0 {
		pc.Timeout = cfg.Timeout
	}
	return pc
}

// initRecommend builds the recommendation pipeline over the catalog client,
// wiring the LLM enhancer when an API key is configured.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, client *catalog.Client, logger zerolog.Logger) (*recommend.Pipeline, error) {
	var opts []recommend.Option

	if cfg.Enhancer.Enabled() {
		enh, err := enhancer.New(&cfg.Enhancer)
		if err != nil {
			return nil, fmt.Errorf("create enhancer: %w", err)
		}
		opts = append(opts, recommend.WithEnhancer(enh))
		logger.Info().
			Str("model", cfg.Enhancer.Model).
			Msg("LLM sentiment enhancer enabled")
	} else {
		logger.Info().Msg("LLM sentiment enhancer disabled (ENHANCER_API_KEY not set)")
	}

	pcfg := buildPipelineConfig(&cfg.Recommend)
	pipeline, err := recommend.NewPipeline(client, pcfg, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	logger.Info().
		Int("max_results", pcfg.MaxResults).
		Int("min_candidates", pcfg.MinCandidates).
		Int("max_concurrency", pcfg.MaxConcurrency).
		Dur("timeout", pcfg.Timeout).
		Msg("Recommendation pipeline initialized")
	return pipeline, nil
}

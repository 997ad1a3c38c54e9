// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Pipeline outcomes recorded in metrics.
const (
	outcomePersonalized = "personalized"
	outcomeFallback     = "fallback"
)

// Pipeline is the recommendation entry point. It is stateless apart from the
// refresh rotation counter and safe for concurrent use.
type Pipeline struct {
	cfg        *Config
	extractor  *Extractor
	aggregator *Aggregator
	fallback   *Fallback
	now        func() time.Time
	rotation   atomic.Int64
	logger     zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*pipelineOptions)

type pipelineOptions struct {
	enhancer SentimentEnhancer
	now      func() time.Time
}

// WithEnhancer sets the sentiment enhancer used during extraction.
func WithEnhancer(e SentimentEnhancer) Option {
	return func(o *pipelineOptions) { o.enhancer = e }
}

// WithClock sets the clock used for era ranges and item age.
func WithClock(now func() time.Time) Option {
	return func(o *pipelineOptions) { o.now = now }
}

// NewPipeline creates a Pipeline over cat.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPipeline(cat Catalog, cfg Config, logger zerolog.Logger, opts ...Option) (*Pipeline, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	o := pipelineOptions{enhancer: NoopEnhancer{}, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	c := cfg.Clone()
	return &Pipeline{
		cfg:        c,
		extractor:  NewExtractor(o.enhancer, logger),
		aggregator: NewAggregator(cat, c, o.now, logger),
		fallback:   NewFallback(cat, c.FallbackLimit, logger),
		now:        o.now,
		logger:     logger.With().Str("component", "pipeline").Logger(),
	}, nil
}

// Extract builds a profile from answers without fetching recommendations.
func (p *Pipeline) Extract(ctx context.Context, answers map[int]string) TasteProfile {
	return p.extractor.Extract(ctx, answers)
}

// Generate extracts a profile from answers and returns the first page of
// recommendations for it.
func (p *Pipeline) Generate(ctx context.Context, answers map[int]string) (TasteProfile, *Response) {
	profile := p.extractor.Extract(ctx, answers)
	return profile, p.Recommend(ctx, profile, 0)
}

// Refresh re-runs recommendations for an existing profile. With forceNew the
// next rotation seed is used so catalog pages and the trending window change.
//
//nolint:gocritic // hugeParam: profile is passed by value to keep it immutable
func (p *Pipeline) Refresh(ctx context.Context, profile TasteProfile, forceNew bool) *Response {
	var seed int64
	if forceNew {
		seed = p.rotation.Add(1)
	}
	return p.Recommend(ctx, profile, seed)
}

// Recommend runs aggregation, deduplication and ranking for profile. It never
// fails: on any degradation the fallback list is returned, which may be empty.
//
//nolint:gocritic // hugeParam: profile is passed by value to keep it immutable
func (p *Pipeline) Recommend(ctx context.Context, profile TasteProfile, seed int64) *Response {
	start := time.Now()
	now := p.now()
	scorer := NewScorer(now)

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.GenerateRequestID()
	}
	log := p.logger.With().Str("request_id", requestID).Int64("seed", seed).Logger()

	resp := &Response{
		Items: []ScoredCandidate{},
		Metadata: ResponseMetadata{
			RequestID: requestID,
			Seed:      seed,
			Timestamp: now,
		},
	}

	runCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	raw, counts, err := p.aggregate(ctx, runCtx, &profile, seed)
	if err == nil && runCtx.Err() != nil {
		log.Warn().
			Int("items", len(raw)).
			Dur("timeout", p.cfg.Timeout).
			Msg("Run deadline reached, keeping partial results")
	}
	resp.Metadata.Strategies = counts
	for strategy, n := range counts {
		metrics.RecordStrategyItems(strategy, n)
	}

	reason := ""
	var candidates []catalog.Item
	switch {
	case err != nil:
		log.Warn().Err(err).Str("stage", "aggregate").Msg("Aggregation failed, using fallback")
		reason = FallbackAggregateFailed
	default:
		candidates = Dedupe(raw)
		if len(candidates) < p.cfg.MinCandidates {
			log.Warn().
				Str("stage", "dedupe").
				Int("candidates", len(candidates)).
				Int("min_candidates", p.cfg.MinCandidates).
				Msg("Too few candidates, using fallback")
			reason = FallbackNoCandidates
		}
	}

	if reason == "" {
		ranked, rankErr := p.rank(scorer, candidates, &profile)
		if rankErr == nil {
			resp.Items = ranked
			resp.TotalCandidates = len(candidates)
			p.finish(resp, start, outcomePersonalized)
			log.Debug().
				Int("candidates", len(candidates)).
				Int("results", len(ranked)).
				Int64("latency_ms", resp.Metadata.LatencyMS).
				Msg("Recommendations generated")
			return resp
		}
		log.Warn().Err(rankErr).Str("stage", "score").Msg("Scoring failed, using fallback")
		reason = FallbackScoreFailed
	}

	p.serveFallback(ctx, scorer, &profile, resp, reason, log)
	p.finish(resp, start, outcomeFallback)
	return resp
}

// aggregate runs the aggregator under runCtx and converts a panic or a
// finished caller context into an error. Expiry of runCtx alone is not an
// error: tasks cut off by the run deadline contribute nothing and the rest
// are kept.
func (p *Pipeline) aggregate(ctx, runCtx context.Context, profile *TasteProfile, seed int64) (items []catalog.Item, counts map[string]int, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecommendPanics.WithLabelValues("aggregate").Inc()
			p.logger.Error().Interface("panic", r).Msg("Aggregator panicked")
			items, counts, err = nil, nil, fmt.Errorf("aggregator panic: %v", r)
		}
	}()

	items, counts = p.aggregator.AggregateWithStats(runCtx, *profile, seed)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, counts, fmt.Errorf("aggregation interrupted: %w", ctxErr)
	}
	return items, counts, nil
}

func (p *Pipeline) rank(scorer *Scorer, items []catalog.Item, profile *TasteProfile) (ranked []ScoredCandidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecommendPanics.WithLabelValues("score").Inc()
			p.logger.Error().Interface("panic", r).Msg("Scoring panicked")
			ranked, err = nil, fmt.Errorf("scoring panic: %v", r)
		}
	}()
	return scorer.RankItems(items, *profile, p.cfg.MaxResults), nil
}

// serveFallback fills resp from the fallback provider. The fetch gets its own
// deadline so it still runs when the caller's context has expired.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (p *Pipeline) serveFallback(ctx context.Context, scorer *Scorer, profile *TasteProfile, resp *Response, reason string, log zerolog.Logger) {
	metrics.RecommendFallbacks.WithLabelValues(reason).Inc()

	fbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.FallbackTimeout)
	defer cancel()

	items := Dedupe(p.fallback.Items(fbCtx))
	ranked, err := p.rank(scorer, items, profile)
	if err != nil {
		log.Error().Err(err).Str("stage", "fallback").Msg("Fallback scoring failed")
		ranked = make([]ScoredCandidate, 0, len(items))
		for _, it := range items {
			ranked = append(ranked, ScoredCandidate{Item: it})
		}
		if len(ranked) > p.cfg.MaxResults {
			ranked = ranked[:p.cfg.MaxResults]
		}
	}
	for i := range ranked {
		if ranked[i].Reason == "" {
			ranked[i].Reason = popularNowReason
		}
	}

	resp.Items = ranked
	resp.Fallback = true
	resp.FallbackReason = reason
	resp.TotalCandidates = len(items)
	log.Info().
		Str("reason", reason).
		Int("results", len(ranked)).
		Msg("Served fallback recommendations")
}

func (p *Pipeline) finish(resp *Response, start time.Time, outcome string) {
	elapsed := time.Since(start)
	resp.Metadata.LatencyMS = elapsed.Milliseconds()
	metrics.RecordPipelineRun(outcome, elapsed, resp.TotalCandidates)
}

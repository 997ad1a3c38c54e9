// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"
)

// maxTasks bounds the number of catalog tasks a single aggregation may start.
const maxTasks = 15

// maxGenreTasks bounds the genre strategy: top genres times pages per genre.
const maxGenreTasks = 6

// eraTaskCount is the number of fixed era ranges.
const eraTaskCount = 4

// Config contains pipeline tuning.
type Config struct {
	// MaxResults is the number of ranked items returned.
	MaxResults int `json:"max_results"`

	// MinCandidates is the deduplicated candidate count below which the
	// fallback provider is used.
	MinCandidates int `json:"min_candidates"`

	// MaxConcurrency bounds the number of catalog tasks running at once.
	MaxConcurrency int `json:"max_concurrency"`

	// Timeout bounds a whole recommendation run.
	Timeout time.Duration `json:"timeout"`

	// FallbackTimeout bounds the fallback fetch. It runs on a fresh
	// deadline so a timed-out aggregation can still fall back.
	FallbackTimeout time.Duration `json:"fallback_timeout"`

	// TopGenres is the number of profile genres queried by the genre strategy.
	TopGenres int `json:"top_genres"`

	// PagesPerGenre is the number of catalog pages fetched per genre.
	PagesPerGenre int `json:"pages_per_genre"`

	// PageWindow is the number of pages the seed rotates through.
	PageWindow int `json:"page_window"`

	// KeywordPhrases is the number of keyword searches per run.
	KeywordPhrases int `json:"keyword_phrases"`

	// FallbackLimit caps the number of fallback items.
	FallbackLimit int `json:"fallback_limit"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		MaxResults:      12,
		MinCandidates:   1,
		MaxConcurrency:  12,
		Timeout:         30 * time.Second,
		FallbackTimeout: 10 * time.Second,
		TopGenres:       3,
		PagesPerGenre:   2,
		PageWindow:      5,
		KeywordPhrases:  3,
		FallbackLimit:   12,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxResults <= 0 || c.MaxResults > 50 {
		return fmt.Errorf("max_results must be between 1 and 50, got %d", c.MaxResults)
	}
	if c.MinCandidates < 0 {
		return fmt.Errorf("min_candidates must be non-negative, got %d", c.MinCandidates)
	}
	if c.MaxConcurrency <= 0 || c.MaxConcurrency > maxTasks {
		return fmt.Errorf("max_concurrency must be between 1 and %d, got %d", maxTasks, c.MaxConcurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.FallbackTimeout <= 0 {
		return fmt.Errorf("fallback_timeout must be positive, got %v", c.FallbackTimeout)
	}
	if c.TopGenres <= 0 {
		return fmt.Errorf("top_genres must be positive, got %d", c.TopGenres)
	}
	if c.PagesPerGenre <= 0 {
		return fmt.Errorf("pages_per_genre must be positive, got %d", c.PagesPerGenre)
	}
	if n := c.TopGenres * c.PagesPerGenre; n > maxGenreTasks {
		return fmt.Errorf("genre fan-out of %d tasks (top_genres x pages_per_genre) exceeds limit of %d", n, maxGenreTasks)
	}
	if c.PageWindow < c.PagesPerGenre {
		return fmt.Errorf("page_window must be at least pages_per_genre (%d), got %d", c.PagesPerGenre, c.PageWindow)
	}
	if c.KeywordPhrases <= 0 {
		return fmt.Errorf("keyword_phrases must be positive, got %d", c.KeywordPhrases)
	}
	if c.FallbackLimit <= 0 {
		return fmt.Errorf("fallback_limit must be positive, got %d", c.FallbackLimit)
	}
	if n := c.maxTaskCount(); n > maxTasks {
		return fmt.Errorf("strategy fan-out of %d tasks exceeds limit of %d", n, maxTasks)
	}
	return nil
}

// maxTaskCount is the worst-case number of tasks one aggregation starts.
func (c *Config) maxTaskCount() int {
	// era ranges, plus one task each for similar and trending
	return c.TopGenres*c.PagesPerGenre + c.KeywordPhrases + eraTaskCount + 2
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

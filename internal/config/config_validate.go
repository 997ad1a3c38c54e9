// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// MaxFanOut is the hard upper bound on concurrent catalog calls per
// recommendation run.
const MaxFanOut = 15

// Validate checks the configuration for invariant violations.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateEnhancer(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateBackup(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if c.Catalog.APIKey == "" && c.Catalog.AccessToken == "" {
		return fmt.Errorf("TMDB_API_KEY or TMDB_ACCESS_TOKEN is required")
	}
	if err := validateHTTPURL("TMDB_BASE_URL", c.Catalog.BaseURL); err != nil {
		return err
	}
	if c.Catalog.RequestTimeout <= 0 {
		return fmt.Errorf("TMDB_REQUEST_TIMEOUT must be positive")
	}
	if c.Catalog.RateLimit <= 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must be positive")
	}
	if c.Catalog.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_BURST must be at least 1")
	}
	if c.Catalog.CacheSize < 0 {
		return fmt.Errorf("TMDB_CACHE_SIZE must not be negative")
	}
	if c.Catalog.BreakerTimeout <= 0 {
		return fmt.Errorf("TMDB_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxResults < 1 || r.MaxResults > 50 {
		return fmt.Errorf("RECOMMEND_MAX_RESULTS must be between 1 and 50")
	}
	if r.MinCandidates < 0 {
		return fmt.Errorf("RECOMMEND_MIN_CANDIDATES must not be negative")
	}
	if r.MaxConcurrency < 1 || r.MaxConcurrency > MaxFanOut {
		return fmt.Errorf("RECOMMEND_MAX_CONCURRENCY must be between 1 and %d", MaxFanOut)
	}
	if r.Timeout <= 0 {
		return fmt.Errorf("RECOMMEND_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateEnhancer() error {
	if !c.Enhancer.Enabled() {
		return nil
	}
	if err := validateHTTPURL("ENHANCER_BASE_URL", c.Enhancer.BaseURL); err != nil {
		return err
	}
	if c.Enhancer.Model == "" {
		return fmt.Errorf("ENHANCER_MODEL is required when ENHANCER_API_KEY is set")
	}
	if c.Enhancer.Timeout <= 0 {
		return fmt.Errorf("ENHANCER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY is true")
	}
	if c.Store.GCInterval <= 0 {
		return fmt.Errorf("STORE_GC_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateBackup() error {
	if !c.Backup.Enabled {
		return nil
	}
	if c.Store.InMemory {
		return fmt.Errorf("BACKUP_ENABLED requires a disk store (STORE_IN_MEMORY=false)")
	}
	if strings.TrimSpace(c.Backup.Dir) == "" {
		return fmt.Errorf("BACKUP_DIR is required when backups are enabled")
	}
	if c.Backup.Interval < time.Minute {
		return fmt.Errorf("BACKUP_INTERVAL must be at least 1m")
	}
	if c.Backup.Retain < 1 {
		return fmt.Errorf("BACKUP_RETAIN must be at least 1")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func validateHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", name)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", name)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

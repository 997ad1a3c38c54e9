// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Enhancer  EnhancerConfig  `koanf:"enhancer"`
	Store     StoreConfig     `koanf:"store"`
	Backup    BackupConfig    `koanf:"backup"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig holds the external movie/TV catalog connection settings.
// Exactly one of APIKey or AccessToken is normally set; when both are
// present the bearer token wins.
type CatalogConfig struct {
	BaseURL        string        `koanf:"base_url"`
	APIKey         string        `koanf:"api_key"`
	AccessToken    string        `koanf:"access_token"`
	Language       string        `koanf:"language"`
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// RateLimit is the sustained outbound request rate (requests/second).
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	CacheTTL  time.Duration `koanf:"cache_ttl"`
	CacheSize int           `koanf:"cache_size"`

	// Circuit breaker settings.
	BreakerMaxRequests uint32        `koanf:"breaker_max_requests"`
	BreakerInterval    time.Duration `koanf:"breaker_interval"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
}

// RecommendConfig holds recommendation pipeline settings.
type RecommendConfig struct {
	// MaxResults bounds the ranked output list.
	MaxResults int `koanf:"max_results"`

	// MinCandidates is the deduplicated pool size below which the
	// popular-titles fallback replaces the ranked list.
	MinCandidates int `koanf:"min_candidates"`

	// MaxConcurrency limits simultaneous catalog calls per invocation.
	MaxConcurrency int `koanf:"max_concurrency"`

	// Timeout bounds a whole pipeline run.
	Timeout time.Duration `koanf:"timeout"`
}

// EnhancerConfig configures the optional LLM sentiment enhancer.
// The enhancer is only wired when APIKey is non-empty.
type EnhancerConfig struct {
	BaseURL     string        `koanf:"base_url"`
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	Timeout     time.Duration `koanf:"timeout"`
	Temperature float64       `koanf:"temperature"`
}

// Enabled reports whether an enhancer should be wired.
func (e EnhancerConfig) Enabled() bool {
	return e.APIKey != ""
}

// StoreConfig configures the per-user persistence store.
type StoreConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	SyncWrites bool          `koanf:"sync_writes"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// BackupConfig configures scheduled store snapshots.
type BackupConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Dir      string        `koanf:"dir"`
	Interval time.Duration `koanf:"interval"`

	// Retain is the number of newest snapshots kept.
	Retain int `koanf:"retain"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds request throttling and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

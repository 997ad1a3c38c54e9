// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the location of the optional .env file.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:            "https://api.themoviedb.org/3",
			Language:           "en-US",
			RequestTimeout:     8 * time.Second,
			RateLimit:          35,
			RateBurst:          10,
			CacheTTL:           10 * time.Minute,
			CacheSize:          2000,
			BreakerMaxRequests: 3,
			BreakerInterval:    time.Minute,
			BreakerTimeout:     30 * time.Second,
		},
		Recommend: RecommendConfig{
			MaxResults:     12,
			MinCandidates:  1,
			MaxConcurrency: 12,
			Timeout:        30 * time.Second,
		},
		Enhancer: EnhancerConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			Timeout:     15 * time.Second,
			Temperature: 0,
		},
		Store: StoreConfig{
			Path:       "/data/reelmatch",
			InMemory:   false,
			SyncWrites: true,
			GCInterval: 10 * time.Minute,
		},
		Backup: BackupConfig{
			Enabled:  false,
			Dir:      "/data/backups",
			Interval: 24 * time.Hour,
			Retain:   7,
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates the result.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv populates the process environment from a .env file when one
// exists. Existing variables take precedence.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists koanf paths that accept comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated string values into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Catalog
	"tmdb_api_key":              "catalog.api_key",
	"tmdb_access_token":         "catalog.access_token",
	"tmdb_base_url":             "catalog.base_url",
	"tmdb_language":             "catalog.language",
	"tmdb_request_timeout":      "catalog.request_timeout",
	"tmdb_rate_limit":           "catalog.rate_limit",
	"tmdb_rate_burst":           "catalog.rate_burst",
	"tmdb_cache_ttl":            "catalog.cache_ttl",
	"tmdb_cache_size":           "catalog.cache_size",
	"tmdb_breaker_max_requests": "catalog.breaker_max_requests",
	"tmdb_breaker_interval":     "catalog.breaker_interval",
	"tmdb_breaker_timeout":      "catalog.breaker_timeout",

	// Recommendations
	"recommend_max_results":     "recommend.max_results",
	"recommend_min_candidates":  "recommend.min_candidates",
	"recommend_max_concurrency": "recommend.max_concurrency",
	"recommend_timeout":         "recommend.timeout",

	// Sentiment enhancer
	"enhancer_api_key":     "enhancer.api_key",
	"enhancer_base_url":    "enhancer.base_url",
	"enhancer_model":       "enhancer.model",
	"enhancer_timeout":     "enhancer.timeout",
	"enhancer_temperature": "enhancer.temperature",

	// Store
	"store_path":        "store.path",
	"store_in_memory":   "store.in_memory",
	"store_sync_writes": "store.sync_writes",
	"store_gc_interval": "store.gc_interval",

	// Backup
	"backup_enabled":  "backup.enabled",
	"backup_dir":      "backup.dir",
	"backup_interval": "backup.interval",
	"backup_retain":   "backup.retain",

	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are skipped so unrelated environment
// variables never leak into the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

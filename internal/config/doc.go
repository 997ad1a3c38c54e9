// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config provides layered configuration for ReelMatch.

Configuration is assembled by koanf in increasing order of priority:

 1. Struct defaults (defaultConfig)
 2. A YAML file from CONFIG_PATH or one of DefaultConfigPaths
 3. Environment variables, mapped explicitly by envTransformFunc

A .env file (DOTENV_PATH, default ".env") is read with godotenv before the
environment layer is applied. Variables already present in the process
environment are never overwritten by the .env file.

# Environment Variables

Catalog:
  - TMDB_API_KEY: v3 API key sent as the api_key query parameter
  - TMDB_ACCESS_TOKEN: v4 read access token sent as a bearer token
  - TMDB_BASE_URL: API root (default: https://api.themoviedb.org/3)
  - TMDB_REQUEST_TIMEOUT: per-call timeout (default: 8s)
  - TMDB_RATE_LIMIT / TMDB_RATE_BURST: outbound limiter (default: 35 rps, burst 10)
  - TMDB_CACHE_TTL / TMDB_CACHE_SIZE: response cache (default: 10m, 2000 entries)

Recommendations:
  - RECOMMEND_MAX_RESULTS (default: 12)
  - RECOMMEND_MIN_CANDIDATES (default: 1)
  - RECOMMEND_MAX_CONCURRENCY (default: 12, at most 15)
  - RECOMMEND_TIMEOUT (default: 30s)

Sentiment enhancer (disabled unless a key is set):
  - ENHANCER_API_KEY, ENHANCER_BASE_URL, ENHANCER_MODEL, ENHANCER_TIMEOUT

Storage:
  - STORE_PATH (default: /data/reelmatch), STORE_IN_MEMORY (default: false)
  - STORE_SYNC_WRITES (default: true), STORE_GC_INTERVAL (default: 10m)

Server and security:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, SHUTDOWN_TIMEOUT, ENVIRONMENT
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config

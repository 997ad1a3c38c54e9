// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the entry point for the ReelMatch server.

ReelMatch turns a short onboarding questionnaire into a taste profile and
ranks movies and series from a TMDB-compatible catalog against it. Users
keep a watchlist, ratings and favorite people alongside their profile.

# Application Architecture

	RootSupervisor ("reelmatch")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   ├── Catalog cache janitor
	│   ├── Badger value-log GC (disk store only)
	│   └── Backup scheduler (BACKUP_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml, .env and environment
 2. Logging: zerolog with JSON/console output modes
 3. Catalog client: rate limited, cached, behind a circuit breaker
 4. Pipeline: profile extraction, candidate aggregation, ranking
 5. Store: BadgerDB per-user collections
 6. HTTP Server: Chi router with middleware stack
 7. Supervisor Tree: Suture v4 process supervision

# Configuration

Required:
  - TMDB_API_KEY or TMDB_ACCESS_TOKEN: catalog credentials

Optional:
  - ENHANCER_API_KEY: enables the LLM sentiment enhancer
  - STORE_PATH: Badger directory (default /data/reelmatch)
  - STORE_IN_MEMORY: keep user data in memory only
  - BACKUP_ENABLED, BACKUP_DIR, BACKUP_INTERVAL, BACKUP_RETAIN: snapshots
  - HTTP_PORT: listen port (default 8080)
  - LOG_LEVEL, LOG_FORMAT: logging output

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests within SHUTDOWN_TIMEOUT, then the store is closed.

# Example Usage

	export TMDB_API_KEY=your-tmdb-key
	export STORE_PATH=./data
	./reelmatch
*/
package main

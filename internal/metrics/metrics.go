// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package metrics exposes the Prometheus collectors shared by ReelMatch
// components. Collectors are registered on the default registry at init
// and served by promhttp on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Catalog Client Metrics
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of external catalog calls",
		},
		[]string{"operation", "result"}, // result: "success", "error", "cached"
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "External catalog call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
		},
		[]string{"operation"},
	)

	CatalogItemsReturned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_items_returned_total",
			Help: "Total number of normalized items returned by catalog calls",
		},
		[]string{"operation"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (capacity or TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation Pipeline Metrics
	RecommendRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_runs_total",
			Help: "Total number of recommendation pipeline runs",
		},
		[]string{"outcome"}, // outcome: "ranked", "fallback", "empty"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "End-to-end recommendation pipeline duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 30},
		},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Number of deduplicated candidates per pipeline run",
			Buckets: []float64{0, 1, 10, 25, 50, 100, 200, 400},
		},
	)

	RecommendStrategyItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_strategy_items_total",
			Help: "Items contributed to the candidate pool per strategy",
		},
		[]string{"strategy"},
	)

	RecommendFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_fallbacks_total",
			Help: "Total number of fallback substitutions by reason",
		},
		[]string{"reason"},
	)

	RecommendPanics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_panics_recovered_total",
			Help: "Panics recovered inside the recommendation pipeline",
		},
		[]string{"stage"},
	)

	// Sentiment Enhancer Metrics
	EnhancerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enhancer_requests_total",
			Help: "Total number of sentiment enhancer calls",
		},
		[]string{"result"},
	)

	// Store Metrics
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of persistence store operations",
		},
		[]string{"collection", "operation", "result"},
	)

	// Backup Metrics
	BackupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backups_total",
			Help: "Total number of store snapshots attempted",
		},
		[]string{"result"}, // success, error
	)

	BackupSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backup_last_size_bytes",
			Help: "Compressed size of the most recent successful snapshot",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCatalogRequest records one catalog call. A nil error counts as success.
func RecordCatalogRequest(operation string, duration time.Duration, items int, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	CatalogRequestsTotal.WithLabelValues(operation, result).Inc()
	CatalogRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if items > 0 {
		CatalogItemsReturned.WithLabelValues(operation).Add(float64(items))
	}
}

// RecordCatalogCacheHit records a catalog call answered from cache.
func RecordCatalogCacheHit(operation string, items int) {
	CatalogRequestsTotal.WithLabelValues(operation, "cached").Inc()
	if items > 0 {
		CatalogItemsReturned.WithLabelValues(operation).Add(float64(items))
	}
}

// RecordPipelineRun records the outcome of one recommendation run.
func RecordPipelineRun(outcome string, duration time.Duration, candidates int) {
	RecommendRuns.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	RecommendCandidates.Observe(float64(candidates))
}

// RecordStrategyItems adds the number of items a strategy contributed.
func RecordStrategyItems(strategy string, items int) {
	RecommendStrategyItems.WithLabelValues(strategy).Add(float64(items))
}

// RecordStoreOperation records a store call. A nil error counts as success.
func RecordStoreOperation(collection, operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	StoreOperations.WithLabelValues(collection, operation, result).Inc()
}

// RecordBackup records a snapshot attempt and, on success, its size.
func RecordBackup(size int64, err error) {
	if err != nil {
		BackupsTotal.WithLabelValues("error").Inc()
		return
	}
	BackupsTotal.WithLabelValues("success").Inc()
	BackupSizeBytes.Set(float64(size))
}

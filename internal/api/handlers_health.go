// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	StoreOK        bool    `json:"store_ok"`
	CatalogBreaker string  `json:"catalog_breaker,omitempty"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// Health handles GET /api/v1/health. The service is unhealthy when the
// store is unusable and degraded while the catalog breaker is open; the
// pipeline still answers from fallback in that state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	health := HealthStatus{
		Status:        "healthy",
		Version:       h.version,
		StoreOK:       h.store.Ping(ctx) == nil,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if h.catalog != nil {
		health.CatalogBreaker = h.catalog.BreakerState()
	}

	switch {
	case !health.StoreOK:
		health.Status = "unhealthy"
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Store unavailable", health)
		return
	case health.CatalogBreaker == "open":
		health.Status = "degraded"
	}
	rw.Success(health)
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides HTTP middleware shared by the API router.

All middleware has the chi signature func(http.Handler) http.Handler and is
installed with r.Use:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(2 * time.Second))
	r.Use(middleware.PrometheusMetrics)

Components:

  - RequestID: accepts or generates X-Request-ID and stores it in the
    context for logging.Ctx
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by chi route pattern
  - AccessLog: one structured log line per request, promoted to warn for
    slow requests and error for 5xx responses

Route patterns are only known after chi has routed the request, so both
PrometheusMetrics and AccessLog read them after calling the next handler.
*/
package middleware

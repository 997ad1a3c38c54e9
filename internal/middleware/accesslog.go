// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// AccessLog logs one line per request. Requests slower than slow are logged
// at warn level; server errors at error level; everything else at debug.
// A zero slow threshold disables the slow-request promotion.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			var event *zerolog.Event
			switch {
			case sw.status >= http.StatusInternalServerError:
				event = logging.Ctx(r.Context()).Error()
			case slow > 0 && elapsed > slow:
				event = logging.Ctx(r.Context()).Warn().Dur("threshold", slow)
			default:
				event = logging.Ctx(r.Context()).Debug()
			}
			event.
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Int("status", sw.status).
				Dur("duration", elapsed).
				Msg("HTTP request")
		})
	}
}

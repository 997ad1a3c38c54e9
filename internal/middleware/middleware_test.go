// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated when absent", "", false},
		{"kept from upstream", "edge-7f3a", true},
		{"replaced when too long", strings.Repeat("a", maxRequestIDLen+1), false},
		{"replaced when not printable", "bad id\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var inContext string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inContext = logging.RequestIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got != inContext {
				t.Errorf("header %q != context %q", got, inContext)
			}
			if tt.keep {
				if got != tt.incoming {
					t.Errorf("request ID = %q, want %q", got, tt.incoming)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("request ID %q is not a UUID: %v", got, err)
			}
		})
	}
}

// Not parallel: reads process-wide counters.
func TestPrometheusMetrics_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/users/{userKey}/things", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/users/{userKey}/things", "418")
	before := testutil.ToFloat64(counter)

	for _, user := range []string{"alice", "bob"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+user+"/things", nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("status = %d", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("counter delta = %v, want 2", got)
	}

	unmatched := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	before = testutil.ToFloat64(unmatched)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if got := testutil.ToFloat64(unmatched) - before; got != 1 {
		t.Errorf("unmatched delta = %v, want 1", got)
	}
}

func TestStatusWriter_FirstStatusWins(t *testing.T) {
	t.Parallel()

	sw := &statusWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	_, _ = sw.Write([]byte("body"))
	sw.WriteHeader(http.StatusInternalServerError)
	if sw.status != http.StatusOK {
		t.Errorf("status = %d, want 200 after implicit write", sw.status)
	}
}

func TestAccessLog_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		delay   time.Duration
		slow    time.Duration
		wantLvl string
	}{
		{"fast ok", http.StatusOK, 0, time.Second, "debug"},
		{"slow ok", http.StatusOK, 15 * time.Millisecond, 5 * time.Millisecond, "warn"},
		{"server error", http.StatusBadGateway, 0, time.Second, "error"},
		{"threshold disabled", http.StatusOK, 15 * time.Millisecond, 0, "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

			r := chi.NewRouter()
			r.Use(AccessLog(tt.slow))
			r.Get("/x", func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(tt.delay)
				w.WriteHeader(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req = req.WithContext(logging.ContextWithLogger(req.Context(), logger))
			r.ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.wantLvl+`"`) {
				t.Errorf("log = %s, want level %s", out, tt.wantLvl)
			}
			if !strings.Contains(out, `"route":"/x"`) {
				t.Errorf("log = %s, want route /x", out)
			}
		})
	}
}

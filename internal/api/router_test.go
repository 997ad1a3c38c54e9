// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/store"
)

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	status, env := s.do(t, http.MethodGet, "/api/v1/nope", nil)
	wantError(t, status, env, http.StatusNotFound, ErrCodeNotFound)

	status, env = s.do(t, http.MethodDelete, "/api/v1/onboarding", nil)
	wantError(t, status, env, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "trace-42" {
		t.Errorf("X-Request-ID = %q, want trace-42", got)
	}
	if !strings.Contains(rec.Body.String(), `"request_id":"trace-42"`) {
		t.Errorf("body = %s, want request id in meta", rec.Body.String())
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFrom(&config.SecurityConfig{RateLimitReqs: 2, RateLimitWindow: time.Minute})
	s := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		if status, _ := s.do(t, http.MethodGet, "/api/v1/health", nil); status != http.StatusOK {
			t.Fatalf("request %d status = %d", i, status)
		}
	}
	status, env := s.do(t, http.MethodGet, "/api/v1/health", nil)
	wantError(t, status, env, http.StatusTooManyRequests, ErrCodeTooManyRequests)

	// /metrics is outside the limited prefix.
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Errorf("/metrics status = %d", rec.Code)
	}
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.CORSAllowedOrigins = []string{"https://app.example.com"}
	s := newTestServer(t, cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/onboarding", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		breaker    string
		closeStore bool
		wantStatus int
		wantHealth string
	}{
		{"healthy", "closed", false, http.StatusOK, "healthy"},
		{"breaker open", "open", false, http.StatusOK, "degraded"},
		{"store closed", "closed", true, http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st, err := store.OpenInMemory()
			if err != nil {
				t.Fatal(err)
			}
			if tt.closeStore {
				_ = st.Close()
			} else {
				t.Cleanup(func() { _ = st.Close() })
			}

			mw := DefaultChiMiddlewareConfig()
			mw.RateLimitDisabled = true
			s := &testServer{handler: NewRouter(NewHandler(&fakeRecommender{}, st, fakeCatalog{state: tt.breaker}), NewChiMiddleware(mw))}

			status, env := s.do(t, http.MethodGet, "/api/v1/health", nil)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}

			var health HealthStatus
			if env.Success {
				health = decodeData[HealthStatus](t, env)
			} else {
				raw, _ := env.Error.Details.(map[string]any)
				health.Status, _ = raw["status"].(string)
			}
			if health.Status != tt.wantHealth {
				t.Errorf("health = %q, want %q", health.Status, tt.wantHealth)
			}
		})
	}
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/store"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeRecommender struct {
	mu           sync.Mutex
	refreshCalls []bool
	refreshed    []recommend.TasteProfile
}

func (f *fakeRecommender) Generate(_ context.Context, answers map[int]string) (recommend.TasteProfile, *recommend.Response) {
	return recommend.ExtractProfile(answers), &recommend.Response{
		Items: []recommend.ScoredCandidate{{
			Item:   catalog.Item{ID: 949, Kind: catalog.KindMovie, Title: "Heat", Rating: 8.3, PosterPath: "/heat.jpg"},
			Score:  150,
			Reason: "Highly rated (8.3/10)",
		}},
		TotalCandidates: 1,
	}
}

func (f *fakeRecommender) Refresh(_ context.Context, profile recommend.TasteProfile, forceNew bool) *recommend.Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls = append(f.refreshCalls, forceNew)
	f.refreshed = append(f.refreshed, profile)
	return &recommend.Response{Items: []recommend.ScoredCandidate{}, Fallback: true, FallbackReason: recommend.FallbackNoCandidates}
}

type fakeCatalog struct{ state string }

func (f fakeCatalog) BreakerState() string { return f.state }

type testServer struct {
	handler http.Handler
	store   *store.Store
	rec     *fakeRecommender
}

func newTestServer(t *testing.T, mwCfg *ChiMiddlewareConfig) *testServer {
	t.Helper()

	st, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}

	rec := &fakeRecommender{}
	h := NewHandler(rec, st, fakeCatalog{state: "closed"}, WithClock(func() time.Time { return testNow }), WithVersion("test"))
	return &testServer{handler: NewRouter(h, NewChiMiddleware(mwCfg)), store: st, rec: rec}
}

// envelope mirrors APIResponse with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode envelope %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
	return v
}

func wantError(t *testing.T, status int, env envelope, wantStatus int, wantCode string) {
	t.Helper()
	if status != wantStatus {
		t.Errorf("status = %d, want %d", status, wantStatus)
	}
	if env.Success || env.Error == nil || env.Error.Code != wantCode {
		t.Errorf("envelope = %+v, want error %s", env, wantCode)
	}
}

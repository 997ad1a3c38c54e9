// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
)

func testConfig(baseURL string) *config.CatalogConfig {
	return &config.CatalogConfig{
		BaseURL:        baseURL,
		APIKey:         "test-api-key",
		Language:       "en-US",
		RequestTimeout: 2 * time.Second,
		RateLimit:      1000,
		RateBurst:      100,
		CacheTTL:       time.Minute,
		CacheSize:      100,
	}
}

// fakeCatalog serves canned bodies per path and counts hits.
type fakeCatalog struct {
	routes map[string]func(w http.ResponseWriter, r *http.Request)
	hits   atomic.Int32
	server *httptest.Server
}

func newFakeCatalog(t *testing.T) *fakeCatalog {
	t.Helper()
	f := &fakeCatalog{routes: map[string]func(http.ResponseWriter, *http.Request){}}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		handler, ok := f.routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status_message":"The resource you requested could not be found."}`))
			return
		}
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCatalog) json(path, body string) {
	f.routes[path] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func (f *fakeCatalog) handle(path string, h func(w http.ResponseWriter, r *http.Request)) {
	f.routes[path] = h
}

func checkStringEqual(t *testing.T, name, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %q, want %q", name, got, want)
	}
}

func checkIntEqual(t *testing.T, name string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", name, got, want)
	}
}

func checkSliceLen[T any](t *testing.T, name string, s []T, want int) {
	t.Helper()
	if len(s) != want {
		t.Fatalf("len(%s) = %d, want %d", name, len(s), want)
	}
}

const moviePageResponse = `{
  "page": 1,
  "results": [
    {
      "id": 550,
      "title": "Fight Club",
      "poster_path": "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
      "vote_average": 8.4,
      "vote_count": 28000,
      "popularity": 61.4,
      "genre_ids": [18, 53],
      "release_date": "1999-10-15",
      "overview": "A ticking-time-bomb insomniac..."
    },
    {
      "id": 27205,
      "title": "Inception",
      "poster_path": "/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg",
      "vote_average": 8.4,
      "vote_count": 35000,
      "popularity": 90.1,
      "genre_ids": [28, 878, 12],
      "release_date": "2010-07-15"
    }
  ],
  "total_results": 2
}`

const trendingMixedResponse = `{
  "page": 1,
  "results": [
    {"id": 1396, "media_type": "tv", "name": "Breaking Bad", "poster_path": "/bb.jpg",
     "vote_average": 8.9, "vote_count": 13000, "popularity": 300.5,
     "genre_ids": [18, 80], "first_air_date": "2008-01-20"},
    {"id": 287, "media_type": "person", "name": "Brad Pitt", "popularity": 40},
    {"id": 603, "media_type": "movie", "title": "The Matrix", "poster_path": "/m.jpg",
     "vote_average": 8.2, "vote_count": 25000, "popularity": 80.2,
     "genre_ids": [28, 878], "release_date": "1999-03-31"},
    {"id": 1399, "media_type": "tv", "name": "Game of Thrones", "poster_path": null,
     "vote_average": 8.4, "vote_count": 22000, "popularity": 250,
     "genre_ids": [10765, 18, 10759], "first_air_date": "not-a-date"}
  ]
}`

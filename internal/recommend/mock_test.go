// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// testNow is the fixed clock used across the package tests.
var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// mockCatalog implements Catalog for testing. Zero values return nothing.
type mockCatalog struct {
	byGenre   map[int][]catalog.Item
	byKeyword map[string][]catalog.Item
	byEra     map[int][]catalog.Item // keyed by start year
	trending  map[catalog.TrendingWindow][]catalog.Item
	popular   map[catalog.MediaKind][]catalog.Item
	similar   map[int][]catalog.Item
	search    map[string][]catalog.Item

	panicOn string
	delay   time.Duration
	slowOp  string // when set, only this operation is delayed

	mu          sync.Mutex
	genrePages  []int
	keywords    []string
	windows     []catalog.TrendingWindow
	similarRefs []string
	calls       int32
	inFlight    int32
	maxInFlight int32
}

// enter records a call to op. It reports false when ctx ends during the
// configured delay, in which case the caller returns nothing.
func (m *mockCatalog) enter(ctx context.Context, op string) bool {
	atomic.AddInt32(&m.calls, 1)
	n := atomic.AddInt32(&m.inFlight, 1)
	for {
		peak := atomic.LoadInt32(&m.maxInFlight)
		if n <= peak || atomic.CompareAndSwapInt32(&m.maxInFlight, peak, n) {
			break
		}
	}
	if m.delay > 0 && (m.slowOp == "" || m.slowOp == op) {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return false
		}
	}
	if m.panicOn == op {
		panic("mock catalog panic in " + op)
	}
	return true
}

func (m *mockCatalog) leave() {
	atomic.AddInt32(&m.inFlight, -1)
}

func (m *mockCatalog) ByGenre(ctx context.Context, genreIDs []int, page int) []catalog.Item {
	defer m.leave()
	if !m.enter(ctx, "ByGenre") {
		return nil
	}
	m.mu.Lock()
	m.genrePages = append(m.genrePages, page)
	m.mu.Unlock()
	if len(genreIDs) == 0 {
		return nil
	}
	return m.byGenre[genreIDs[0]]
}

func (m *mockCatalog) ByKeyword(ctx context.Context, text string) []catalog.Item {
	defer m.leave()
	if !m.enter(ctx, "ByKeyword") {
		return nil
	}
	m.mu.Lock()
	m.keywords = append(m.keywords, text)
	m.mu.Unlock()
	return m.byKeyword[text]
}

func (m *mockCatalog) Trending(ctx context.Context, window catalog.TrendingWindow, _ int) []catalog.Item {
	defer m.leave()
	if !m.enter(ctx, "Trending") {
		return nil
	}
	m.mu.Lock()
	m.windows = append(m.windows, window)
	m.mu.Unlock()
	return m.trending[window]
}

func (m *mockCatalog) Popular(ctx context.Context, kind catalog.MediaKind, _ int) []catalog.Item {
	defer m.leave()
	if !m.enter(ctx, "Popular") {
		return nil
	}
	return m.popular[kind]
}

func (m *mockCatalog) SimilarTo(ctx context.Context, kind catalog.MediaKind, id int) []catalog.Item {
	defer m.leave()
	if !m.enter(ctx, "SimilarTo") {
		return nil
	}
	m.mu.Lock()
	m.similarRefs = append(m.similarRefs, fmt.Sprintf("%s:%d", kind, id))
	m.mu.Unlock()
	return m.similar[id]
}

func (m *mockCatalog) DiscoverByDateRange(ctx context.Context, startYear, _, _ int) []catalog.Item {
	defer m.leave()
	if !m.enter(ctx, "DiscoverByDateRange") {
		return nil
	}
	return m.byEra[startYear]
}

func (m *mockCatalog) SearchTitle(ctx context.Context, title string) []catalog.Item {
	defer m.leave()
	if !m.enter(ctx, "SearchTitle") {
		return nil
	}
	return m.search[title]
}

// movie builds an admissible movie released in year.
func movie(id int, rating float64, year int, genres ...int) catalog.Item {
	return catalog.Item{
		ID:          id,
		Title:       fmt.Sprintf("Movie %d", id),
		Kind:        catalog.KindMovie,
		PosterPath:  fmt.Sprintf("/p%d.jpg", id),
		Rating:      rating,
		VoteCount:   1500,
		Popularity:  50,
		GenreIDs:    genres,
		ReleaseDate: time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func series(id int, rating float64, year int, genres ...int) catalog.Item {
	it := movie(id, rating, year, genres...)
	it.Kind = catalog.KindSeries
	it.Title = fmt.Sprintf("Series %d", id)
	return it
}

func testPipeline(t *testing.T, cat Catalog, opts ...Option) *Pipeline {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	p, err := NewPipeline(cat, DefaultConfig(), zerolog.Nop(), opts...)
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	return p
}

func assertSortedDesc(t *testing.T, items []ScoredCandidate) {
	t.Helper()
	for i := 1; i < len(items); i++ {
		if items[i].Score > items[i-1].Score {
			t.Errorf("items not sorted: [%d].Score=%v > [%d].Score=%v", i, items[i].Score, i-1, items[i-1].Score)
		}
	}
}

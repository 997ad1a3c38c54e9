// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

func TestFallback_Items(t *testing.T) {
	t.Parallel()

	noPoster := movie(3, 9, 2020)
	noPoster.PosterPath = ""
	cat := &mockCatalog{popular: map[catalog.MediaKind][]catalog.Item{
		catalog.KindMovie:  {movie(1, 7.5, 2020), movie(2, 7.0, 2020), noPoster, movie(4, 8.1, 2020)},
		catalog.KindSeries: {series(10, 8.8, 2020), series(11, 6.0, 2020)},
	}}

	got := NewFallback(cat, 12, zerolog.Nop()).Items(context.Background())
	want := []string{"movie:1", "movie:4", "series:10"}
	if !reflect.DeepEqual(keys(got), want) {
		t.Errorf("Items() = %v, want %v", keys(got), want)
	}
}

func TestFallback_Cap(t *testing.T) {
	t.Parallel()

	var movies, shows []catalog.Item
	for i := 1; i <= 10; i++ {
		movies = append(movies, movie(i, 8, 2020))
		shows = append(shows, series(100+i, 8, 2020))
	}
	cat := &mockCatalog{popular: map[catalog.MediaKind][]catalog.Item{catalog.KindMovie: movies, catalog.KindSeries: shows}}

	got := NewFallback(cat, 12, zerolog.Nop()).Items(context.Background())
	if len(got) != 12 {
		t.Fatalf("len = %d, want 12", len(got))
	}
	if got[9].Kind != catalog.KindMovie || got[10].Kind != catalog.KindSeries {
		t.Errorf("movies must precede series: %v", keys(got))
	}
}

func TestFallback_UpstreamFailure(t *testing.T) {
	t.Parallel()

	got := NewFallback(&mockCatalog{panicOn: "Popular"}, 12, zerolog.Nop()).Items(context.Background())
	if len(got) != 0 {
		t.Errorf("Items() = %v, want empty", keys(got))
	}
}

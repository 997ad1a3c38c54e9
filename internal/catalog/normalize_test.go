// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		raw         rawItem
		defaultKind MediaKind
		wantOK      bool
		wantKind    MediaKind
		wantTitle   string
		wantYear    int
	}{
		{
			name:        "movie on single-kind endpoint",
			raw:         rawItem{ID: 1, Title: "Alien", ReleaseDate: "1979-05-25"},
			defaultKind: KindMovie,
			wantOK:      true, wantKind: KindMovie, wantTitle: "Alien", wantYear: 1979,
		},
		{
			name:        "series on single-kind endpoint",
			raw:         rawItem{ID: 2, Name: "Dark", FirstAirDate: "2017-12-01"},
			defaultKind: KindSeries,
			wantOK:      true, wantKind: KindSeries, wantTitle: "Dark", wantYear: 2017,
		},
		{
			name:        "media_type overrides default",
			raw:         rawItem{ID: 3, MediaType: "tv", Name: "Severance", FirstAirDate: "2022-02-18"},
			defaultKind: KindMovie,
			wantOK:      true, wantKind: KindSeries, wantTitle: "Severance", wantYear: 2022,
		},
		{
			name:        "series missing name falls back to title",
			raw:         rawItem{ID: 4, MediaType: "tv", Title: "Odd Shape"},
			defaultKind: KindMovie,
			wantOK:      true, wantKind: KindSeries, wantTitle: "Odd Shape",
		},
		{
			name:        "person dropped",
			raw:         rawItem{ID: 5, MediaType: "person", Name: "Someone"},
			defaultKind: KindMovie,
		},
		{
			name:        "zero id dropped",
			raw:         rawItem{Title: "Ghost"},
			defaultKind: KindMovie,
		},
		{
			name:        "bad date tolerated",
			raw:         rawItem{ID: 6, Title: "Undated", ReleaseDate: "soon"},
			defaultKind: KindMovie,
			wantOK:      true, wantKind: KindMovie, wantTitle: "Undated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.raw
			got, ok := normalize(&raw, tt.defaultKind)
			if ok != tt.wantOK {
				t.Fatalf("normalize() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			checkStringEqual(t, "kind", string(got.Kind), string(tt.wantKind))
			checkStringEqual(t, "title", got.Title, tt.wantTitle)
			checkIntEqual(t, "year", got.Year(), tt.wantYear)
		})
	}
}

func TestNormalize_ClampsNegativeNumbers(t *testing.T) {
	raw := rawItem{ID: 1, Title: "Broken", VoteAverage: -1, VoteCount: -5, Popularity: -3}
	got, ok := normalize(&raw, KindMovie)
	if !ok {
		t.Fatal("expected item")
	}
	if got.Rating != 0 || got.VoteCount != 0 || got.Popularity != 0 {
		t.Errorf("negative values should clamp to zero, got %+v", got)
	}
}

func TestFoldGenres(t *testing.T) {
	got := foldGenres([]int{10759, 28, 10762, 18, 10751})
	want := []int{GenreAction, GenreAdventure, GenreFamily, GenreDrama}
	if len(got) != len(want) {
		t.Fatalf("foldGenres() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("foldGenres() = %v, want %v", got, want)
		}
	}
}

func TestItem_Helpers(t *testing.T) {
	it := Item{
		ID:          42,
		Kind:        KindSeries,
		PosterPath:  "/p.jpg",
		Rating:      7.1,
		GenreIDs:    []int{GenreDrama, GenreCrime},
		ReleaseDate: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	checkStringEqual(t, "Key", it.Key(), "series:42")
	checkStringEqual(t, "PosterURL", it.PosterURL(), ImageBaseURL+"/p.jpg")
	if !it.Admissible() {
		t.Error("item with poster and rating should be admissible")
	}
	if !it.HasAnyGenre(GenreHorror, GenreCrime) {
		t.Error("HasAnyGenre should match crime")
	}
	if it.HasAnyGenre(GenreHorror, GenreWestern) {
		t.Error("HasAnyGenre should not match")
	}

	noRating := it
	noRating.Rating = 0
	if noRating.Admissible() {
		t.Error("zero rating must not be admissible")
	}
}

func TestItem_MarshalJSON_ReleaseDate(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		wantDate bool
	}{
		{"known date", time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC), true},
		{"unknown date", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := Item{ID: 949, Title: "Heat", Kind: KindMovie, Rating: 8.3, ReleaseDate: tt.date}
			data, err := json.Marshal(it)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			body := string(data)
			if strings.Contains(body, "0001-01-01") {
				t.Errorf("zero time serialized: %s", body)
			}
			if got := strings.Contains(body, `"release_date"`); got != tt.wantDate {
				t.Errorf("release_date present = %v, want %v: %s", got, tt.wantDate, body)
			}

			var back Item
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !back.ReleaseDate.Equal(tt.date) || back.Title != "Heat" || back.Kind != KindMovie {
				t.Errorf("decoded = %+v, want date %v", back, tt.date)
			}
		})
	}
}

func TestGenreByName(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"Drama", GenreDrama, true},
		{" sci-fi ", GenreSciFi, true},
		{"Science Fiction", GenreSciFi, true},
		{"documentaries", GenreDocumentary, true},
		{"opera", 0, false},
	}
	for _, tt := range tests {
		got, ok := GenreByName(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("GenreByName(%q) = %d, %v; want %d, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
	checkStringEqual(t, "label", GenreLabel(GenreSciFi), "Science Fiction")
	checkStringEqual(t, "unknown label", GenreLabel(-1), "Other")
}

func TestParseMediaKind(t *testing.T) {
	for in, want := range map[string]MediaKind{"movie": KindMovie, "tv": KindSeries, "series": KindSeries} {
		got, ok := ParseMediaKind(in)
		if !ok || got != want {
			t.Errorf("ParseMediaKind(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseMediaKind("person"); ok {
		t.Error("person is not a media kind")
	}
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// MediaKind distinguishes movies from series.
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "series"
)

// Valid reports whether k is a known kind.
func (k MediaKind) Valid() bool {
	return k == KindMovie || k == KindSeries
}

// ParseMediaKind accepts the API spellings ("movie", "series", "tv").
func ParseMediaKind(s string) (MediaKind, bool) {
	switch s {
	case "movie":
		return KindMovie, true
	case "series", "tv":
		return KindSeries, true
	}
	return "", false
}

// pathSegment is the catalog URL segment for the kind.
func (k MediaKind) pathSegment() string {
	if k == KindSeries {
		return "tv"
	}
	return "movie"
}

// TrendingWindow selects the trending aggregation window.
type TrendingWindow string

const (
	WindowDay  TrendingWindow = "day"
	WindowWeek TrendingWindow = "week"
)

// ImageBaseURL is the root for poster assets at a display-friendly width.
const ImageBaseURL = "https://image.tmdb.org/t/p/w500"

// Item is a normalized catalog record. Movies and series share this shape.
// Items are values and are never mutated after normalization.
type Item struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Kind        MediaKind `json:"kind"`
	PosterPath  string    `json:"poster_path,omitempty"`
	Rating      float64   `json:"rating"`
	VoteCount   int       `json:"vote_count"`
	Popularity  float64   `json:"popularity"`
	GenreIDs    []int     `json:"genre_ids"`
	ReleaseDate time.Time `json:"release_date"`
	Overview    string    `json:"overview,omitempty"`
}

// itemJSON is the wire form of Item.
type itemJSON struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Kind        MediaKind  `json:"kind"`
	PosterPath  string     `json:"poster_path,omitempty"`
	Rating      float64    `json:"rating"`
	VoteCount   int        `json:"vote_count"`
	Popularity  float64    `json:"popularity"`
	GenreIDs    []int      `json:"genre_ids"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Overview    string     `json:"overview,omitempty"`
}

// MarshalJSON omits an unknown release date instead of writing the zero time.
func (it Item) MarshalJSON() ([]byte, error) {
	w := itemJSON{
		ID:         it.ID,
		Title:      it.Title,
		Kind:       it.Kind,
		PosterPath: it.PosterPath,
		Rating:     it.Rating,
		VoteCount:  it.VoteCount,
		Popularity: it.Popularity,
		GenreIDs:   it.GenreIDs,
		Overview:   it.Overview,
	}
	if !it.ReleaseDate.IsZero() {
		d := it.ReleaseDate
		w.ReleaseDate = &d
	}
	return json.Marshal(w)
}

// Key identifies an item across kinds. Movie and series ids are allocated
// independently, so the kind is part of the identity.
func (it Item) Key() string {
	return string(it.Kind) + ":" + strconv.Itoa(it.ID)
}

// Admissible reports whether the item may appear in user-facing output:
// it must have a poster and a positive rating.
func (it Item) Admissible() bool {
	return it.PosterPath != "" && it.Rating > 0
}

// HasGenre reports whether the item carries genre id.
func (it Item) HasGenre(id int) bool {
	for _, g := range it.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// HasAnyGenre reports whether the item carries any of ids.
func (it Item) HasAnyGenre(ids ...int) bool {
	for _, id := range ids {
		if it.HasGenre(id) {
			return true
		}
	}
	return false
}

// PosterURL returns the absolute poster URL, or "" when there is none.
func (it Item) PosterURL() string {
	if it.PosterPath == "" {
		return ""
	}
	return ImageBaseURL + it.PosterPath
}

// Year returns the release year, or 0 when the date is unknown.
func (it Item) Year() int {
	if it.ReleaseDate.IsZero() {
		return 0
	}
	return it.ReleaseDate.Year()
}

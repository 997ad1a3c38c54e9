// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"strings"
	"time"
)

// pageResponse is the list envelope shared by discover, search, trending,
// popular and similar endpoints.
type pageResponse struct {
	Page         int       `json:"page"`
	Results      []rawItem `json:"results"`
	TotalResults int       `json:"total_results"`
	TotalPages   int       `json:"total_pages"`
}

// rawItem carries both the movie and the series field spellings. Every
// field is optional on the wire.
type rawItem struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	PosterPath   string  `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
}

// keywordResponse is returned by /search/keyword.
type keywordResponse struct {
	Results []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"results"`
}

const dateLayout = "2006-01-02"

// normalizeAll converts raw records to Items. defaultKind applies when a
// record carries no media_type (single-kind endpoints). Person records and
// records without an id are dropped.
func normalizeAll(raws []rawItem, defaultKind MediaKind) []Item {
	items := make([]Item, 0, len(raws))
	for i := range raws {
		if it, ok := normalize(&raws[i], defaultKind); ok {
			items = append(items, it)
		}
	}
	return items
}

func normalize(raw *rawItem, defaultKind MediaKind) (Item, bool) {
	if raw.ID <= 0 {
		return Item{}, false
	}

	kind := defaultKind
	switch raw.MediaType {
	case "":
	case "movie":
		kind = KindMovie
	case "tv":
		kind = KindSeries
	default:
		// person and anything unknown
		return Item{}, false
	}

	title, date := raw.Title, raw.ReleaseDate
	if kind == KindSeries {
		title, date = raw.Name, raw.FirstAirDate
	}
	if title == "" {
		title = firstNonEmpty(raw.Title, raw.Name)
	}
	if date == "" {
		date = firstNonEmpty(raw.ReleaseDate, raw.FirstAirDate)
	}

	rating := raw.VoteAverage
	if rating < 0 {
		rating = 0
	}
	votes := raw.VoteCount
	if votes < 0 {
		votes = 0
	}
	popularity := raw.Popularity
	if popularity < 0 {
		popularity = 0
	}

	return Item{
		ID:          raw.ID,
		Title:       strings.TrimSpace(title),
		Kind:        kind,
		PosterPath:  raw.PosterPath,
		Rating:      rating,
		VoteCount:   votes,
		Popularity:  popularity,
		GenreIDs:    foldGenres(raw.GenreIDs),
		ReleaseDate: parseDate(date),
		Overview:    raw.Overview,
	}, true
}

// parseDate returns the zero time for empty or malformed dates.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

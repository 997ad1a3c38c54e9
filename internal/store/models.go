// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package store

import (
	"strconv"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Collection names used as key prefixes.
const (
	CollectionWatchlist = "watchlist"
	CollectionRatings   = "ratings"
	CollectionFavorites = "favorites"
	CollectionProfiles  = "profile"
)

// WatchStatus tracks progress through a watchlist item.
type WatchStatus string

const (
	StatusWantToWatch WatchStatus = "want_to_watch"
	StatusWatching    WatchStatus = "watching"
	StatusWatched     WatchStatus = "watched"
)

// Valid reports whether s is a known status.
func (s WatchStatus) Valid() bool {
	switch s {
	case StatusWantToWatch, StatusWatching, StatusWatched:
		return true
	}
	return false
}

// ItemID builds the entry id used for catalog-backed entries. It matches
// catalog.Item.Key.
func ItemID(kind catalog.MediaKind, id int) string {
	return string(kind) + ":" + strconv.Itoa(id)
}

// WatchlistEntry is a title the user intends to watch or has watched.
type WatchlistEntry struct {
	ItemID     int               `json:"item_id"`
	Kind       catalog.MediaKind `json:"kind"`
	Title      string            `json:"title"`
	PosterPath string            `json:"poster_path,omitempty"`
	Status     WatchStatus       `json:"status"`
	AddedAt    time.Time         `json:"added_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// EntryID implements Entry.
func (e WatchlistEntry) EntryID() string { return ItemID(e.Kind, e.ItemID) }

// Rating is a user's score for a title.
type Rating struct {
	ItemID  int               `json:"item_id"`
	Kind    catalog.MediaKind `json:"kind"`
	Title   string            `json:"title"`
	Score   int               `json:"score"`
	RatedAt time.Time         `json:"rated_at"`
}

// EntryID implements Entry.
func (r Rating) EntryID() string { return ItemID(r.Kind, r.ItemID) }

// FavoritePerson is an actor or director the user follows.
type FavoritePerson struct {
	PersonID    int       `json:"person_id"`
	Name        string    `json:"name"`
	Department  string    `json:"department,omitempty"`
	ProfilePath string    `json:"profile_path,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// EntryID implements Entry.
func (f FavoritePerson) EntryID() string { return strconv.Itoa(f.PersonID) }

// StoredProfile is the user's most recent taste profile and the answers it
// was extracted from.
type StoredProfile struct {
	UserKey   string                 `json:"user_key"`
	Profile   recommend.TasteProfile `json:"profile"`
	Answers   map[int]string         `json:"answers"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// profileEntryID is the single slot each user has in the profile collection.
const profileEntryID = "current"

// EntryID implements Entry.
func (StoredProfile) EntryID() string { return profileEntryID }

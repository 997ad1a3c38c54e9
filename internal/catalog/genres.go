// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import "strings"

// Movie genre ids. Series records are folded onto these (see foldGenres).
const (
	GenreAction      = 28
	GenreAdventure   = 12
	GenreAnimation   = 16
	GenreComedy      = 35
	GenreCrime       = 80
	GenreDocumentary = 99
	GenreDrama       = 18
	GenreFamily      = 10751
	GenreFantasy     = 14
	GenreHistory     = 36
	GenreHorror      = 27
	GenreMusic       = 10402
	GenreMystery     = 9648
	GenreRomance     = 10749
	GenreSciFi       = 878
	GenreThriller    = 53
	GenreWar         = 10752
	GenreWestern     = 37
)

// Series-only genre ids.
const (
	seriesActionAdventure = 10759
	seriesKids            = 10762
	seriesSciFiFantasy    = 10765
	seriesWarPolitics     = 10768
)

// seriesGenreFold maps series-only genres onto their movie equivalents.
var seriesGenreFold = map[int][]int{
	seriesActionAdventure: {GenreAction, GenreAdventure},
	seriesSciFiFantasy:    {GenreSciFi, GenreFantasy},
	seriesWarPolitics:     {GenreWar},
	seriesKids:            {GenreFamily},
}

// genreNames maps user-facing spellings to genre ids.
var genreNames = map[string]int{
	"action":          GenreAction,
	"adventure":       GenreAdventure,
	"animation":       GenreAnimation,
	"animated":        GenreAnimation,
	"anime":           GenreAnimation,
	"comedy":          GenreComedy,
	"comedies":        GenreComedy,
	"crime":           GenreCrime,
	"documentary":     GenreDocumentary,
	"documentaries":   GenreDocumentary,
	"drama":           GenreDrama,
	"dramas":          GenreDrama,
	"family":          GenreFamily,
	"fantasy":         GenreFantasy,
	"history":         GenreHistory,
	"historical":      GenreHistory,
	"horror":          GenreHorror,
	"music":           GenreMusic,
	"musical":         GenreMusic,
	"mystery":         GenreMystery,
	"romance":         GenreRomance,
	"romantic":        GenreRomance,
	"sci-fi":          GenreSciFi,
	"scifi":           GenreSciFi,
	"science fiction": GenreSciFi,
	"thriller":        GenreThriller,
	"thrillers":       GenreThriller,
	"war":             GenreWar,
	"western":         GenreWestern,
	"westerns":        GenreWestern,
}

var genreLabels = map[int]string{
	GenreAction:      "Action",
	GenreAdventure:   "Adventure",
	GenreAnimation:   "Animation",
	GenreComedy:      "Comedy",
	GenreCrime:       "Crime",
	GenreDocumentary: "Documentary",
	GenreDrama:       "Drama",
	GenreFamily:      "Family",
	GenreFantasy:     "Fantasy",
	GenreHistory:     "History",
	GenreHorror:      "Horror",
	GenreMusic:       "Music",
	GenreMystery:     "Mystery",
	GenreRomance:     "Romance",
	GenreSciFi:       "Science Fiction",
	GenreThriller:    "Thriller",
	GenreWar:         "War",
	GenreWestern:     "Western",
}

// GenreByName resolves a user-supplied genre name (case-insensitive).
func GenreByName(name string) (int, bool) {
	id, ok := genreNames[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// GenreLabel returns the display name for a movie genre id.
func GenreLabel(id int) string {
	if label, ok := genreLabels[id]; ok {
		return label
	}
	return "Other"
}

// foldGenres rewrites series-only genre ids to movie ids, preserving first
// occurrence order and dropping duplicates.
func foldGenres(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	add := func(id int) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range ids {
		if folded, ok := seriesGenreFold[id]; ok {
			for _, f := range folded {
				add(f)
			}
			continue
		}
		add(id)
	}
	return out
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"sort"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// Onboarding question numbers.
const (
	QuestionFavorite      = 1
	QuestionGenres        = 2
	QuestionMood          = 3
	QuestionChallenge     = 4
	QuestionImportance    = 5
	QuestionFavoriteTitle = 6
)

// KnownAnswers returns the answers to known question numbers. Other keys are
// dropped. The result is never nil.
func KnownAnswers(answers map[int]string) map[int]string {
	known := make(map[int]string, len(answers))
	for q, a := range answers {
		if q >= QuestionFavorite && q <= QuestionFavoriteTitle {
			known[q] = a
		}
	}
	return known
}

// Personality is the dominant viewing personality of a profile.
type Personality string

const (
	PersonalityIntellectualExplorer Personality = "intellectual_explorer"
	PersonalityEmotionalConnector   Personality = "emotional_connector"
	PersonalityEntertainmentSeeker  Personality = "entertainment_seeker"
	PersonalityEscapistExplorer     Personality = "escapist_explorer"
	PersonalityCriticalAnalyst      Personality = "critical_analyst"
	PersonalityNostalgicDreamer     Personality = "nostalgic_dreamer"
	PersonalityBalancedViewer       Personality = "balanced_viewer"
)

// personalityOrder is the tie-break order for personality selection.
// BalancedViewer is not a candidate; it is the zero-evidence default.
var personalityOrder = []Personality{
	PersonalityIntellectualExplorer,
	PersonalityEmotionalConnector,
	PersonalityEntertainmentSeeker,
	PersonalityEscapistExplorer,
	PersonalityCriticalAnalyst,
	PersonalityNostalgicDreamer,
}

// Valid reports whether p is a known personality.
func (p Personality) Valid() bool {
	if p == PersonalityBalancedViewer {
		return true
	}
	for _, known := range personalityOrder {
		if p == known {
			return true
		}
	}
	return false
}

// Label returns the display name.
func (p Personality) Label() string {
	switch p {
	case PersonalityIntellectualExplorer:
		return "Intellectual Explorer"
	case PersonalityEmotionalConnector:
		return "Emotional Connector"
	case PersonalityEntertainmentSeeker:
		return "Entertainment Seeker"
	case PersonalityEscapistExplorer:
		return "Escapist Explorer"
	case PersonalityCriticalAnalyst:
		return "Critical Analyst"
	case PersonalityNostalgicDreamer:
		return "Nostalgic Dreamer"
	default:
		return "Balanced Viewer"
	}
}

// Mood is a desired emotional tone.
type Mood string

const (
	MoodThrilling        Mood = "thrilling"
	MoodComforting       Mood = "comforting"
	MoodThoughtProvoking Mood = "thought-provoking"
	MoodEmotional        Mood = "emotional"
	MoodFunny            Mood = "funny"
	MoodDark             Mood = "dark"
	MoodInspiring        Mood = "inspiring"
	MoodNostalgic        Mood = "nostalgic"
	MoodAdventurous      Mood = "adventurous"
	MoodRomantic         Mood = "romantic"
)

// moodOrder is the canonical mood order used to break ties.
var moodOrder = []Mood{
	MoodThrilling,
	MoodComforting,
	MoodThoughtProvoking,
	MoodEmotional,
	MoodFunny,
	MoodDark,
	MoodInspiring,
	MoodNostalgic,
	MoodAdventurous,
	MoodRomantic,
}

// ParseMood returns the mood named s, if any.
func ParseMood(s string) (Mood, bool) {
	for _, m := range moodOrder {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// GenreWeight is the affinity for a single genre.
type GenreWeight struct {
	GenreID int     `json:"genre_id"`
	Weight  float64 `json:"weight"`
}

// GenreWeights is an insertion-ordered set of genre affinities.
// Order is the order in which evidence for each genre was first seen.
type GenreWeights []GenreWeight

// Get returns the weight for genreID.
func (g GenreWeights) Get(genreID int) (float64, bool) {
	for _, w := range g {
		if w.GenreID == genreID {
			return w.Weight, true
		}
	}
	return 0, false
}

// add increases the weight of genreID by delta, appending the genre on first
// evidence.
func (g *GenreWeights) add(genreID int, delta float64) {
	for i := range *g {
		if (*g)[i].GenreID == genreID {
			(*g)[i].Weight += delta
			return
		}
	}
	*g = append(*g, GenreWeight{GenreID: genreID, Weight: delta})
}

// Top returns up to k genres by weight descending. Equal weights keep
// insertion order.
func (g GenreWeights) Top(k int) []GenreWeight {
	sorted := make([]GenreWeight, len(g))
	copy(sorted, g)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})
	if k >= 0 && len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

// IDs returns the genre ids in insertion order.
func (g GenreWeights) IDs() []int {
	ids := make([]int, len(g))
	for i, w := range g {
		ids[i] = w.GenreID
	}
	return ids
}

// TasteProfile is the structured summary of a user's preferences.
// A profile is immutable once produced; re-onboarding replaces it.
type TasteProfile struct {
	Genres        GenreWeights `json:"genres"`
	Personality   Personality  `json:"personality"`
	Moods         []Mood       `json:"moods"`
	Complexity    float64      `json:"complexity"`
	FavoriteTitle string       `json:"favorite_title,omitempty"`
	Insight       string       `json:"insight"`
}

// DominantMood returns the first mood, or "" when there are none.
func (p *TasteProfile) DominantMood() Mood {
	if len(p.Moods) == 0 {
		return ""
	}
	return p.Moods[0]
}

// Clone returns a deep copy of the profile.
func (p *TasteProfile) Clone() TasteProfile {
	c := *p
	c.Genres = append(GenreWeights{}, p.Genres...)
	c.Moods = append([]Mood{}, p.Moods...)
	return c
}

// ScoredCandidate is a catalog item with its relevance score.
type ScoredCandidate struct {
	Item   catalog.Item `json:"item"`
	Score  float64      `json:"score"`
	Reason string       `json:"reason,omitempty"`
}

// Response is the result of a recommendation run.
type Response struct {
	// Items is the ranked list, best first.
	Items []ScoredCandidate `json:"items"`

	// Fallback is true when the list came from the fallback provider.
	Fallback bool `json:"fallback"`

	// FallbackReason names the stage that caused the fallback.
	FallbackReason string `json:"fallback_reason,omitempty"`

	// TotalCandidates is the number of deduplicated candidates considered.
	TotalCandidates int `json:"total_candidates"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`
	Seed      int64  `json:"seed"`
	LatencyMS int64  `json:"latency_ms"`

	// Strategies maps strategy name to the number of items it contributed
	// before deduplication.
	Strategies map[string]int `json:"strategies,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Strategy names used in metadata and metrics.
const (
	StrategyGenre    = "genre"
	StrategyKeyword  = "keyword"
	StrategyEra      = "era"
	StrategySimilar  = "similar"
	StrategyTrending = "trending"
)

// Fallback reasons.
const (
	FallbackAggregateFailed = "aggregate_failed"
	FallbackNoCandidates    = "insufficient_candidates"
	FallbackScoreFailed     = "score_failed"
)

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// Scoring weights.
const (
	ratingWeight      = 10.0
	genreWeight       = 60.0
	moodBonus         = 20.0
	recencyBonus      = 15.0
	lowRatingPenalty  = 30.0
	lowVotesPenalty   = 20.0
	lowRatingCutoff   = 6.0
	lowVotesCutoff    = 100
	popularCutoff     = 100.0
	acclaimedRating   = 7.5
	maxReasons        = 2
	reasonSeparator   = " · "
	popularNowReason  = "Popular right now"
	maxGenresInReason = 2
)

// Scorer computes deterministic relevance scores. The reference time is fixed
// at construction so a whole run scores against the same clock.
type Scorer struct {
	now time.Time
}

// NewScorer creates a Scorer that measures item age against now.
func NewScorer(now time.Time) *Scorer {
	return &Scorer{now: now}
}

// Score returns the relevance of item for profile. The result is never
// negative.
//
//nolint:gocritic // hugeParam: values keep scoring free of shared state
func (s *Scorer) Score(item catalog.Item, profile TasteProfile) float64 {
	score, _ := s.evaluate(&item, &profile)
	return score
}

// Candidate scores item and attaches its reason.
//
//nolint:gocritic // hugeParam: values keep scoring free of shared state
func (s *Scorer) Candidate(item catalog.Item, profile TasteProfile) ScoredCandidate {
	score, reason := s.evaluate(&item, &profile)
	return ScoredCandidate{Item: item, Score: score, Reason: reason}
}

// evaluate returns the score and the explanation built from the signals
// that fired, in priority order genre, personality, quality.
func (s *Scorer) evaluate(item *catalog.Item, profile *TasteProfile) (float64, string) {
	score := item.Rating * ratingWeight

	var matched []int
	for _, gw := range profile.Genres {
		if item.HasGenre(gw.GenreID) {
			score += gw.Weight * genreWeight
			matched = append(matched, gw.GenreID)
		}
	}

	personalityHit, bonus := s.personalityBonus(item, profile.Personality)
	score += bonus
	score += s.complexityBonus(item, profile.Complexity)

	for _, m := range profile.Moods {
		if item.HasAnyGenre(moodGenres[m]...) {
			score += moodBonus
		}
	}

	if age, ok := s.age(item); ok && age >= 2 && age <= 15 {
		score += recencyBonus
	}
	if item.Rating < lowRatingCutoff {
		score -= lowRatingPenalty
	}
	if item.VoteCount < lowVotesCutoff {
		score -= lowVotesPenalty
	}
	score = max(score, 0)

	var reasons []string
	if len(matched) > 0 {
		reasons = append(reasons, genreReason(matched))
	}
	if personalityHit {
		label := profile.Personality.Label()
		reasons = append(reasons, fmt.Sprintf("Perfect for %s %s", article(label), label))
	}
	if item.Rating >= acclaimedRating {
		reasons = append(reasons, fmt.Sprintf("Highly rated (%.1f/10)", item.Rating))
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return score, strings.Join(reasons, reasonSeparator)
}

// personalityBonus reports whether the personality rule fired and its value.
func (s *Scorer) personalityBonus(item *catalog.Item, p Personality) (bool, float64) {
	switch p {
	case PersonalityIntellectualExplorer:
		if item.HasAnyGenre(catalog.GenreDocumentary, catalog.GenreSciFi, catalog.GenreMystery, catalog.GenreHistory) {
			return true, 35
		}
	case PersonalityEmotionalConnector:
		if item.HasGenre(catalog.GenreDrama) {
			return true, 40
		}
		if item.HasGenre(catalog.GenreRomance) {
			return true, 25
		}
	case PersonalityEntertainmentSeeker:
		if item.Popularity > popularCutoff {
			return true, 30
		}
	case PersonalityEscapistExplorer:
		if item.HasAnyGenre(catalog.GenreFantasy, catalog.GenreSciFi, catalog.GenreAdventure, catalog.GenreAnimation) {
			return true, 35
		}
	case PersonalityCriticalAnalyst:
		if item.Rating >= acclaimedRating && item.VoteCount >= 1000 {
			return true, 35
		}
	case PersonalityNostalgicDreamer:
		if age, ok := s.age(item); ok && age > 20 {
			return true, 35
		}
	default:
		if item.Rating >= 7.0 {
			return true, 10
		}
	}
	return false, 0
}

func (s *Scorer) complexityBonus(item *catalog.Item, complexity float64) float64 {
	age, dated := s.age(item)
	switch {
	case complexity > 0.7:
		bonus := 0.0
		if item.Rating >= acclaimedRating && item.VoteCount >= 500 {
			bonus += 25
		}
		if dated && age >= 15 {
			bonus += 15
		}
		return bonus
	case complexity < 0.4:
		bonus := 0.0
		if item.Popularity > popularCutoff {
			bonus += 20
		}
		if dated && age >= 0 && age <= 3 {
			bonus += 15
		}
		return bonus
	default:
		return 5
	}
}

// age returns the item's age in whole calendar years.
func (s *Scorer) age(item *catalog.Item) (int, bool) {
	if item.ReleaseDate.IsZero() {
		return 0, false
	}
	return s.now.Year() - item.ReleaseDate.Year(), true
}

func genreReason(ids []int) string {
	if len(ids) > maxGenresInReason {
		ids = ids[:maxGenresInReason]
	}
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = catalog.GenreLabel(id)
	}
	return "Matches your love of " + strings.Join(labels, " and ")
}

// RankItems scores items, orders them by score descending (ties by id ascending,
// then kind) and keeps the first limit.
//
//nolint:gocritic // hugeParam: profile is passed by value to keep it immutable
func (s *Scorer) RankItems(items []catalog.Item, profile TasteProfile, limit int) []ScoredCandidate {
	scored := make([]ScoredCandidate, 0, len(items))
	for i := range items {
		score, reason := s.evaluate(&items[i], &profile)
		scored = append(scored, ScoredCandidate{Item: items[i], Score: score, Reason: reason})
	}
	return Rank(scored, limit)
}

// Rank sorts scored candidates and truncates to limit.
func Rank(candidates []ScoredCandidate, limit int) []ScoredCandidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := &candidates[i], &candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Item.ID != b.Item.ID {
			return a.Item.ID < b.Item.ID
		}
		return a.Item.Kind < b.Item.Kind
	})
	if limit >= 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

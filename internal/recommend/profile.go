// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// Extraction constants.
const (
	keywordGenreStep  = 0.15
	keywordGenreCap   = 0.8
	selectedGenreStep = 0.9
	maxGenreWeight    = 1.0

	baseComplexity   = 0.5
	highComplexity   = 0.15
	lowComplexity    = -0.1
	mediumComplexity = 0.05
	minComplexity    = 0.1
	maxComplexity    = 1.0

	insightQuoteMinLen = 10
	insightQuoteMaxLen = 80
)

// ExtractProfile derives a TasteProfile from onboarding answers keyed by
// question number. It is pure and never fails; empty input yields the
// default profile.
func ExtractProfile(answers map[int]string) TasteProfile {
	text := joinAnswers(answers)
	c := newCorpus(text)

	profile := TasteProfile{
		Genres:        GenreWeights{},
		Moods:         []Mood{},
		Personality:   PersonalityBalancedViewer,
		Complexity:    baseComplexity,
		FavoriteTitle: extractFavoriteTitle(answers),
	}
	if strings.TrimSpace(text) == "" {
		profile.Insight = buildInsight(&profile, answers)
		return profile
	}

	for _, gk := range genreKeywordTable {
		if n := c.hits(gk.keywords); n > 0 {
			profile.Genres.add(gk.genreID, min(float64(n)*keywordGenreStep, keywordGenreCap))
		}
	}
	for _, id := range selectedGenres(answers[QuestionGenres]) {
		profile.Genres.add(id, selectedGenreStep)
	}

	profile.Moods = extractMoods(c)
	for _, m := range profile.Moods {
		for _, b := range moodGenreBoosts[m] {
			profile.Genres.add(b.genreID, b.boost)
		}
	}
	clampGenres(profile.Genres)

	profile.Personality = extractPersonality(c)
	profile.Complexity = extractComplexity(c, answers)
	profile.Insight = buildInsight(&profile, answers)
	return profile
}

// joinAnswers concatenates answers in ascending question order.
func joinAnswers(answers map[int]string) string {
	keys := make([]int, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, answers[k])
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// selectedGenres resolves explicitly chosen genre names in order of appearance.
// Segments are split on common separators; an unrecognised segment is retried
// word by word so "action comedy" resolves to both genres.
func selectedGenres(answer string) []int {
	if strings.TrimSpace(answer) == "" {
		return nil
	}
	segments := strings.FieldsFunc(strings.ToLower(answer), func(r rune) bool {
		switch r {
		case ',', ';', '/', '|', '&', '+', '\n':
			return true
		}
		return false
	})

	var ids []int
	seen := make(map[int]struct{})
	add := func(id int) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, seg := range segments {
		for _, part := range strings.Split(seg, " and ") {
			if id, ok := catalog.GenreByName(part); ok {
				add(id)
				continue
			}
			for _, word := range strings.Fields(part) {
				if id, ok := catalog.GenreByName(strings.Trim(word, ".!?\"'")); ok {
					add(id)
				}
			}
		}
	}
	return ids
}

func clampGenres(g GenreWeights) {
	for i := range g {
		g[i].Weight = clamp(g[i].Weight, 0, maxGenreWeight)
	}
}

// extractMoods orders moods with evidence by hit count, breaking ties by
// canonical mood order.
func extractMoods(c corpus) []Mood {
	type moodHits struct {
		mood Mood
		hits int
	}
	var found []moodHits
	for _, m := range moodOrder {
		if n := c.hits(moodKeywords[m]); n > 0 {
			found = append(found, moodHits{m, n})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].hits > found[j].hits })

	moods := make([]Mood, len(found))
	for i, f := range found {
		moods[i] = f.mood
	}
	return moods
}

func extractPersonality(c corpus) Personality {
	best := PersonalityBalancedViewer
	bestHits := 0
	for _, p := range personalityOrder {
		if n := c.hits(personalityKeywords[p]); n > bestHits {
			best, bestHits = p, n
		}
	}
	return best
}

func extractComplexity(c corpus, answers map[int]string) float64 {
	score := baseComplexity +
		highComplexity*float64(c.hits(highComplexityKeywords)) +
		lowComplexity*float64(c.hits(lowComplexityKeywords)) +
		mediumComplexity*float64(c.hits(mediumComplexityKeywords))

	// Stems so that "challenging" and "entertaining" also count.
	challenge := strings.ToLower(answers[QuestionChallenge])
	if strings.Contains(challenge, "challeng") {
		score += 0.2
	}
	if strings.Contains(challenge, "comfort") {
		score -= 0.1
	}
	importance := strings.ToLower(answers[QuestionImportance])
	if strings.Contains(importance, "plot") {
		score += 0.1
	}
	if strings.Contains(importance, "entertain") {
		score -= 0.05
	}
	return clamp(score, minComplexity, maxComplexity)
}

// extractFavoriteTitle returns the trimmed title answer, or else the first
// quoted span in the favorite answer.
func extractFavoriteTitle(answers map[int]string) string {
	if t := strings.TrimSpace(answers[QuestionFavoriteTitle]); t != "" {
		return t
	}
	return firstQuoted(answers[QuestionFavorite])
}

func firstQuoted(s string) string {
	for _, q := range [][2]string{{`"`, `"`}, {"“", "”"}} {
		start := strings.Index(s, q[0])
		if start < 0 {
			continue
		}
		rest := s[start+len(q[0]):]
		end := strings.Index(rest, q[1])
		if end < 0 {
			continue
		}
		if t := strings.TrimSpace(rest[:end]); t != "" {
			return t
		}
	}
	return ""
}

// buildInsight renders the one-paragraph profile summary.
func buildInsight(p *TasteProfile, answers map[int]string) string {
	var b strings.Builder

	label := p.Personality.Label()
	fmt.Fprintf(&b, "You're %s %s", article(label), label)
	if m := p.DominantMood(); m != "" {
		fmt.Fprintf(&b, " drawn to %s stories.", m)
	} else {
		b.WriteString(" open to any mood.")
	}

	switch {
	case p.Complexity > 0.7:
		b.WriteString(" You enjoy layered, challenging stories that reward close attention.")
	case p.Complexity < 0.4:
		b.WriteString(" You prefer easygoing picks that are fun to unwind with.")
	default:
		b.WriteString(" You like a balance of substance and easy viewing.")
	}

	if quote := longestAnswer(answers); quote != "" {
		fmt.Fprintf(&b, " You told us: \"%s\".", quote)
	}
	return b.String()
}

// longestAnswer returns the longest trimmed answer longer than the quote
// threshold, truncated. Ties go to the lower question number.
func longestAnswer(answers map[int]string) string {
	keys := make([]int, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	best := ""
	bestLen := insightQuoteMinLen
	for _, k := range keys {
		a := strings.TrimSpace(answers[k])
		if n := utf8.RuneCountInString(a); n > bestLen {
			best, bestLen = a, n
		}
	}
	if bestLen > insightQuoteMaxLen {
		runes := []rune(best)
		best = strings.TrimSpace(string(runes[:insightQuoteMaxLen])) + "..."
	}
	return best
}

func article(word string) string {
	if word == "" {
		return "a"
	}
	switch word[0] {
	case 'A', 'E', 'I', 'O', 'U', 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

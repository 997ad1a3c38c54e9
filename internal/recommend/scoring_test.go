// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

func TestScorer_Score(t *testing.T) {
	t.Parallel()

	s := NewScorer(testNow)
	drama := movie(1, 8.0, 2015, catalog.GenreDrama)
	profile := TasteProfile{
		Genres:      GenreWeights{{GenreID: catalog.GenreDrama, Weight: 1.0}},
		Personality: PersonalityEmotionalConnector,
		Moods:       []Mood{MoodEmotional},
		Complexity:  0.5,
	}

	// rating 80 + genre 60 + personality 40 + complexity 5 + mood 20 + recency 15
	if got := s.Score(drama, profile); got != 220 {
		t.Errorf("Score() = %v, want 220", got)
	}

	c := s.Candidate(drama, profile)
	want := "Matches your love of Drama · Perfect for an Emotional Connector"
	if c.Reason != want {
		t.Errorf("Reason = %q, want %q", c.Reason, want)
	}
}

func TestScorer_NeverNegative(t *testing.T) {
	t.Parallel()

	s := NewScorer(testNow)
	bad := movie(2, 4.0, 2025)
	bad.VoteCount = 50

	profile := TasteProfile{Personality: PersonalityBalancedViewer, Complexity: 0.5}
	if got := s.Score(bad, profile); got != 0 {
		t.Errorf("Score() = %v, want 0", got)
	}

	// Exhaustive sweep over a grid of item shapes.
	for _, rating := range []float64{0.1, 3, 5.9, 6, 7.5, 10} {
		for _, votes := range []int{0, 99, 100, 5000} {
			for _, year := range []int{0, 1950, 2010, 2025} {
				it := movie(3, rating, 2000)
				it.VoteCount = votes
				if year == 0 {
					it.ReleaseDate = time.Time{}
				} else {
					it.ReleaseDate = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
				}
				for _, p := range append([]Personality{PersonalityBalancedViewer}, personalityOrder...) {
					for _, cx := range []float64{0.1, 0.5, 1.0} {
						if got := s.Score(it, TasteProfile{Personality: p, Complexity: cx}); got < 0 {
							t.Fatalf("Score() = %v < 0 for %+v, personality %s", got, it, p)
						}
					}
				}
			}
		}
	}
}

func TestScorer_PersonalityBonus(t *testing.T) {
	t.Parallel()

	s := NewScorer(testNow)
	blockbuster := movie(1, 6.5, 2020, catalog.GenreAction)
	blockbuster.Popularity = 300
	classic := movie(2, 7.0, 1980, catalog.GenreWestern)
	documentary := movie(3, 6.5, 2020, catalog.GenreDocumentary)
	fantasy := movie(4, 6.5, 2020, catalog.GenreFantasy)
	acclaimed := movie(5, 8.2, 2020, catalog.GenreWestern)
	romance := movie(6, 6.5, 2020, catalog.GenreRomance)

	tests := []struct {
		personality Personality
		item        catalog.Item
		want        float64
	}{
		{PersonalityIntellectualExplorer, documentary, 35},
		{PersonalityIntellectualExplorer, fantasy, 0},
		{PersonalityEmotionalConnector, romance, 25},
		{PersonalityEntertainmentSeeker, blockbuster, 30},
		{PersonalityEntertainmentSeeker, classic, 0},
		{PersonalityEscapistExplorer, fantasy, 35},
		{PersonalityCriticalAnalyst, acclaimed, 35},
		{PersonalityCriticalAnalyst, romance, 0},
		{PersonalityNostalgicDreamer, classic, 35},
		{PersonalityNostalgicDreamer, fantasy, 0},
		{PersonalityBalancedViewer, classic, 10},
		{PersonalityBalancedViewer, romance, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.personality), func(t *testing.T) {
			t.Parallel()
			_, got := s.personalityBonus(&tt.item, tt.personality)
			if got != tt.want {
				t.Errorf("personalityBonus(%d) = %v, want %v", tt.item.ID, got, tt.want)
			}
		})
	}
}

func TestScorer_ComplexityBonus(t *testing.T) {
	t.Parallel()

	s := NewScorer(testNow)
	oldAcclaimed := movie(1, 8.0, 1990)
	freshPopular := movie(2, 6.0, 2024)
	freshPopular.Popularity = 250
	undated := movie(3, 6.0, 2000)
	undated.ReleaseDate = time.Time{}

	tests := []struct {
		name       string
		item       catalog.Item
		complexity float64
		want       float64
	}{
		{"high acclaimed classic", oldAcclaimed, 0.9, 40},
		{"high fresh popular", freshPopular, 0.9, 0},
		{"low fresh popular", freshPopular, 0.2, 35},
		{"low classic", oldAcclaimed, 0.2, 0},
		{"low undated", undated, 0.2, 0},
		{"middle", undated, 0.5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.complexityBonus(&tt.item, tt.complexity); got != tt.want {
				t.Errorf("complexityBonus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorer_Deterministic(t *testing.T) {
	t.Parallel()

	profile := ExtractProfile(map[int]string{QuestionFavorite: "dark thrillers with a twist", QuestionGenres: "thriller, mystery"})
	item := movie(7, 7.7, 2012, catalog.GenreThriller, catalog.GenreMystery)

	first := NewScorer(testNow).Candidate(item, profile)
	for i := 0; i < 10; i++ {
		if got := NewScorer(testNow).Candidate(item, profile); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: %+v != %+v", i, got, first)
		}
	}
}

func TestRank_EqualScoresAscendingID(t *testing.T) {
	t.Parallel()

	items := []catalog.Item{
		movie(30, 7, 2015),
		series(10, 7, 2015),
		movie(20, 7, 2015),
		movie(10, 7, 2015),
	}
	ranked := NewScorer(testNow).RankItems(items, TasteProfile{Complexity: 0.5}, 12)

	var got []string
	for _, c := range ranked {
		got = append(got, c.Item.Key())
	}
	want := []string{"movie:10", "series:10", "movie:20", "movie:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRank_SortsAndTruncates(t *testing.T) {
	t.Parallel()

	var items []catalog.Item
	for i := 1; i <= 20; i++ {
		items = append(items, movie(i, float64(i%10)+0.5, 2015))
	}
	ranked := NewScorer(testNow).RankItems(items, TasteProfile{Complexity: 0.5}, 12)

	if len(ranked) != 12 {
		t.Fatalf("len = %d, want 12", len(ranked))
	}
	assertSortedDesc(t, ranked)
	if ranked[0].Item.Rating != 9.5 {
		t.Errorf("top rating = %v, want 9.5", ranked[0].Item.Rating)
	}
}

func TestGenreReason(t *testing.T) {
	t.Parallel()

	got := genreReason([]int{catalog.GenreSciFi, catalog.GenreDrama, catalog.GenreWar})
	if got != "Matches your love of Science Fiction and Drama" {
		t.Errorf("genreReason() = %q", got)
	}
}

func TestScorer_QualityReason(t *testing.T) {
	t.Parallel()

	c := NewScorer(testNow).Candidate(movie(1, 8.4, 2015), TasteProfile{Personality: PersonalityEscapistExplorer, Complexity: 0.5})
	if !strings.HasPrefix(c.Reason, "Highly rated (8.4/10)") {
		t.Errorf("Reason = %q, want quality reason", c.Reason)
	}
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"strings"
	"unicode"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// Keyword tables. Tables are slices rather than maps so that iteration order,
// and therefore genre insertion order, is fixed.

type genreKeywords struct {
	genreID  int
	keywords []string
}

var genreKeywordTable = []genreKeywords{
	{catalog.GenreAction, []string{"action", "fight", "fights", "explosion", "explosions", "chase", "combat", "martial arts", "stunts", "adrenaline"}},
	{catalog.GenreAdventure, []string{"adventure", "adventures", "quest", "journey", "expedition", "explore", "exploring", "treasure"}},
	{catalog.GenreAnimation, []string{"animation", "animated", "anime", "cartoon", "cartoons", "pixar", "ghibli"}},
	{catalog.GenreComedy, []string{"comedy", "funny", "laugh", "laughing", "hilarious", "humor", "humour", "jokes", "witty", "sitcom"}},
	{catalog.GenreCrime, []string{"crime", "heist", "detective", "gangster", "mafia", "police", "cop", "murder"}},
	{catalog.GenreDocumentary, []string{"documentary", "documentaries", "true story", "real events", "real life", "nature"}},
	{catalog.GenreDrama, []string{"drama", "dramatic", "emotional", "character", "characters", "character development", "relationships", "struggle"}},
	{catalog.GenreFamily, []string{"family", "kids", "children", "wholesome"}},
	{catalog.GenreFantasy, []string{"fantasy", "magic", "magical", "wizard", "wizards", "dragons", "mythical", "fairy tale"}},
	{catalog.GenreHistory, []string{"history", "historical", "period piece", "biopic", "ancient"}},
	{catalog.GenreHorror, []string{"horror", "scary", "terrifying", "creepy", "ghost", "haunted", "slasher", "monster", "frightening"}},
	{catalog.GenreMusic, []string{"music", "musical", "songs", "band", "concert", "soundtrack"}},
	{catalog.GenreMystery, []string{"mystery", "mysteries", "whodunit", "puzzle", "clues", "twist", "twists", "enigma"}},
	{catalog.GenreRomance, []string{"romance", "romantic", "love story", "love", "falling in love", "relationship"}},
	{catalog.GenreSciFi, []string{"sci fi", "science fiction", "space", "future", "futuristic", "aliens", "robots", "time travel", "dystopian", "cyberpunk"}},
	{catalog.GenreThriller, []string{"thriller", "suspense", "suspenseful", "tense", "tension", "edge of my seat", "psychological", "conspiracy"}},
	{catalog.GenreWar, []string{"war", "battle", "soldiers", "military"}},
	{catalog.GenreWestern, []string{"western", "cowboy", "cowboys", "frontier"}},
}

var personalityKeywords = map[Personality][]string{
	PersonalityIntellectualExplorer: {"thought provoking", "thoughtful", "intellectual", "philosophy", "philosophical", "ideas", "complex", "science", "learn", "learning", "documentary", "mind bending", "think", "depth", "clever"},
	PersonalityEmotionalConnector:   {"emotional", "emotions", "feel", "feelings", "character development", "characters", "relationships", "moving", "heart", "touching", "cry", "human", "empathy", "connection"},
	PersonalityEntertainmentSeeker:  {"fun", "entertaining", "entertainment", "popcorn", "blockbuster", "exciting", "laugh", "easy watch", "good time", "spectacle"},
	PersonalityEscapistExplorer:     {"escape", "escapism", "fantasy", "magic", "other worlds", "world building", "worldbuilding", "immersive", "epic", "imagination", "space"},
	PersonalityCriticalAnalyst:      {"cinematography", "directing", "director", "screenplay", "acting", "performances", "craft", "masterpiece", "acclaimed", "script", "editing", "oscar", "award"},
	PersonalityNostalgicDreamer:     {"nostalgic", "nostalgia", "classic", "classics", "childhood", "old", "retro", "remember", "grew up", "memories", "vintage", "golden age"},
}

var moodKeywords = map[Mood][]string{
	MoodThrilling:        {"thrilling", "thrill", "thrills", "exciting", "excited", "excitement", "adrenaline", "intense", "suspense", "edge of my seat"},
	MoodComforting:       {"comforting", "comfort", "cozy", "cosy", "relaxing", "relax", "feel good", "warm", "calm", "light"},
	MoodThoughtProvoking: {"thought provoking", "thoughtful", "think", "thinking", "depth", "deep", "philosophical", "meaningful", "mind bending", "reflect"},
	MoodEmotional:        {"emotional", "emotions", "moving", "cry", "tears", "touching", "heartfelt", "heartbreaking", "feel something"},
	MoodFunny:            {"funny", "laugh", "laughing", "hilarious", "humor", "humour", "comedy", "silly", "lighthearted"},
	MoodDark:             {"dark", "gritty", "disturbing", "bleak", "grim", "twisted", "noir", "sinister"},
	MoodInspiring:        {"inspiring", "inspired", "inspirational", "uplifting", "motivating", "motivated", "hopeful", "hope", "triumph"},
	MoodNostalgic:        {"nostalgic", "nostalgia", "childhood", "classic", "classics", "old school", "retro", "memories"},
	MoodAdventurous:      {"adventurous", "adventure", "explore", "exploring", "escape", "epic", "journey", "discover"},
	MoodRomantic:         {"romantic", "romance", "love", "swoon", "chemistry", "date night"},
}

type genreBoost struct {
	genreID int
	boost   float64
}

// moodGenreBoosts are applied once per mood that has keyword evidence.
var moodGenreBoosts = map[Mood][]genreBoost{
	MoodThrilling:        {{catalog.GenreThriller, 0.6}, {catalog.GenreAction, 0.5}},
	MoodComforting:       {{catalog.GenreComedy, 0.5}, {catalog.GenreFamily, 0.5}},
	MoodThoughtProvoking: {{catalog.GenreDrama, 0.5}, {catalog.GenreSciFi, 0.5}, {catalog.GenreMystery, 0.5}},
	MoodEmotional:        {{catalog.GenreDrama, 0.7}, {catalog.GenreRomance, 0.5}},
	MoodFunny:            {{catalog.GenreComedy, 0.7}},
	MoodDark:             {{catalog.GenreCrime, 0.6}, {catalog.GenreThriller, 0.5}, {catalog.GenreHorror, 0.5}},
	MoodInspiring:        {{catalog.GenreDrama, 0.5}, {catalog.GenreDocumentary, 0.5}, {catalog.GenreHistory, 0.5}},
	MoodNostalgic:        {{catalog.GenreFamily, 0.5}, {catalog.GenreAnimation, 0.5}},
	MoodAdventurous:      {{catalog.GenreAdventure, 0.7}, {catalog.GenreFantasy, 0.5}},
	MoodRomantic:         {{catalog.GenreRomance, 0.7}},
}

// moodGenres is the set of genres that satisfy each mood at scoring time.
var moodGenres = map[Mood][]int{
	MoodThrilling:        {catalog.GenreThriller, catalog.GenreAction},
	MoodComforting:       {catalog.GenreComedy, catalog.GenreFamily, catalog.GenreAnimation},
	MoodThoughtProvoking: {catalog.GenreDrama, catalog.GenreSciFi, catalog.GenreMystery, catalog.GenreDocumentary},
	MoodEmotional:        {catalog.GenreDrama, catalog.GenreRomance},
	MoodFunny:            {catalog.GenreComedy},
	MoodDark:             {catalog.GenreThriller, catalog.GenreCrime, catalog.GenreHorror},
	MoodInspiring:        {catalog.GenreDrama, catalog.GenreDocumentary, catalog.GenreHistory},
	MoodNostalgic:        {catalog.GenreFamily, catalog.GenreAnimation, catalog.GenreMusic},
	MoodAdventurous:      {catalog.GenreAdventure, catalog.GenreFantasy, catalog.GenreAction},
	MoodRomantic:         {catalog.GenreRomance},
}

// Complexity signal keywords.
var (
	highComplexityKeywords = []string{
		"depth", "deep", "complex", "thought provoking", "thoughtful", "nuanced", "layered",
		"character development", "philosophical", "challenging", "intellectual", "subtle",
		"slow burn", "ambiguous", "symbolism", "mind bending",
	}
	lowComplexityKeywords = []string{
		"simple", "easy", "light", "mindless", "popcorn", "fun", "silly", "relax", "relaxing",
		"background", "turn my brain off", "casual", "predictable",
	}
	mediumComplexityKeywords = []string{
		"interesting", "engaging", "clever", "twist", "smart", "balanced", "story", "plot",
	}
)

// Keyword search phrases for the keyword strategy.
var (
	personalityPhrases = map[Personality][]string{
		PersonalityIntellectualExplorer: {"philosophy", "artificial intelligence", "time travel"},
		PersonalityEmotionalConnector:   {"coming of age", "family relationships", "friendship"},
		PersonalityEntertainmentSeeker:  {"heist", "buddy comedy", "superhero"},
		PersonalityEscapistExplorer:     {"magic", "space opera", "parallel world"},
		PersonalityCriticalAnalyst:      {"independent film", "neo-noir", "based on novel or book"},
		PersonalityNostalgicDreamer:     {"nostalgic", "1980s", "small town"},
		PersonalityBalancedViewer:       {"based on true story", "friendship", "road trip"},
	}
	moodPhrases = map[Mood]string{
		MoodThrilling:        "suspense",
		MoodComforting:       "feel-good",
		MoodThoughtProvoking: "existentialism",
		MoodEmotional:        "tearjerker",
		MoodFunny:            "satire",
		MoodDark:             "psychological thriller",
		MoodInspiring:        "underdog",
		MoodNostalgic:        "nostalgia",
		MoodAdventurous:      "quest",
		MoodRomantic:         "romance",
	}
)

// corpus is answer text normalized for whole-word phrase matching: lowercase
// letters and digits separated by single spaces, padded at both ends.
type corpus string

func newCorpus(text string) corpus {
	return corpus(" " + normalizeText(text) + " ")
}

// normalizeText lowercases s and collapses every run of non-alphanumeric
// characters into one space.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

// contains reports whether phrase occurs as whole words.
func (c corpus) contains(phrase string) bool {
	p := normalizeText(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(string(c), " "+p+" ")
}

// hits counts the distinct keywords present.
func (c corpus) hits(keywords []string) int {
	n := 0
	for _, k := range keywords {
		if c.contains(k) {
			n++
		}
	}
	return n
}

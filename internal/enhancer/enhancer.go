// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package enhancer refines keyword-derived taste profiles with a language
// model. The LLM reads the onboarding answers and returns extra moods and
// genre boosts; the recommend package merges them into the profile.
package enhancer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Reply limits. Boosts stay well below the explicit-genre weight so keyword
// evidence remains the primary signal.
const (
	maxMoods     = 3
	maxBoost     = 0.5
	maxTokens    = 300
	systemPrompt = "You analyse answers to a movie taste questionnaire. " +
		"Reply with a single JSON object and nothing else."
)

// ErrMalformedReply is returned when the model reply holds no JSON object.
var ErrMalformedReply = errors.New("enhancer: reply is not a JSON object")

// reply is the JSON shape requested from the model.
type reply struct {
	Moods  []string           `json:"moods"`
	Genres map[string]float64 `json:"genres"`
}

// LLMEnhancer implements recommend.SentimentEnhancer against an
// OpenAI-compatible chat completions endpoint.
type LLMEnhancer struct {
	client      *chatClient
	model       string
	temperature float64
	timeout     time.Duration
	logger      zerolog.Logger
}

var _ recommend.SentimentEnhancer = (*LLMEnhancer)(nil)

// Option configures an LLMEnhancer.
type Option func(*LLMEnhancer)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(e *LLMEnhancer) { e.client.httpClient = hc }
}

// New creates an LLMEnhancer from configuration.
func New(cfg *config.EnhancerConfig, opts ...Option) (*LLMEnhancer, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("enhancer: api key is required")
	}
	e := &LLMEnhancer{
		client: &chatClient{
			baseURL:    cfg.BaseURL,
			apiKey:     cfg.APIKey,
			httpClient: &http.Client{},
		},
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logging.WithComponent("enhancer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Enhance asks the model for moods and genre boosts matching answers.
func (e *LLMEnhancer) Enhance(ctx context.Context, answers map[int]string) (recommend.Enhancement, error) {
	if len(answers) == 0 {
		return recommend.Enhancement{}, nil
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	content, err := e.client.complete(ctx, &chatRequest{
		Model: e.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(answers)},
		},
		Temperature:    e.temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		metrics.EnhancerRequests.WithLabelValues("error").Inc()
		return recommend.Enhancement{}, err
	}

	enh, err := parseReply(content)
	if err != nil {
		metrics.EnhancerRequests.WithLabelValues("malformed").Inc()
		return recommend.Enhancement{}, err
	}
	metrics.EnhancerRequests.WithLabelValues("success").Inc()

	logging.Ctx(ctx).Debug().
		Str("component", "enhancer").
		Int("moods", len(enh.Moods)).
		Int("genre_boosts", len(enh.GenreBoosts)).
		Dur("duration", time.Since(start)).
		Msg("Sentiment enhancement complete")
	return enh, nil
}

// buildPrompt lists the answers in question order and describes the reply.
func buildPrompt(answers map[int]string) string {
	keys := make([]int, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var b strings.Builder
	b.WriteString("Questionnaire answers:\n")
	for _, k := range keys {
		if a := strings.TrimSpace(answers[k]); a != "" {
			fmt.Fprintf(&b, "%d. %s\n", k, a)
		}
	}
	b.WriteString("\nAllowed moods: ")
	b.WriteString(strings.Join(moodNames(), ", "))
	b.WriteString("\nReturn {\"moods\": [up to 3 allowed moods, strongest first], ")
	b.WriteString("\"genres\": {\"<genre name>\": <boost between 0 and 0.5>}} ")
	b.WriteString("for feelings the answers imply but do not state outright.")
	return b.String()
}

func moodNames() []string {
	all := []recommend.Mood{
		recommend.MoodThrilling, recommend.MoodComforting, recommend.MoodThoughtProvoking,
		recommend.MoodEmotional, recommend.MoodFunny, recommend.MoodDark,
		recommend.MoodInspiring, recommend.MoodNostalgic, recommend.MoodAdventurous,
		recommend.MoodRomantic,
	}
	names := make([]string, len(all))
	for i, m := range all {
		names[i] = string(m)
	}
	return names
}

// parseReply extracts the JSON object from content, tolerating code fences
// and surrounding prose. Unknown moods and genres are ignored.
func parseReply(content string) (recommend.Enhancement, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return recommend.Enhancement{}, ErrMalformedReply
	}

	var r reply
	if err := json.Unmarshal([]byte(content[start:end+1]), &r); err != nil {
		return recommend.Enhancement{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	var enh recommend.Enhancement
	for _, name := range r.Moods {
		if len(enh.Moods) >= maxMoods {
			break
		}
		if m, ok := recommend.ParseMood(strings.ToLower(strings.TrimSpace(name))); ok {
			enh.Moods = append(enh.Moods, m)
		}
	}
	for name, boost := range r.Genres {
		id, ok := catalog.GenreByName(name)
		if !ok || boost <= 0 {
			continue
		}
		if enh.GenreBoosts == nil {
			enh.GenreBoosts = make(map[int]float64)
		}
		enh.GenreBoosts[id] = min(enh.GenreBoosts[id]+boost, maxBoost)
	}
	return enh, nil
}

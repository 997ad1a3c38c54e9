// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Catalog is the subset of the catalog client used by the pipeline.
// Every method returns an empty slice on failure.
type Catalog interface {
	ByGenre(ctx context.Context, genreIDs []int, page int) []catalog.Item
	ByKeyword(ctx context.Context, text string) []catalog.Item
	Trending(ctx context.Context, window catalog.TrendingWindow, page int) []catalog.Item
	Popular(ctx context.Context, kind catalog.MediaKind, page int) []catalog.Item
	SimilarTo(ctx context.Context, kind catalog.MediaKind, id int) []catalog.Item
	DiscoverByDateRange(ctx context.Context, startYear, endYear, page int) []catalog.Item
	SearchTitle(ctx context.Context, title string) []catalog.Item
}

var _ Catalog = (*catalog.Client)(nil)

// eraRange is a fixed release-year window with a per-run item quota.
type eraRange struct {
	name      string
	startYear int
	endYear   int
	quota     int
}

// eraPageWindow is the number of pages the seed rotates through per era.
const eraPageWindow = 3

// eras returns the era windows relative to now: the last five years, then
// the 2010s, 2000s and 1990s.
func eras(now time.Time) []eraRange {
	y := now.Year()
	return []eraRange{
		{name: "recent", startYear: y - 4, endYear: y, quota: 8},
		{name: "2010s", startYear: 2010, endYear: 2019, quota: 6},
		{name: "2000s", startYear: 2000, endYear: 2009, quota: 4},
		{name: "1990s", startYear: 1990, endYear: 1999, quota: 3},
	}
}

// task is one unit of catalog work.
type task struct {
	strategy string
	run      func(ctx context.Context) []catalog.Item
}

// Aggregator gathers raw candidates from multiple catalog strategies.
type Aggregator struct {
	catalog Catalog
	cfg     *Config
	now     func() time.Time
	logger  zerolog.Logger
}

// NewAggregator creates an Aggregator.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAggregator(cat Catalog, cfg *Config, now func() time.Time, logger zerolog.Logger) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{
		catalog: cat,
		cfg:     cfg,
		now:     now,
		logger:  logger.With().Str("component", "aggregator").Logger(),
	}
}

// Aggregate runs every strategy for profile and returns the concatenated,
// not yet deduplicated candidates.
//
//nolint:gocritic // hugeParam: profile is passed by value to keep it immutable
func (a *Aggregator) Aggregate(ctx context.Context, profile TasteProfile, seed int64) []catalog.Item {
	items, _ := a.AggregateWithStats(ctx, profile, seed)
	return items
}

// AggregateWithStats is Aggregate plus the number of items each strategy
// contributed.
//
//nolint:gocritic // hugeParam: profile is passed by value to keep it immutable
func (a *Aggregator) AggregateWithStats(ctx context.Context, profile TasteProfile, seed int64) ([]catalog.Item, map[string]int) {
	tasks := a.plan(&profile, seed)
	if len(tasks) > maxTasks {
		tasks = tasks[:maxTasks]
	}

	// Each task owns exactly one slot, so no locking is needed.
	slots := make([][]catalog.Item, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.MaxConcurrency)
	for i, t := range tasks {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					metrics.RecommendPanics.WithLabelValues("strategy_" + t.strategy).Inc()
					a.logger.Error().
						Str("strategy", t.strategy).
						Interface("panic", r).
						Msg("Strategy panicked, skipping")
				}
			}()
			slots[i] = t.run(gctx)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // tasks never return errors

	counts := make(map[string]int)
	total := 0
	for i, t := range tasks {
		counts[t.strategy] += len(slots[i])
		total += len(slots[i])
	}
	items := make([]catalog.Item, 0, total)
	for _, s := range slots {
		items = append(items, s...)
	}

	a.logger.Debug().
		Int("tasks", len(tasks)).
		Int("items", total).
		Int64("seed", seed).
		Msg("Aggregation complete")
	return items, counts
}

// plan builds the task list in strategy declaration order: genre, keyword,
// era, similar, trending.
func (a *Aggregator) plan(profile *TasteProfile, seed int64) []task {
	tasks := make([]task, 0, maxTasks)
	tasks = append(tasks, a.genreTasks(profile, seed)...)
	tasks = append(tasks, a.keywordTasks(profile)...)
	tasks = append(tasks, a.eraTasks(seed)...)
	if t, ok := a.similarTask(profile); ok {
		tasks = append(tasks, t)
	}
	tasks = append(tasks, a.trendingTask(profile, seed))
	return tasks
}

func (a *Aggregator) genreTasks(profile *TasteProfile, seed int64) []task {
	top := profile.Genres.Top(a.cfg.TopGenres)
	tasks := make([]task, 0, len(top)*a.cfg.PagesPerGenre)
	for _, gw := range top {
		for p := 0; p < a.cfg.PagesPerGenre; p++ {
			genreID := gw.GenreID
			page := rotatePage(seed*int64(a.cfg.PagesPerGenre)+int64(p), a.cfg.PageWindow)
			tasks = append(tasks, task{
				strategy: StrategyGenre,
				run: func(ctx context.Context) []catalog.Item {
					return a.catalog.ByGenre(ctx, []int{genreID}, page)
				},
			})
		}
	}
	return tasks
}

func (a *Aggregator) keywordTasks(profile *TasteProfile) []task {
	phrases := keywordPhrases(profile, a.cfg.KeywordPhrases)
	tasks := make([]task, 0, len(phrases))
	for _, phrase := range phrases {
		tasks = append(tasks, task{
			strategy: StrategyKeyword,
			run: func(ctx context.Context) []catalog.Item {
				return a.catalog.ByKeyword(ctx, phrase)
			},
		})
	}
	return tasks
}

// keywordPhrases picks up to n search phrases: the phrases for the two
// strongest moods, then the personality's phrases.
func keywordPhrases(profile *TasteProfile, n int) []string {
	var phrases []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if p == "" || len(phrases) >= n {
			return
		}
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		phrases = append(phrases, p)
	}
	for i, m := range profile.Moods {
		if i >= 2 {
			break
		}
		add(moodPhrases[m])
	}
	personality := profile.Personality
	if _, ok := personalityPhrases[personality]; !ok {
		personality = PersonalityBalancedViewer
	}
	for _, p := range personalityPhrases[personality] {
		add(p)
	}
	return phrases
}

func (a *Aggregator) eraTasks(seed int64) []task {
	page := rotatePage(seed, eraPageWindow)
	ranges := eras(a.now())
	tasks := make([]task, 0, len(ranges))
	for _, era := range ranges {
		tasks = append(tasks, task{
			strategy: StrategyEra,
			run: func(ctx context.Context) []catalog.Item {
				items := a.catalog.DiscoverByDateRange(ctx, era.startYear, era.endYear, page)
				if len(items) > era.quota {
					items = items[:era.quota]
				}
				return items
			},
		})
	}
	return tasks
}

func (a *Aggregator) similarTask(profile *TasteProfile) (task, bool) {
	title := profile.FavoriteTitle
	if title == "" {
		return task{}, false
	}
	return task{
		strategy: StrategySimilar,
		run: func(ctx context.Context) []catalog.Item {
			hits := a.catalog.SearchTitle(ctx, title)
			if len(hits) == 0 {
				a.logger.Debug().Str("title", title).Msg("Favorite title not found")
				return nil
			}
			return a.catalog.SimilarTo(ctx, hits[0].Kind, hits[0].ID)
		},
	}, true
}

func (a *Aggregator) trendingTask(profile *TasteProfile, seed int64) task {
	window := catalog.WindowDay
	if seed%2 != 0 {
		window = catalog.WindowWeek
	}
	complexity := profile.Complexity
	return task{
		strategy: StrategyTrending,
		run: func(ctx context.Context) []catalog.Item {
			raw := a.catalog.Trending(ctx, window, 1)
			out := make([]catalog.Item, 0, len(raw))
			for _, it := range raw {
				if trendingAdmits(complexity, it) {
					out = append(out, it)
				}
			}
			return out
		},
	}
}

// trendingAdmits applies the complexity-dependent quality bar to a
// trending item.
//
//nolint:gocritic // hugeParam: catalog.Item is passed by value like everywhere else
func trendingAdmits(complexity float64, it catalog.Item) bool {
	switch {
	case complexity > 0.7:
		return it.Rating > 7.0
	case complexity < 0.4:
		return it.Popularity > 100
	default:
		return it.Rating >= 6.0
	}
}

// rotatePage maps a seed offset onto pages 1..window.
func rotatePage(offset int64, window int) int {
	if window <= 0 {
		return 1
	}
	m := offset % int64(window)
	if m < 0 {
		m += int64(window)
	}
	return int(m) + 1
}

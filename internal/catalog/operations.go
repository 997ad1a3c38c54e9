// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// maxPage is the highest page the catalog API serves.
const maxPage = 500

// maxKeywordIDs bounds how many resolved keyword ids feed a discover query.
const maxKeywordIDs = 3

// ByGenre discovers movies tagged with all of genreIDs, most popular first.
func (c *Client) ByGenre(ctx context.Context, genreIDs []int, page int) []Item {
	if len(genreIDs) == 0 {
		return nil
	}
	params := url.Values{}
	params.Set("with_genres", joinInts(genreIDs, ","))
	params.Set("sort_by", "popularity.desc")
	params.Set("vote_count.gte", "100")
	params.Set("vote_average.gte", "6")
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(clampPage(page)))
	return c.list(ctx, "by_genre", "/discover/movie", params, KindMovie)
}

// ByKeyword resolves text to catalog keyword ids and discovers the best
// rated movies tagged with any of the first three.
func (c *Client) ByKeyword(ctx context.Context, text string) []Item {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	ids := c.searchKeywords(ctx, text)
	if len(ids) == 0 {
		return nil
	}

	params := url.Values{}
	params.Set("with_keywords", joinInts(ids, "|"))
	params.Set("sort_by", "vote_average.desc")
	params.Set("vote_count.gte", "50")
	params.Set("include_adult", "false")
	params.Set("page", "1")
	return c.list(ctx, "by_keyword", "/discover/movie", params, KindMovie)
}

// searchKeywords returns up to maxKeywordIDs keyword ids for text.
func (c *Client) searchKeywords(ctx context.Context, text string) []int {
	params := url.Values{}
	params.Set("query", text)
	params.Set("page", "1")

	start := time.Now()
	var resp keywordResponse
	if err := c.getJSON(ctx, "/search/keyword", params, &resp); err != nil {
		metrics.RecordCatalogRequest("search_keyword", time.Since(start), 0, err)
		c.logFailure(ctx, "search_keyword", "/search/keyword", err)
		return nil
	}

	ids := make([]int, 0, maxKeywordIDs)
	for _, kw := range resp.Results {
		if kw.ID <= 0 {
			continue
		}
		ids = append(ids, kw.ID)
		if len(ids) == maxKeywordIDs {
			break
		}
	}
	metrics.RecordCatalogRequest("search_keyword", time.Since(start), len(ids), nil)
	return ids
}

// Trending returns movies and series trending over window.
func (c *Client) Trending(ctx context.Context, window TrendingWindow, page int) []Item {
	if window != WindowWeek {
		window = WindowDay
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(clampPage(page)))
	return c.list(ctx, "trending", "/trending/all/"+string(window), params, KindMovie)
}

// Popular returns currently popular titles of the given kind.
func (c *Client) Popular(ctx context.Context, kind MediaKind, page int) []Item {
	if !kind.Valid() {
		kind = KindMovie
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(clampPage(page)))
	return c.list(ctx, "popular", "/"+kind.pathSegment()+"/popular", params, kind)
}

// SimilarTo returns titles similar to the referenced item.
func (c *Client) SimilarTo(ctx context.Context, kind MediaKind, id int) []Item {
	if id <= 0 {
		return nil
	}
	if !kind.Valid() {
		kind = KindMovie
	}
	params := url.Values{}
	params.Set("page", "1")
	path := fmt.Sprintf("/%s/%d/similar", kind.pathSegment(), id)
	return c.list(ctx, "similar", path, params, kind)
}

// DiscoverByDateRange discovers well-rated movies released between the
// first day of startYear and the last day of endYear.
func (c *Client) DiscoverByDateRange(ctx context.Context, startYear, endYear, page int) []Item {
	if endYear < startYear {
		startYear, endYear = endYear, startYear
	}
	params := url.Values{}
	params.Set("primary_release_date.gte", fmt.Sprintf("%04d-01-01", startYear))
	params.Set("primary_release_date.lte", fmt.Sprintf("%04d-12-31", endYear))
	params.Set("sort_by", "vote_average.desc")
	params.Set("vote_count.gte", "300")
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(clampPage(page)))
	return c.list(ctx, "by_date_range", "/discover/movie", params, KindMovie)
}

// SearchTitle searches movies and series by title. People are dropped.
func (c *Client) SearchTitle(ctx context.Context, title string) []Item {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	params := url.Values{}
	params.Set("query", title)
	params.Set("include_adult", "false")
	params.Set("page", "1")
	return c.list(ctx, "search_title", "/search/multi", params, KindMovie)
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	if page > maxPage {
		return maxPage
	}
	return page
}

func joinInts(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

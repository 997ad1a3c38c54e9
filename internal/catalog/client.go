// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog is the client for the external movie/TV metadata service.
//
// Every operation returns a (possibly empty) list of normalized Items and
// never an error: transport failures, non-2xx statuses and malformed bodies
// are logged at warn level, counted in metrics and turned into an empty
// result. Calls share one rate limiter, one circuit breaker and one response
// cache.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

var (
	// ErrStatus wraps any non-2xx catalog response.
	ErrStatus = errors.New("catalog: unexpected status")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("catalog: not found")
)

// BreakerName is the circuit breaker label used in metrics.
const BreakerName = "catalog-api"

// maxErrorBody bounds how much of an error response is kept for logging.
const maxErrorBody = 512

// Client issues parameterized queries against the catalog API.
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	language    string
	timeout     time.Duration

	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *breaker
	cache      *cache.LRU[[]Item]
	logger     zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBreakerSettings overrides the circuit breaker tuning.
func WithBreakerSettings(s BreakerSettings) Option {
	return func(c *Client) { c.breaker = newBreaker(BreakerName, s, c.logger) }
}

// WithoutCache disables response caching.
func WithoutCache() Option {
	return func(c *Client) { c.cache = nil }
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg *config.CatalogConfig, opts ...Option) *Client {
	logger := logging.WithComponent("catalog")

	breakerSettings := DefaultBreakerSettings()
	if cfg.BreakerMaxRequests > 0 {
		breakerSettings.MaxRequests = cfg.BreakerMaxRequests
	}
	if cfg.BreakerInterval > 0 {
		breakerSettings.Interval = cfg.BreakerInterval
	}
	if cfg.BreakerTimeout > 0 {
		breakerSettings.Timeout = cfg.BreakerTimeout
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	limit, burst := rate.Limit(cfg.RateLimit), cfg.RateBurst
	if limit <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		accessToken: cfg.AccessToken,
		language:    cfg.Language,
		timeout:     timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
	c.breaker = newBreaker(BreakerName, breakerSettings, logger)
	if cfg.CacheSize > 0 {
		c.cache = cache.NewLRU[[]Item]("catalog", cfg.CacheSize, cfg.CacheTTL)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache returns the response cache, or nil when caching is disabled.
func (c *Client) Cache() *cache.LRU[[]Item] {
	return c.cache
}

// BreakerState returns the circuit breaker state for health reporting.
func (c *Client) BreakerState() string {
	return stateToString(c.breaker.state())
}

// list performs a cached GET returning a page of items. Errors are logged,
// counted and converted to an empty result.
func (c *Client) list(ctx context.Context, op, path string, params url.Values, defaultKind MediaKind) []Item {
	key := cacheKey(path, params)
	if c.cache != nil {
		if items, ok := c.cache.Get(key); ok {
			metrics.RecordCatalogCacheHit(op, len(items))
			return slices.Clone(items)
		}
	}

	start := time.Now()
	var page pageResponse
	err := c.getJSON(ctx, path, params, &page)
	if err != nil {
		metrics.RecordCatalogRequest(op, time.Since(start), 0, err)
		c.logFailure(ctx, op, path, err)
		return nil
	}

	items := normalizeAll(page.Results, defaultKind)
	metrics.RecordCatalogRequest(op, time.Since(start), len(items), nil)
	if c.cache != nil {
		c.cache.Add(key, slices.Clone(items))
	}
	return items
}

// getJSON fetches path and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := c.breaker.execute(func() ([]byte, error) {
		return c.doRequest(ctx, path, params)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// doRequest performs one GET and returns the body of a 2xx response.
func (c *Client) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	if c.language != "" && q.Get("language") == "" {
		q.Set("language", c.language)
	}
	if c.accessToken == "" && c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}

	fullURL := c.baseURL + path
	if encoded := q.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ReelMatch/1.0")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %s returned status %d: %s", ErrStatus, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func (c *Client) logFailure(ctx context.Context, op, path string, err error) {
	event := c.logger.Warn()
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		event = event.Str("request_id", requestID)
	}
	event.Err(err).
		Str("operation", op).
		Str("path", path).
		Msg("Catalog request failed")
}

// cacheKey is path plus the sorted query, excluding credentials.
func cacheKey(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

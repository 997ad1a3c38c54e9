// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// Expirer is implemented by caches that can drop expired entries in bulk.
type Expirer interface {
	CleanupExpired() int
	Name() string
}

// Janitor periodically purges expired entries so that rarely-read keys do
// not pin memory until they are evicted by capacity. It implements
// suture.Service.
type Janitor struct {
	target   Expirer
	interval time.Duration
}

// NewJanitor creates a janitor sweeping target every interval.
func NewJanitor(target Expirer, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Janitor{target: target, interval: interval}
}

// Serve runs until ctx is cancelled.
func (j *Janitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := j.target.CleanupExpired(); n > 0 {
				logging.Debug().
					Str("cache", j.target.Name()).
					Int("removed", n).
					Msg("Expired cache entries purged")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (j *Janitor) String() string {
	return "cache-janitor-" + j.target.Name()
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package store

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// GCService runs value log garbage collection on an interval. It implements
// suture.Service.
type GCService struct {
	store    *Store
	interval time.Duration
}

// NewGCService creates a GC service for s.
func NewGCService(s *Store, interval time.Duration) *GCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &GCService{store: s, interval: interval}
}

// Serve runs until ctx is cancelled.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := g.store.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("Store GC failed")
				continue
			}
			logging.Debug().Dur("duration", time.Since(start)).Msg("Store GC completed")
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (g *GCService) String() string {
	return "store-gc"
}

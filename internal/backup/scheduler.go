// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package backup

import (
	"context"
	"time"
)

// Scheduler is a suture service that snapshots the store every interval
// and prunes old snapshots afterwards.
type Scheduler struct {
	manager  *Manager
	interval time.Duration
}

// NewScheduler returns a scheduler for m. Intervals below one minute are
// raised to one minute.
func NewScheduler(m *Manager, interval time.Duration) *Scheduler {
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Scheduler{manager: m, interval: interval}
}

// Serve runs until ctx is cancelled.
func (s *Scheduler) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	logger := s.manager.logger
	if _, err := s.manager.CreateBackup(ctx); err != nil {
		logger.Error().Err(err).Msg("Scheduled backup failed")
		return
	}
	if _, err := s.manager.ApplyRetention(); err != nil {
		logger.Error().Err(err).Msg("Retention policy application failed")
	}
}

// String implements fmt.Stringer for suture logging.
func (s *Scheduler) String() string {
	return "backup-scheduler"
}

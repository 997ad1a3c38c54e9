// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package store

import (
	"context"
	"fmt"
)

// Watchlist is the watchlist collection with status tracking.
type Watchlist struct {
	*Collection[WatchlistEntry]
}

// UpdateStatus sets the status of a watchlist entry. It returns false when
// the entry is not on the user's watchlist.
func (w *Watchlist) UpdateStatus(ctx context.Context, userKey, itemID string, status WatchStatus) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("invalid watch status %q", status)
	}
	now := w.store.now().UTC()
	return w.modify(ctx, userKey, itemID, "update_status", func(e *WatchlistEntry) error {
		e.Status = status
		e.UpdatedAt = now
		return nil
	})
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package backup

import (
	"errors"
	"fmt"
	"os"
)

// ApplyRetention removes all but the newest retain snapshots and returns
// how many were deleted.
func (m *Manager) ApplyRetention() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	backups, err := m.ListBackups()
	if err != nil {
		return 0, err
	}
	if len(backups) <= m.retain {
		return 0, nil
	}

	var (
		deleted     int
		deletedSize int64
		firstErr    error
	)
	for _, b := range backups[m.retain:] {
		if err := deleteBackup(&b); err != nil {
			m.logger.Warn().Err(err).Str("backup_id", b.ID).Msg("Failed to delete expired snapshot")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		deleted++
		deletedSize += b.SizeBytes
	}

	if deleted > 0 {
		m.logger.Info().
			Int("deleted_count", deleted).
			Int64("deleted_size", deletedSize).
			Int("retained", m.retain).
			Msg("Retention policy applied")
	}
	return deleted, firstErr
}

func deleteBackup(b *Backup) error {
	if err := os.Remove(b.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	if err := os.Remove(b.Path + checksumSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove checksum: %w", err)
	}
	return nil
}

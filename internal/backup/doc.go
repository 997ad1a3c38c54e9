// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package backup takes scheduled snapshots of the user data store.
//
// # Overview
//
// A snapshot is the store's Badger backup stream, gzip-compressed and
// written atomically into the backup directory:
//
//	<dir>/reelmatch-20260102T030000.000Z.bak.gz
//	<dir>/reelmatch-20260102T030000.000Z.bak.gz.sha256
//
// The sidecar holds the SHA-256 of the compressed file in sha256sum format
// so snapshots can also be checked outside the server.
//
// # Retention
//
// After every scheduled snapshot the newest Retain snapshots are kept and
// older ones are removed together with their sidecars.
//
// # Usage
//
//	manager, err := backup.NewManager(st, &cfg.Backup)
//	tree.AddMaintenanceService(backup.NewScheduler(manager, cfg.Backup.Interval))
//
//	// Manual snapshot
//	b, err := manager.CreateBackup(ctx)
//
//	// Integrity check
//	err = manager.Verify(b.ID)
//
// A snapshot can be restored offline with badger's own tooling
// (badger restore) after gunzip.
package backup

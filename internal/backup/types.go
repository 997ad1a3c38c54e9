// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package backup

import (
	"context"
	"errors"
	"io"
	"time"
)

const (
	filePrefix     = "reelmatch-"
	fileSuffix     = ".bak.gz"
	checksumSuffix = ".sha256"

	// idLayout sorts lexicographically in chronological order.
	idLayout = "20060102T150405.000Z"
)

var (
	// ErrBackupNotFound is returned for an unknown backup ID.
	ErrBackupNotFound = errors.New("backup not found")

	// ErrChecksumMismatch is returned when a snapshot fails verification.
	ErrChecksumMismatch = errors.New("backup checksum mismatch")
)

// Source produces a full snapshot stream. *store.Store implements it.
type Source interface {
	Backup(ctx context.Context, w io.Writer) (uint64, error)
}

// Backup describes one snapshot on disk.
type Backup struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
	Checksum  string    `json:"checksum"`

	// Version is the Badger version the snapshot covers. It is only known
	// for snapshots created by this process.
	Version uint64 `json:"version,omitempty"`
}

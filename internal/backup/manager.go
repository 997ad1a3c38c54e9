// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package backup

import (
	"bufio"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Manager creates, lists, verifies and prunes snapshots in one directory.
type Manager struct {
	source Source
	dir    string
	retain int
	now    func() time.Time
	logger zerolog.Logger

	// mu serializes snapshot creation and pruning.
	mu sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the clock used to name snapshots.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates the backup directory if needed and returns a manager
// writing snapshots of src into it.
func NewManager(src Source, cfg *config.BackupConfig, opts ...Option) (*Manager, error) {
	if src == nil {
		return nil, errors.New("backup source is required")
	}
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, errors.New("backup directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	m := &Manager{
		source: src,
		dir:    cfg.Dir,
		retain: cfg.Retain,
		now:    time.Now,
		logger: logging.WithComponent("backup"),
	}
	if m.retain < 1 {
		m.retain = 1
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// CreateBackup writes a new snapshot. The file only appears under its final
// name once it is complete.
func (m *Manager) CreateBackup(ctx context.Context) (b *Backup, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now()
	defer func() {
		var size int64
		if b != nil {
			size = b.SizeBytes
		}
		metrics.RecordBackup(size, err)
	}()

	createdAt := m.now().UTC()
	id := createdAt.Format(idLayout)
	finalPath := m.pathFor(id)

	tmp, err := os.CreateTemp(m.dir, ".tmp-"+filePrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()        //nolint:errcheck // already failing
			os.Remove(tmpPath) //nolint:errcheck // best effort cleanup
		}
	}()

	hasher := sha256.New()
	gz := gzip.NewWriter(io.MultiWriter(tmp, hasher))
	version, err := m.source.Backup(ctx, gz)
	if err != nil {
		return nil, fmt.Errorf("snapshot store: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("finish compression: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return nil, fmt.Errorf("rename snapshot: %w", err)
	}
	committed = true

	checksum := hex.EncodeToString(hasher.Sum(nil))
	sidecar := fmt.Sprintf("%s  %s\n", checksum, filepath.Base(finalPath))
	if err := os.WriteFile(finalPath+checksumSuffix, []byte(sidecar), 0o640); err != nil {
		return nil, fmt.Errorf("write checksum: %w", err)
	}

	info, err := os.Stat(finalPath)
	if err != nil {
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}

	b = &Backup{
		ID:        id,
		Path:      finalPath,
		CreatedAt: createdAt,
		SizeBytes: info.Size(),
		Checksum:  checksum,
		Version:   version,
	}
	m.logger.Info().
		Str("backup_id", id).
		Int64("size_bytes", b.SizeBytes).
		Uint64("version", version).
		Dur("duration", time.Since(start)).
		Msg("Store snapshot created")
	return b, nil
}

// ListBackups returns the snapshots on disk, newest first.
func (m *Manager) ListBackups() ([]Backup, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	backups := make([]Backup, 0, len(entries))
	for _, e := range entries {
		id, ok := parseFileName(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		b, err := m.describe(id)
		if err != nil {
			m.logger.Warn().Err(err).Str("backup_id", id).Msg("Skipping unreadable snapshot")
			continue
		}
		backups = append(backups, *b)
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].ID > backups[j].ID })
	return backups, nil
}

// GetBackup returns one snapshot by ID.
func (m *Manager) GetBackup(id string) (*Backup, error) {
	if _, err := time.Parse(idLayout, id); err != nil {
		return nil, ErrBackupNotFound
	}
	b, err := m.describe(id)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBackupNotFound
	}
	return b, err
}

// Verify recomputes the snapshot checksum and checks that the gzip stream
// decodes to the end.
func (m *Manager) Verify(id string) error {
	b, err := m.GetBackup(id)
	if err != nil {
		return err
	}
	if b.Checksum == "" {
		return fmt.Errorf("%w: no checksum recorded for %s", ErrChecksumMismatch, id)
	}

	f, err := os.Open(b.Path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	gz, err := gzip.NewReader(io.TeeReader(f, hasher))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrChecksumMismatch, err)
	}
	if _, err := io.Copy(io.Discard, gz); err != nil {
		return fmt.Errorf("%w: %v", ErrChecksumMismatch, err)
	}
	// Drain any trailing bytes so the hash covers the whole file.
	if _, err := io.Copy(hasher, f); err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	if got := hex.EncodeToString(hasher.Sum(nil)); got != b.Checksum {
		return fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, got, b.Checksum)
	}
	return nil
}

func (m *Manager) describe(id string) (*Backup, error) {
	createdAt, err := time.Parse(idLayout, id)
	if err != nil {
		return nil, fmt.Errorf("parse backup id: %w", err)
	}
	path := m.pathFor(id)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	checksum, err := readChecksum(path + checksumSuffix)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return &Backup{
		ID:        id,
		Path:      path,
		CreatedAt: createdAt,
		SizeBytes: info.Size(),
		Checksum:  checksum,
	}, nil
}

func (m *Manager) pathFor(id string) string {
	return filepath.Join(m.dir, filePrefix+id+fileSuffix)
}

// parseFileName extracts the ID from a snapshot file name.
func parseFileName(name string) (string, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	if _, err := time.Parse(idLayout, id); err != nil {
		return "", false
	}
	return id, true
}

// readChecksum reads the hash field of a sha256sum-style sidecar.
func readChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read checksum: %w", err)
		}
		return "", nil
	}
	fields := strings.Fields(sc.Text())
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], nil
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package backup

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/store"
)

// mockSource writes a fixed payload, or fails with err.
type mockSource struct {
	payload string
	err     error

	mu    sync.Mutex
	calls int
}

func (m *mockSource) Backup(_ context.Context, w io.Writer) (uint64, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if _, err := io.WriteString(w, m.payload); err != nil {
		return 0, err
	}
	return 7, nil
}

// steppingClock advances one second per call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestManager(t *testing.T, src Source, retain int) *Manager {
	t.Helper()
	m, err := NewManager(src, &config.BackupConfig{
		Dir:    filepath.Join(t.TempDir(), "backups"),
		Retain: retain,
	}, WithClock(steppingClock()))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m
}

func TestNewManager_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewManager(nil, &config.BackupConfig{Dir: t.TempDir()}); err == nil {
		t.Error("expected error for nil source")
	}
	if _, err := NewManager(&mockSource{}, &config.BackupConfig{Dir: " "}); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, &mockSource{payload: "snapshot-bytes"}, 3)
	b, err := m.CreateBackup(context.Background())
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}

	if b.ID != "20260102T030001.000Z" {
		t.Errorf("ID = %q", b.ID)
	}
	if b.Version != 7 || b.SizeBytes == 0 || len(b.Checksum) != 64 {
		t.Errorf("Backup = %+v", b)
	}

	f, err := os.Open(b.Path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	data, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if string(data) != "snapshot-bytes" {
		t.Errorf("payload = %q", data)
	}

	sidecar, err := os.ReadFile(b.Path + checksumSuffix)
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	if want := b.Checksum + "  " + filepath.Base(b.Path) + "\n"; string(sidecar) != want {
		t.Errorf("sidecar = %q, want %q", sidecar, want)
	}

	if err := m.Verify(b.ID); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestCreateBackup_SourceFailureLeavesNothing(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, &mockSource{err: errors.New("store closed")}, 3)
	if _, err := m.CreateBackup(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory not empty after failure: %v", names)
	}
}

func TestListBackups_NewestFirst(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, &mockSource{payload: "x"}, 10)
	for i := 0; i < 3; i++ {
		if _, err := m.CreateBackup(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(m.dir, "notes.txt"), []byte("hi"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := m.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].CreatedAt.After(got[i].CreatedAt) {
			t.Errorf("not newest first: %s before %s", got[i-1].ID, got[i].ID)
		}
	}
	if got[0].Checksum == "" {
		t.Error("checksum not read from sidecar")
	}
}

func TestGetBackup_NotFound(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, &mockSource{payload: "x"}, 3)
	for _, id := range []string{"20260102T030001.000Z", "../../etc/passwd", ""} {
		if _, err := m.GetBackup(id); !errors.Is(err, ErrBackupNotFound) {
			t.Errorf("GetBackup(%q) error = %v, want ErrBackupNotFound", id, err)
		}
	}
}

func TestVerify_DetectsCorruption(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, &mockSource{payload: strings.Repeat("reelmatch", 100)}, 3)
	b, err := m.CreateBackup(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(b.Path)
	if err != nil {
		t.Fatal(err)
	}
	data[len(data)/2] ^= 0xFF
	if err := os.WriteFile(b.Path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := m.Verify(b.ID); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Verify() error = %v, want ErrChecksumMismatch", err)
	}
}

func TestApplyRetention(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, &mockSource{payload: "x"}, 2)
	var created []*Backup
	for i := 0; i < 4; i++ {
		b, err := m.CreateBackup(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		created = append(created, b)
	}

	deleted, err := m.ApplyRetention()
	if err != nil {
		t.Fatalf("ApplyRetention() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	left, err := m.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 2 || left[0].ID != created[3].ID || left[1].ID != created[2].ID {
		t.Errorf("remaining = %+v, want the two newest", left)
	}
	if _, err := os.Stat(created[0].Path + checksumSuffix); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("sidecar of pruned snapshot still present: %v", err)
	}

	// Nothing further to prune.
	if deleted, _ := m.ApplyRetention(); deleted != 0 {
		t.Errorf("second ApplyRetention() deleted %d", deleted)
	}
}

func TestCreateBackup_RealStore(t *testing.T) {
	t.Parallel()

	st, err := store.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	if _, err := st.Watchlist.Add(ctx, "alice", store.WatchlistEntry{
		ItemID: 550,
		Kind:   catalog.KindMovie,
		Title:  "Fight Club",
		Status: store.StatusWatched,
	}); err != nil {
		t.Fatal(err)
	}

	m := newTestManager(t, st, 3)
	b, err := m.CreateBackup(ctx)
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if b.Version == 0 {
		t.Error("Version = 0, want store version")
	}
	if err := m.Verify(b.ID); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestScheduler(t *testing.T) {
	t.Parallel()

	src := &mockSource{payload: "x"}
	s := NewScheduler(newTestManager(t, src, 1), time.Second)
	if s.interval != time.Minute {
		t.Errorf("interval = %v, want clamp to 1m", s.interval)
	}
	if s.String() != "backup-scheduler" {
		t.Errorf("String() = %q", s.String())
	}

	s.runOnce(context.Background())
	s.runOnce(context.Background())
	left, err := s.manager.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 || len(left) != 1 {
		t.Errorf("calls = %d, snapshots = %d; want 2 calls, 1 retained", src.calls, len(left))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package store persists per-user data in BadgerDB: taste profiles,
// watchlists, ratings and favorite people.
//
// Keys have the form <collection>:<userKey>:<entryID> and values are JSON.
// The store runs either on disk or fully in memory (tests, ephemeral
// deployments).
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
)

// Errors
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrClosed is returned when the store has been closed.
	ErrClosed = errors.New("store: closed")

	// ErrInvalidKey is returned for empty keys or keys containing the separator.
	ErrInvalidKey = errors.New("store: invalid key")
)

const (
	keySeparator = ":"
	gcRatio      = 0.5
	closeTimeout = 30 * time.Second
)

// Store owns the Badger database and the per-user collections in it.
type Store struct {
	Watchlist *Watchlist
	Ratings   *Collection[Rating]
	Favorites *Collection[FavoritePerson]

	db       *badger.DB
	inMemory bool
	profiles *Collection[StoredProfile]
	now      func() time.Time

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store described by cfg.
func Open(cfg *config.StoreConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
		opts.SyncWrites = cfg.SyncWrites
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Store opened")
	return newStore(db, cfg.InMemory), nil
}

func newStore(db *badger.DB, inMemory bool) *Store {
	s := &Store{db: db, inMemory: inMemory, now: time.Now}
	s.Watchlist = &Watchlist{Collection: newCollection[WatchlistEntry](s, CollectionWatchlist)}
	s.Ratings = newCollection[Rating](s, CollectionRatings)
	s.Favorites = newCollection[FavoritePerson](s, CollectionFavorites)
	s.profiles = newCollection[StoredProfile](s, CollectionProfiles)
	return s
}

// OpenInMemory opens an in-memory store.
func OpenInMemory() (*Store, error) {
	return Open(&config.StoreConfig{InMemory: true})
}

// Close closes the database. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		logging.Info().Msg("Store closed")
		return nil
	case <-time.After(closeTimeout):
		logging.Warn().Dur("timeout", closeTimeout).Msg("BadgerDB close timed out")
		return fmt.Errorf("badgerdb close timeout after %v", closeTimeout)
	}
}

// RunGC reclaims value log space until Badger reports nothing to rewrite.
// It is a no-op for in-memory stores.
func (s *Store) RunGC() error {
	if err := s.check(context.Background()); err != nil {
		return err
	}
	if s.inMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(gcRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Backup streams a full snapshot of the database to w in Badger's backup
// format and returns the version it covers.
func (s *Store) Backup(ctx context.Context, w io.Writer) (uint64, error) {
	if err := s.check(ctx); err != nil {
		return 0, err
	}
	version, err := s.db.Backup(w, 0)
	if err != nil {
		return 0, fmt.Errorf("backup BadgerDB: %w", err)
	}
	return version, nil
}

// Ping reports whether the store is usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	return s.db.View(func(*badger.Txn) error { return nil })
}

// check fails fast on a closed store or a finished context.
func (s *Store) check(ctx context.Context) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	return ctx.Err()
}

// makeKey builds <collection>:<userKey>:<id>. Entry ids may contain the
// separator because they are always the last segment.
func makeKey(collection, userKey, id string) ([]byte, error) {
	prefix, err := userPrefix(collection, userKey)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty entry id", ErrInvalidKey)
	}
	return append(prefix, id...), nil
}

// userPrefix is the scan prefix for all of a user's entries in a collection.
func userPrefix(collection, userKey string) ([]byte, error) {
	if err := ValidateUserKey(userKey); err != nil {
		return nil, err
	}
	return []byte(collection + keySeparator + userKey + keySeparator), nil
}

// ValidateUserKey rejects keys that are empty or contain the separator.
// A separator in the user key would let one user's prefix scan reach
// another user's entries.
func ValidateUserKey(userKey string) error {
	if strings.TrimSpace(userKey) == "" {
		return fmt.Errorf("%w: empty user key", ErrInvalidKey)
	}
	if strings.Contains(userKey, keySeparator) {
		return fmt.Errorf("%w: user key contains %q", ErrInvalidKey, keySeparator)
	}
	return nil
}

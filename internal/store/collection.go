// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Entry is a record stored in a per-user collection.
type Entry interface {
	EntryID() string
}

// Collection is a per-user keyed set of entries of one type.
type Collection[T Entry] struct {
	store *Store
	name  string
}

func newCollection[T Entry](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

// Name returns the collection's key prefix.
func (c *Collection[T]) Name() string {
	return c.name
}

// GetAll returns every entry for userKey in key order. A user with no
// entries gets an empty slice.
func (c *Collection[T]) GetAll(ctx context.Context, userKey string) (entries []T, err error) {
	defer func() { metrics.RecordStoreOperation(c.name, "get_all", err) }()

	if err = c.store.check(ctx); err != nil {
		return nil, err
	}
	prefix, err := userPrefix(c.name, userKey)
	if err != nil {
		return nil, err
	}

	entries = []T{}
	err = c.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var entry T
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return fmt.Errorf("decode %s entry %s: %w", c.name, it.Item().Key(), err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Get returns one entry or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, userKey, id string) (entry T, err error) {
	defer func() { metrics.RecordStoreOperation(c.name, "get", ignoreNotFound(err)) }()

	if err = c.store.check(ctx); err != nil {
		return entry, err
	}
	key, err := makeKey(c.name, userKey, id)
	if err != nil {
		return entry, err
	}

	err = c.store.db.View(func(txn *badger.Txn) error {
		return readEntry(txn, key, &entry)
	})
	return entry, err
}

// Add inserts entry. It returns false without writing when an entry with
// the same id already exists.
func (c *Collection[T]) Add(ctx context.Context, userKey string, entry T) (added bool, err error) {
	defer func() { metrics.RecordStoreOperation(c.name, "add", err) }()

	if err = c.store.check(ctx); err != nil {
		return false, err
	}
	key, err := makeKey(c.name, userKey, entry.EntryID())
	if err != nil {
		return false, err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return false, fmt.Errorf("marshal %s entry: %w", c.name, err)
	}

	err = c.store.db.Update(func(txn *badger.Txn) error {
		_, getErr := txn.Get(key)
		if getErr == nil {
			return nil
		}
		if !errors.Is(getErr, badger.ErrKeyNotFound) {
			return fmt.Errorf("check %s entry: %w", c.name, getErr)
		}
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set %s entry: %w", c.name, err)
		}
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// Put inserts or replaces entry.
func (c *Collection[T]) Put(ctx context.Context, userKey string, entry T) (err error) {
	defer func() { metrics.RecordStoreOperation(c.name, "put", err) }()

	if err = c.store.check(ctx); err != nil {
		return err
	}
	key, err := makeKey(c.name, userKey, entry.EntryID())
	if err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal %s entry: %w", c.name, err)
	}

	return c.store.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set %s entry: %w", c.name, err)
		}
		return nil
	})
}

// Remove deletes the entry with id. It returns false when nothing was stored.
func (c *Collection[T]) Remove(ctx context.Context, userKey, id string) (removed bool, err error) {
	defer func() { metrics.RecordStoreOperation(c.name, "remove", err) }()

	if err = c.store.check(ctx); err != nil {
		return false, err
	}
	key, err := makeKey(c.name, userKey, id)
	if err != nil {
		return false, err
	}

	err = c.store.db.Update(func(txn *badger.Txn) error {
		_, getErr := txn.Get(key)
		if errors.Is(getErr, badger.ErrKeyNotFound) {
			return nil
		}
		if getErr != nil {
			return fmt.Errorf("check %s entry: %w", c.name, getErr)
		}
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("delete %s entry: %w", c.name, err)
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// modify applies fn to a stored entry inside one transaction and writes the
// result back. It returns false when the entry does not exist.
func (c *Collection[T]) modify(ctx context.Context, userKey, id, op string, fn func(*T) error) (found bool, err error) {
	defer func() { metrics.RecordStoreOperation(c.name, op, err) }()

	if err = c.store.check(ctx); err != nil {
		return false, err
	}
	key, err := makeKey(c.name, userKey, id)
	if err != nil {
		return false, err
	}

	err = c.store.db.Update(func(txn *badger.Txn) error {
		var entry T
		if err := readEntry(txn, key, &entry); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}
		if err := fn(&entry); err != nil {
			return err
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshal %s entry: %w", c.name, err)
		}
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set %s entry: %w", c.name, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func readEntry(txn *badger.Txn, key []byte, dst any) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dst)
	})
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package store

import (
	"context"
	"errors"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// SaveProfile stores profile as the user's current taste profile,
// replacing any earlier one. CreatedAt survives re-onboarding.
func (s *Store) SaveProfile(ctx context.Context, userKey string, profile recommend.TasteProfile, answers map[int]string) (*StoredProfile, error) {
	now := s.now().UTC()
	stored := StoredProfile{
		UserKey:   userKey,
		Profile:   profile.Clone(),
		Answers:   make(map[int]string, len(answers)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for q, a := range answers {
		stored.Answers[q] = a
	}

	prev, err := s.profiles.Get(ctx, userKey, profileEntryID)
	switch {
	case err == nil:
		stored.CreatedAt = prev.CreatedAt
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	if err := s.profiles.Put(ctx, userKey, stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetProfile returns the user's current profile or ErrNotFound.
func (s *Store) GetProfile(ctx context.Context, userKey string) (*StoredProfile, error) {
	stored, err := s.profiles.Get(ctx, userKey, profileEntryID)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// DeleteProfile removes the user's profile. It returns false when none exists.
func (s *Store) DeleteProfile(ctx context.Context, userKey string) (bool, error) {
	return s.profiles.Remove(ctx, userKey, profileEntryID)
}

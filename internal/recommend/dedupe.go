// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "github.com/tomtom215/reelmatch/internal/catalog"

// Dedupe drops repeated and inadmissible items, keeping the first occurrence
// of each item in input order. Applying it twice gives the same result.
func Dedupe(items []catalog.Item) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		if !items[i].Admissible() {
			continue
		}
		key := items[i].Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, items[i])
	}
	return out
}

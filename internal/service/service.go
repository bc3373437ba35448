// Package service holds the per-family aggregation services: they fetch
// entities from the search index, the relational store or the upstream
// album platform, and always pipe results through population before
// returning. Reads only; user-state mutations live in the favorites
// orchestration.
package service

import (
	"encoding/json"

	"github.com/example/media-platform/internal/catalog"
)

// Lookup keys accepted by the GetByKey operations.
const (
	KeySlug = "slug"
	KeyID   = "id"
)

// decodeHits unmarshals raw search hits into canonical entities, skipping
// hits that fail to decode (the index carries the documents as indexed;
// a stray malformed document must not fail the listing).
func decodeHits[T any](hits []json.RawMessage) []T {
	out := make([]T, 0, len(hits))
	for _, h := range hits {
		var v T
		if err := json.Unmarshal(h, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// dedupeIDs preserves first-occurrence order.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// orderByIDs reorders fetched items to match the requested id order.
// Ids with no matching item are skipped.
func orderByIDs[T any](items []T, ids []string, id func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, it := range items {
		byID[id(it)] = it
	}
	out := make([]T, 0, len(items))
	for _, want := range ids {
		if it, ok := byID[want]; ok {
			out = append(out, it)
		}
	}
	return out
}

func badKey(key string) error {
	return &catalog.InvalidRequestError{Message: "unsupported lookup key " + key}
}

// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package lifecycle

// ReorderByIDs arranges fetched items back into the order of the requested
// id list.
//
// Batch lookups use `id = ANY($1)`, which returns rows in storage order. The
// requested order is authoritative: a playlist's course list and a course's
// chapter list are ordered documents. Ids with no matching item (deleted,
// hidden, or unknown) are skipped, and an id appearing twice yields the item
// twice.
func ReorderByIDs[T any](ids []string, items []T, idOf func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[idOf(item)] = item
	}

	ordered := make([]T, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered
}

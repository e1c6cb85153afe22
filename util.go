package cfbs

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// sortedUnique returns items sorted ascending. It panics via a
// PreconditionError if items contains a duplicate key: the source's seed
// constructors run the sorted input straight through the same strictly-
// ascending append used by manual Append calls, which asserts the previous
// key is less than the next one, so a duplicate key crashes rather than
// getting silently deduplicated.
func sortedUnique[K constraints.Ordered](items []K) []K {
	out := slices.Clone(items)
	slices.Sort(out)
	for i := 1; i < len(out); i++ {
		requireTrue(out[i-1] < out[i], "duplicate key %v in seed constructor input", out[i])
	}
	return out
}

// sortedUniqueIndices returns the indices of keys in ascending sorted key
// order. It panics via a PreconditionError if keys contains a duplicate, for
// the same reason as sortedUnique: a seed constructor's sorted input is fed
// through the builder's strictly-ascending Append, which rejects equal
// adjacent keys rather than picking a winner between them.
func sortedUniqueIndices[K constraints.Ordered](keys []K) []int {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case keys[a] < keys[b]:
			return -1
		case keys[a] > keys[b]:
			return 1
		default:
			return 0
		}
	})
	for i := 1; i < len(idx); i++ {
		requireTrue(keys[idx[i-1]] < keys[idx[i]], "duplicate key %v in seed constructor input", keys[idx[i]])
	}
	return idx
}

// Package cfbs implements immutable associative containers laid out in
// CFBS order: an implicit binary-search tree stored breadth-first in a
// single contiguous array, chosen to minimize cache misses and branch
// mispredictions relative to a classical sorted-array-plus-binary-search.
//
// Every container follows the same build-then-freeze lifecycle: a
// *Builder type accepts strictly-ascending appends, and Freeze reorders the
// builder's parallel arrays into CFBS order and returns the read-only
// container. There is no mutation after Freeze — the containers documented
// here are SortedSet, RangeSet, AutoSet, SortedMap, RangeMap, DeltaMap,
// DenseMap, and AutoMap. The underlying index algebra lives in
// internal/order; the tree-navigation primitives are re-exported from this
// package (facade.go) for advanced callers.
package cfbs

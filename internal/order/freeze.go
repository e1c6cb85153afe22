package order

import "iter"

// MakeOrder reorders a sorted sequence into CFBS order. If into is nil, a
// new slice of len(src) is allocated; otherwise into is used as-is (and its
// length, not len(src), determines the logical size), returning the same
// backing array the caller supplied. This accommodates external
// pre-allocated numeric-array buffers (spec §6's "into" parameter).
//
// Comment preserved from the source: reads walk the input in its natural
// (sequential) order so they can be prefetched; writes are scattered across
// into and are assumed to benefit from hardware write-combining rather than
// any explicit cache-line masking (spec §9, Open Question 1 — no masking is
// implemented here either).
func MakeOrder[T any](src []T, into []T) []T {
	sz := len(into)
	if into == nil {
		sz = len(src)
		into = make([]T, sz)
	}
	i := 0
	for idx := range IterForward(sz) {
		into[idx] = src[i]
		i++
	}
	return into
}

// MakeOrderPair reorders two parallel sorted sequences (e.g. keys and their
// paired values) into CFBS order using a single permutation, so corresponding
// elements stay aligned. If intoA/intoB are nil, new slices of len(srcA) are
// allocated.
func MakeOrderPair[A, B any](srcA []A, srcB []B, intoA []A, intoB []B) ([]A, []B) {
	sz := len(intoA)
	if intoA == nil {
		sz = len(srcA)
		intoA = make([]A, sz)
	}
	if intoB == nil {
		intoB = make([]B, sz)
	}
	i := 0
	for idx := range IterForward(sz) {
		intoA[idx] = srcA[i]
		intoB[idx] = srcB[i]
		i++
	}
	return intoA, intoB
}

// MakeOrderSeq is MakeOrder for a caller that can only provide an iter.Seq
// source (not a random-access slice) — the source need not support
// indexing, only forward iteration, matching the Python original's support
// for an arbitrary iterable when `into` is supplied.
func MakeOrderSeq[T any](src iter.Seq[T], into []T) []T {
	sz := len(into)
	next, stop := iter.Pull(src)
	defer stop()
	for idx := range IterForward(sz) {
		v, ok := next()
		if !ok {
			break
		}
		into[idx] = v
	}
	return into
}

// IterOrderForward yields the elements of a CFBS-ordered array in sorted
// order.
func IterOrderForward[T any](arr []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range IterForward(len(arr)) {
			if !yield(arr[i]) {
				return
			}
		}
	}
}

// IterOrderBackward yields the elements of a CFBS-ordered array in reverse
// sorted order.
func IterOrderBackward[T any](arr []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range IterBackward(len(arr)) {
			if !yield(arr[i]) {
				return
			}
		}
	}
}

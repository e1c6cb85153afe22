package cfbs

import (
	"fmt"
	"io"
	"iter"

	"git.lukeshu.com/go/lowmemjson"
	"golang.org/x/exp/constraints"

	"github.com/cfbs-go/cfbs/internal/order"
)

// RangeSetBuilder accumulates key runs, coalescing consecutive keys into
// [low,high] ranges as they're appended. The zero value is ready to use.
type RangeSetBuilder[K constraints.Integer] struct {
	lowKeys, highKeys []K
	length            int
	frozen            bool
}

// NewRangeSetBuilder creates a builder seeded with items, sorted ascending
// and coalescing adjacent runs. A duplicate key panics.
func NewRangeSetBuilder[K constraints.Integer](items []K) *RangeSetBuilder[K] {
	b := &RangeSetBuilder[K]{}
	for _, k := range sortedUnique(items) {
		b.AppendRange(k, k)
	}
	return b
}

// AppendRange appends the closed range [lowKey, highKey]. lowKey must be
// strictly greater than the last appended highKey.
func (b *RangeSetBuilder[K]) AppendRange(lowKey, highKey K) {
	requireNotFrozen(b.frozen, "RangeSetBuilder.AppendRange")
	requireTrue(len(b.highKeys) == 0 || b.highKeys[len(b.highKeys)-1] < lowKey,
		"RangeSetBuilder.AppendRange: low=%v not strictly greater than last high", lowKey)
	requireTrue(lowKey <= highKey, "RangeSetBuilder.AppendRange: low=%v > high=%v", lowKey, highKey)

	if n := len(b.highKeys); n > 0 && b.highKeys[n-1]+1 == lowKey {
		b.highKeys[n-1] = highKey
	} else {
		b.lowKeys = append(b.lowKeys, lowKey)
		b.highKeys = append(b.highKeys, highKey)
	}
	b.length += int(highKey-lowKey) + 1
}

// popRange removes and returns the last appended run.
func (b *RangeSetBuilder[K]) popRange() (low, high K) {
	requireNotFrozen(b.frozen, "RangeSetBuilder.popRange")
	n := len(b.lowKeys)
	requireTrue(n > 0, "RangeSetBuilder.popRange: empty")
	low, high = b.lowKeys[n-1], b.highKeys[n-1]
	b.lowKeys, b.highKeys = b.lowKeys[:n-1], b.highKeys[:n-1]
	b.length -= int(high-low) + 1
	return low, high
}

func (b *RangeSetBuilder[K]) peekLastHigh() (K, bool) {
	if len(b.highKeys) == 0 {
		var zero K
		return zero, false
	}
	return b.highKeys[len(b.highKeys)-1], true
}

// Len reports the cardinality of keys appended so far (counting every key
// within every run, not the number of runs).
func (b *RangeSetBuilder[K]) Len() int { return b.length }

// Freeze reorders the builder's runs into CFBS order and returns the
// immutable RangeSet.
func (b *RangeSetBuilder[K]) Freeze() *RangeSet[K] {
	requireNotFrozen(b.frozen, "RangeSetBuilder.Freeze")
	b.frozen = true
	return &RangeSet[K]{
		length:   b.length,
		lowKeys:  order.MakeOrder(b.lowKeys, nil),
		highKeys: order.MakeOrder(b.highKeys, nil),
	}
}

// RangeSet is an immutable set of keys stored as coalesced [low,high] runs,
// searched by floor lookup on the run's low keys.
type RangeSet[K constraints.Integer] struct {
	length            int
	lowKeys, highKeys []K
}

// NewRangeSet builds and immediately freezes a RangeSet from items.
func NewRangeSet[K constraints.Integer](items []K) *RangeSet[K] {
	return NewRangeSetBuilder[K](items).Freeze()
}

// FromRawRangeSet reconstructs a frozen RangeSet directly from already-
// CFBS-ordered parallel run arrays.
func FromRawRangeSet[K constraints.Integer](length int, lowKeys, highKeys []K) *RangeSet[K] {
	return &RangeSet[K]{length: length, lowKeys: lowKeys, highKeys: highKeys}
}

// ToRaw returns the container's length and its parallel low/high run
// arrays, for serialization.
func (s *RangeSet[K]) ToRaw() (int, []K, []K) {
	return s.length, s.lowKeys, s.highKeys
}

// Contains reports whether key is in the set.
func (s *RangeSet[K]) Contains(key K) bool {
	idx := Search(s.lowKeys, key)
	return idx != -1 && key <= s.highKeys[idx]
}

// Len returns the number of keys in the set.
func (s *RangeSet[K]) Len() int { return s.length }

// runs yields the set's coalesced (low, high) runs in sorted order.
func (s *RangeSet[K]) runs() iter.Seq2[K, K] {
	return func(yield func(K, K) bool) {
		for idx := range order.IterForward(len(s.lowKeys)) {
			if !yield(s.lowKeys[idx], s.highKeys[idx]) {
				return
			}
		}
	}
}

// All yields the set's keys in sorted order, expanding every run.
func (s *RangeSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for low, high := range s.runs() {
			for k := low; k <= high; k++ {
				if !yield(k) {
					return
				}
			}
		}
	}
}

func (s *RangeSet[K]) String() string {
	return fmt.Sprintf("RangeSet(len=%d, low_keys=%v, high_keys=%v)", s.length, s.lowKeys, s.highKeys)
}

var (
	_ lowmemjson.Encodable = (*RangeSet[int])(nil)
	_ lowmemjson.Decodable = (*RangeSet[int])(nil)
)

func (s *RangeSet[K]) EncodeJSON(w io.Writer) error {
	if _, err := fmt.Fprintf(w, `{"Len":%d,"LowKeys":`, s.length); err != nil {
		return err
	}
	if err := lowmemjson.NewEncoder(w).Encode(s.lowKeys); err != nil {
		return err
	}
	if _, err := w.Write([]byte(`,"HighKeys":`)); err != nil {
		return err
	}
	if err := lowmemjson.NewEncoder(w).Encode(s.highKeys); err != nil {
		return err
	}
	_, err := w.Write([]byte{'}'})
	return err
}

func (s *RangeSet[K]) DecodeJSON(r io.RuneScanner) error {
	var n int
	var low, high []K
	err := decodeObjectFields(r, map[string]func(io.RuneScanner) error{
		"Len":      func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&n) },
		"LowKeys":  func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&low) },
		"HighKeys": func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&high) },
	})
	if err != nil {
		return err
	}
	s.length, s.lowKeys, s.highKeys = n, low, high
	return nil
}

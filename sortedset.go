package cfbs

import (
	"fmt"
	"io"
	"iter"

	"git.lukeshu.com/go/lowmemjson"
	"golang.org/x/exp/constraints"

	"github.com/cfbs-go/cfbs/internal/order"
)

// SortedSetBuilder accumulates keys in strictly ascending order for a
// SortedSet. The zero value is ready to use.
type SortedSetBuilder[K constraints.Ordered] struct {
	keys   []K
	frozen bool
}

// NewSortedSetBuilder creates a builder seeded with items, sorted ascending.
// A duplicate key panics, the same as calling Append with a key that isn't
// strictly greater than the last one.
func NewSortedSetBuilder[K constraints.Ordered](items []K) *SortedSetBuilder[K] {
	b := &SortedSetBuilder[K]{}
	for _, k := range sortedUnique(items) {
		b.Append(k)
	}
	return b
}

// Append adds key to the builder. key must be strictly greater than the
// last appended key.
func (b *SortedSetBuilder[K]) Append(key K) {
	requireNotFrozen(b.frozen, "SortedSetBuilder.Append")
	if n := len(b.keys); n > 0 {
		requireTrue(b.keys[n-1] < key,
			"SortedSetBuilder.Append: key %v is not strictly greater than last key %v", key, b.keys[n-1])
	}
	b.keys = append(b.keys, key)
}

// peekLast returns the last appended key and whether one exists, without
// removing it.
func (b *SortedSetBuilder[K]) peekLast() (K, bool) {
	if len(b.keys) == 0 {
		var zero K
		return zero, false
	}
	return b.keys[len(b.keys)-1], true
}

// popLast removes and returns the last appended key. Used internally by
// AutoSet when promoting a singleton into a range.
func (b *SortedSetBuilder[K]) popLast() K {
	requireNotFrozen(b.frozen, "SortedSetBuilder.popLast")
	requireTrue(len(b.keys) > 0, "SortedSetBuilder.popLast: empty")
	k := b.keys[len(b.keys)-1]
	b.keys = b.keys[:len(b.keys)-1]
	return k
}

// Len reports the number of keys appended so far.
func (b *SortedSetBuilder[K]) Len() int { return len(b.keys) }

// Freeze reorders the builder's keys into CFBS order and returns the
// immutable SortedSet. The builder must not be used afterward.
func (b *SortedSetBuilder[K]) Freeze() *SortedSet[K] {
	requireNotFrozen(b.frozen, "SortedSetBuilder.Freeze")
	b.frozen = true
	return &SortedSet[K]{keys: order.MakeOrder(b.keys, nil)}
}

// SortedSet is an immutable set of keys, searched by floor lookup on a
// CFBS-ordered array.
type SortedSet[K constraints.Ordered] struct {
	keys []K
}

// NewSortedSet builds and immediately freezes a SortedSet from items.
func NewSortedSet[K constraints.Ordered](items []K) *SortedSet[K] {
	return NewSortedSetBuilder[K](items).Freeze()
}

// FromRawSortedSet reconstructs a frozen SortedSet directly from an
// already-CFBS-ordered key array, without re-sorting.
func FromRawSortedSet[K constraints.Ordered](keys []K) *SortedSet[K] {
	return &SortedSet[K]{keys: keys}
}

// ToRaw returns the container's length and underlying CFBS-ordered key
// array, for serialization.
func (s *SortedSet[K]) ToRaw() (int, []K) {
	return len(s.keys), s.keys
}

// Contains reports whether key is in the set.
func (s *SortedSet[K]) Contains(key K) bool {
	idx := Search(s.keys, key)
	return idx != -1 && s.keys[idx] == key
}

// Len returns the number of keys in the set.
func (s *SortedSet[K]) Len() int { return len(s.keys) }

// All yields the set's keys in sorted order.
func (s *SortedSet[K]) All() iter.Seq[K] {
	return order.IterOrderForward(s.keys)
}

// Backward yields the set's keys in reverse sorted order.
func (s *SortedSet[K]) Backward() iter.Seq[K] {
	return order.IterOrderBackward(s.keys)
}

func (s *SortedSet[K]) String() string {
	return fmt.Sprintf("SortedSet(len=%d, keys=%v)", len(s.keys), s.keys)
}

var (
	_ lowmemjson.Encodable = (*SortedSet[int])(nil)
	_ lowmemjson.Decodable = (*SortedSet[int])(nil)
)

// EncodeJSON serializes the container's raw form: {"Len":n,"Keys":[...]}.
func (s *SortedSet[K]) EncodeJSON(w io.Writer) error {
	if _, err := fmt.Fprintf(w, `{"Len":%d,"Keys":`, len(s.keys)); err != nil {
		return err
	}
	if err := lowmemjson.NewEncoder(w).Encode(s.keys); err != nil {
		return err
	}
	_, err := w.Write([]byte{'}'})
	return err
}

// DecodeJSON reconstructs the container from the form written by
// EncodeJSON. The decoded key array is already CFBS-ordered, so no
// re-sorting happens (same contract as FromRawSortedSet).
func (s *SortedSet[K]) DecodeJSON(r io.RuneScanner) error {
	var n int
	var keys []K
	err := decodeObjectFields(r, map[string]func(io.RuneScanner) error{
		"Len":  func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&n) },
		"Keys": func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&keys) },
	})
	if err != nil {
		return err
	}
	_ = n
	s.keys = keys
	return nil
}

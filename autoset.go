package cfbs

import (
	"fmt"
	"io"
	"iter"

	"git.lukeshu.com/go/lowmemjson"
	"golang.org/x/exp/constraints"

	"github.com/cfbs-go/cfbs/internal/miniter"
)

// AutoSetBuilder routes each appended key to whichever of a SortedSet (for
// singleton outliers) or a RangeSet (for runs of >= 2 consecutive keys)
// best fits, per spec §4.3.
type AutoSetBuilder[K constraints.Integer] struct {
	simple     *SortedSetBuilder[K]
	compressed *RangeSetBuilder[K]
	frozen     bool
}

// NewAutoSetBuilder creates a builder seeded with items, sorted ascending.
// A duplicate key panics.
func NewAutoSetBuilder[K constraints.Integer](items []K) *AutoSetBuilder[K] {
	b := &AutoSetBuilder[K]{
		simple:     NewSortedSetBuilder[K](nil),
		compressed: NewRangeSetBuilder[K](nil),
	}
	for _, k := range sortedUnique(items) {
		b.Append(k)
	}
	return b
}

// Append adds a single key, routed to the simple or range child.
func (b *AutoSetBuilder[K]) Append(key K) {
	b.AppendRange(key, key)
}

// AppendRange appends the closed range [lowKey, highKey], routed to the
// simple or range child per spec §4.3:
//  1. if the simple set's last key is lowKey-1, pop it and promote into a
//     range run;
//  2. else if the range set's last high key is lowKey-1, or the appended
//     span has more than one key, append/extend a range run;
//  3. else append lowKey to the simple set.
func (b *AutoSetBuilder[K]) AppendRange(lowKey, highKey K) {
	requireNotFrozen(b.frozen, "AutoSetBuilder.AppendRange")
	requireTrue(lowKey <= highKey, "AutoSetBuilder.AppendRange: low=%v > high=%v", lowKey, highKey)

	if last, ok := b.simple.peekLast(); ok && last+1 == lowKey {
		low := b.simple.popLast()
		b.compressed.AppendRange(low, highKey)
		return
	}
	if lowKey != highKey {
		b.compressed.AppendRange(lowKey, highKey)
		return
	}
	if lastHigh, ok := b.compressed.peekLastHigh(); ok && lastHigh+1 == lowKey {
		b.compressed.AppendRange(lowKey, highKey)
		return
	}
	b.simple.Append(lowKey)
}

// Len reports the total number of keys appended so far.
func (b *AutoSetBuilder[K]) Len() int { return b.simple.Len() + b.compressed.Len() }

// Freeze freezes both children and returns the immutable AutoSet.
func (b *AutoSetBuilder[K]) Freeze() *AutoSet[K] {
	requireNotFrozen(b.frozen, "AutoSetBuilder.Freeze")
	b.frozen = true
	return &AutoSet[K]{simple: b.simple.Freeze(), compressed: b.compressed.Freeze()}
}

// AutoSet is a multi-strategy immutable set: singleton keys live in a
// SortedSet, runs of >= 2 consecutive keys live in a RangeSet.
type AutoSet[K constraints.Integer] struct {
	simple     *SortedSet[K]
	compressed *RangeSet[K]
}

// NewAutoSet builds and immediately freezes an AutoSet from items.
func NewAutoSet[K constraints.Integer](items []K) *AutoSet[K] {
	return NewAutoSetBuilder[K](items).Freeze()
}

// FromRawAutoSet reconstructs a frozen AutoSet from its two children's raw
// forms. simpleLen is implied by len(simpleKeys) and accepted only for
// symmetry with the other containers' ToRaw/FromRaw signatures.
func FromRawAutoSet[K constraints.Integer](simpleLen int, simpleKeys []K, compressedLen int, compressedLow, compressedHigh []K) *AutoSet[K] {
	return &AutoSet[K]{
		simple:     FromRawSortedSet[K](simpleKeys),
		compressed: FromRawRangeSet[K](compressedLen, compressedLow, compressedHigh),
	}
}

// ToRaw returns the raw forms of the simple and range children.
func (s *AutoSet[K]) ToRaw() (simple struct {
	Len  int
	Keys []K
}, compressed struct {
	Len      int
	LowKeys  []K
	HighKeys []K
}) {
	simple.Len, simple.Keys = s.simple.ToRaw()
	compressed.Len, compressed.LowKeys, compressed.HighKeys = s.compressed.ToRaw()
	return simple, compressed
}

// Contains reports whether key is in the set.
func (s *AutoSet[K]) Contains(key K) bool {
	return s.simple.Contains(key) || s.compressed.Contains(key)
}

// Len returns the number of keys in the set.
func (s *AutoSet[K]) Len() int { return s.simple.Len() + s.compressed.Len() }

// All yields the set's keys in sorted order, merging the two children.
func (s *AutoSet[K]) All() iter.Seq[K] {
	return miniter.Merge(func(a, b K) bool { return a < b }, s.simple.All(), s.compressed.All())
}

func (s *AutoSet[K]) String() string {
	return fmt.Sprintf("AutoSet(simple=%v, compressed=%v)", s.simple, s.compressed)
}

var (
	_ lowmemjson.Encodable = (*AutoSet[int])(nil)
	_ lowmemjson.Decodable = (*AutoSet[int])(nil)
)

func (s *AutoSet[K]) EncodeJSON(w io.Writer) error {
	if _, err := w.Write([]byte(`{"Simple":`)); err != nil {
		return err
	}
	if err := s.simple.EncodeJSON(w); err != nil {
		return err
	}
	if _, err := w.Write([]byte(`,"Compressed":`)); err != nil {
		return err
	}
	if err := s.compressed.EncodeJSON(w); err != nil {
		return err
	}
	_, err := w.Write([]byte{'}'})
	return err
}

func (s *AutoSet[K]) DecodeJSON(r io.RuneScanner) error {
	simple := &SortedSet[K]{}
	compressed := &RangeSet[K]{}
	err := decodeObjectFields(r, map[string]func(io.RuneScanner) error{
		"Simple":     simple.DecodeJSON,
		"Compressed": compressed.DecodeJSON,
	})
	if err != nil {
		return err
	}
	s.simple, s.compressed = simple, compressed
	return nil
}

package cfbs

import (
	"fmt"
	"io"
	"iter"

	"git.lukeshu.com/go/lowmemjson"
	"golang.org/x/exp/constraints"

	"github.com/cfbs-go/cfbs/internal/miniter"
	"github.com/cfbs-go/cfbs/internal/mode"
)

// AutoMapBuilder routes each appended (key, value) pair to whichever of a
// SortedMap (singleton outliers), a RangeMap (runs of equal values), or a
// DeltaMap (runs of a step-1 arithmetic value progression) best fits, per
// spec §4.3. A direct multi-key AppendRange must say which of the two
// compressed children it targets, via mode.Mode — mode.Compressed or
// mode.Delta — since appending a range can't try both the way a single-key
// Append does.
type AutoMapBuilder[K constraints.Integer, V constraints.Integer] struct {
	simple     *SortedMapBuilder[K, V]
	compressed *RangeMapBuilder[K, V]
	sequential *DeltaMapBuilder[K, V]
	frozen     bool
}

// NewAutoMapBuilder creates a builder seeded with keys and their paired
// values, sorted ascending by key. A duplicate key panics.
func NewAutoMapBuilder[K constraints.Integer, V constraints.Integer](keys []K, values []V) *AutoMapBuilder[K, V] {
	requireTrue(len(keys) == len(values), "NewAutoMapBuilder: keys/values length mismatch")
	b := &AutoMapBuilder[K, V]{
		simple:     NewSortedMapBuilder[K, V](nil, nil),
		compressed: NewRangeMapBuilder[K, V](nil, nil),
		sequential: NewDeltaMapBuilder[K, V](nil, nil),
	}
	idx := sortedUniqueIndices(keys)
	for _, i := range idx {
		b.Append(keys[i], values[i])
	}
	return b
}

// Append adds a single (key, value) pair, routed to whichever child fits.
func (b *AutoMapBuilder[K, V]) Append(key K, value V) {
	b.AppendRange(key, key, value, mode.Compressed)
}

// AppendRange appends the closed key range [lowKey, highKey] whose values
// are given by m: mode.Compressed means value is constant across the range;
// mode.Delta means the value at lowKey is value and increases by 1 per key.
// This reproduces the source classifier's _append_range verbatim, including
// its length-2 reshape rule that promotes a two-element compressed or
// sequential run's head into the simple map so the tail can absorb a new
// adjacent key into a longer run.
func (b *AutoMapBuilder[K, V]) AppendRange(lowKey, highKey K, value V, m mode.Mode) {
	mode.RequireValid(m)
	requireNotFrozen(b.frozen, "AutoMapBuilder.AppendRange")
	requireTrue(lowKey <= highKey, "AutoMapBuilder.AppendRange: low=%v > high=%v", lowKey, highKey)

	if lastKey, lastVal, ok := b.simple.peekLast(); ok && lastKey+1 == lowKey {
		if (lowKey == highKey || m == mode.Compressed) && lastVal == value {
			b.simple.popLast()
			b.compressed.AppendRange(lastKey, highKey, value)
			return
		}
		if (lowKey == highKey || m == mode.Delta) && lastVal+1 == value {
			b.simple.popLast()
			b.sequential.AppendRange(lastKey, highKey, lastVal)
			return
		}
	}

	// If both compression and sequential apply, convert (2, 1) into (1, 2)
	// so that later appends can take full advantage of the longer range.
	if lowKey == highKey {
		if cLow, cHigh, cVal, ok := b.compressed.peekLastRun(); ok && cLow+1 == cHigh {
			if cHigh+1 == lowKey && cVal+1 == value {
				b.simple.Append(cLow, cVal)
				b.sequential.AppendRange(cHigh, lowKey, cVal)
				b.compressed.popRange()
				return
			}
		}
		if sLow, sHigh, sVal, ok := b.sequential.peekLastRun(); ok && sLow+1 == sHigh {
			// adjacent(), not ==, since the stored value is at sLow and has
			// to be walked forward to compare against the new key's value.
			if sHigh+1 == lowKey && sVal+1 == value {
				b.simple.Append(sLow, sVal)
				b.compressed.AppendRange(sHigh, lowKey, value)
				b.sequential.popRange()
				return
			}
		}
	}

	if lowKey == highKey || m == mode.Compressed {
		if lowKey != highKey {
			b.compressed.AppendRange(lowKey, highKey, value)
			return
		}
		if _, cHigh, cVal, ok := b.compressed.peekLastRun(); ok && cHigh+1 == lowKey && cVal == value {
			b.compressed.AppendRange(lowKey, highKey, value)
			return
		}
	}

	if lowKey == highKey || m == mode.Delta {
		if lowKey != highKey {
			b.sequential.AppendRange(lowKey, highKey, value)
			return
		}
		if sLow, sHigh, sVal, ok := b.sequential.peekLastRun(); ok &&
			sHigh+1 == lowKey && sVal+V(lowKey-sLow) == value {
			b.sequential.AppendRange(lowKey, highKey, value)
			return
		}
	}

	requireTrue(lowKey == highKey, "AutoMapBuilder.AppendRange: fell through for a multi-key range")
	b.simple.Append(lowKey, value)
}

// Len reports the total number of keys appended so far.
func (b *AutoMapBuilder[K, V]) Len() int {
	return b.simple.Len() + b.compressed.Len() + b.sequential.Len()
}

// Freeze freezes all three children and returns the immutable AutoMap.
func (b *AutoMapBuilder[K, V]) Freeze() *AutoMap[K, V] {
	requireNotFrozen(b.frozen, "AutoMapBuilder.Freeze")
	b.frozen = true
	return &AutoMap[K, V]{
		simple:     b.simple.Freeze(),
		compressed: b.compressed.Freeze(),
		sequential: b.sequential.Freeze(),
	}
}

// AutoMap is a multi-strategy immutable map: singleton keys live in a
// SortedMap, runs of equal values live in a RangeMap, and runs of a step-1
// arithmetic value progression live in a DeltaMap.
type AutoMap[K constraints.Integer, V constraints.Integer] struct {
	simple     *SortedMap[K, V]
	compressed *RangeMap[K, V]
	sequential *DeltaMap[K, V]
}

// NewAutoMap builds and immediately freezes an AutoMap from parallel
// key/value slices.
func NewAutoMap[K constraints.Integer, V constraints.Integer](keys []K, values []V) *AutoMap[K, V] {
	return NewAutoMapBuilder[K, V](keys, values).Freeze()
}

// FromRawAutoMap reconstructs a frozen AutoMap from its three children's
// raw forms.
func FromRawAutoMap[K constraints.Integer, V constraints.Integer](
	simpleKeys []K, simpleValues []V,
	compressedLen int, compressedLow, compressedHigh []K, compressedValues []V,
	sequentialLen int, sequentialLow, sequentialHigh []K, sequentialValues []V,
) *AutoMap[K, V] {
	return &AutoMap[K, V]{
		simple:     FromRawSortedMap[K, V](simpleKeys, simpleValues),
		compressed: FromRawRangeMap[K, V](compressedLen, compressedLow, compressedHigh, compressedValues),
		sequential: FromRawDeltaMap[K, V](sequentialLen, sequentialLow, sequentialHigh, sequentialValues),
	}
}

// Get returns the value for key, trying the simple, then compressed, then
// sequential child in turn, propagating a wrapped ErrKeyMissing only if all
// three miss.
func (m *AutoMap[K, V]) Get(key K) (V, error) {
	if v, err := m.simple.Get(key); err == nil {
		return v, nil
	}
	if v, err := m.compressed.Get(key); err == nil {
		return v, nil
	}
	return m.sequential.Get(key)
}

// Len returns the number of keys in the map.
func (m *AutoMap[K, V]) Len() int {
	return m.simple.Len() + m.compressed.Len() + m.sequential.Len()
}

// All yields the map's (key, value) pairs in sorted key order, merging the
// three children without deduplication (their key ranges are disjoint by
// construction).
func (m *AutoMap[K, V]) All() iter.Seq2[K, V] {
	type pair struct {
		k K
		v V
	}
	toSeq := func(src iter.Seq2[K, V]) iter.Seq[pair] {
		return func(yield func(pair) bool) {
			for k, v := range src {
				if !yield(pair{k, v}) {
					return
				}
			}
		}
	}
	merged := miniter.Merge(func(a, b pair) bool { return a.k < b.k },
		toSeq(m.simple.All()), toSeq(m.compressed.All()), toSeq(m.sequential.All()))
	return func(yield func(K, V) bool) {
		for p := range merged {
			if !yield(p.k, p.v) {
				return
			}
		}
	}
}

func (m *AutoMap[K, V]) String() string {
	return fmt.Sprintf("AutoMap(simple=%v, compressed=%v, delta=%v)", m.simple, m.compressed, m.sequential)
}

var (
	_ lowmemjson.Encodable = (*AutoMap[int, int])(nil)
	_ lowmemjson.Decodable = (*AutoMap[int, int])(nil)
)

func (m *AutoMap[K, V]) EncodeJSON(w io.Writer) error {
	if _, err := w.Write([]byte(`{"Simple":`)); err != nil {
		return err
	}
	if err := m.simple.EncodeJSON(w); err != nil {
		return err
	}
	if _, err := w.Write([]byte(`,"Compressed":`)); err != nil {
		return err
	}
	if err := m.compressed.EncodeJSON(w); err != nil {
		return err
	}
	if _, err := w.Write([]byte(`,"Sequential":`)); err != nil {
		return err
	}
	if err := m.sequential.EncodeJSON(w); err != nil {
		return err
	}
	_, err := w.Write([]byte{'}'})
	return err
}

func (m *AutoMap[K, V]) DecodeJSON(r io.RuneScanner) error {
	simple := &SortedMap[K, V]{}
	compressed := &RangeMap[K, V]{}
	sequential := &DeltaMap[K, V]{}
	err := decodeObjectFields(r, map[string]func(io.RuneScanner) error{
		"Simple":     simple.DecodeJSON,
		"Compressed": compressed.DecodeJSON,
		"Sequential": sequential.DecodeJSON,
	})
	if err != nil {
		return err
	}
	m.simple, m.compressed, m.sequential = simple, compressed, sequential
	return nil
}

package cfbs

import (
	"fmt"
	"io"
	"iter"

	"git.lukeshu.com/go/lowmemjson"
	"golang.org/x/exp/constraints"

	"github.com/cfbs-go/cfbs/internal/order"
)

// SortedMapBuilder accumulates (key, value) pairs in strictly ascending key
// order for a SortedMap. The zero value is ready to use.
type SortedMapBuilder[K constraints.Ordered, V any] struct {
	keys   []K
	values []V
	frozen bool
}

// NewSortedMapBuilder creates a builder seeded with keys and their paired
// values, sorted ascending by key. A duplicate key panics, the same as
// calling Append with a key that isn't strictly greater than the last one.
func NewSortedMapBuilder[K constraints.Ordered, V any](keys []K, values []V) *SortedMapBuilder[K, V] {
	requireTrue(len(keys) == len(values), "NewSortedMapBuilder: keys/values length mismatch")
	idx := sortedUniqueIndices(keys)
	b := &SortedMapBuilder[K, V]{}
	for _, i := range idx {
		b.Append(keys[i], values[i])
	}
	return b
}

// Append adds the pair (key, value). key must be strictly greater than the
// last appended key.
func (b *SortedMapBuilder[K, V]) Append(key K, value V) {
	requireNotFrozen(b.frozen, "SortedMapBuilder.Append")
	if n := len(b.keys); n > 0 {
		requireTrue(b.keys[n-1] < key,
			"SortedMapBuilder.Append: key %v is not strictly greater than last key %v", key, b.keys[n-1])
	}
	b.keys = append(b.keys, key)
	b.values = append(b.values, value)
}

// peekLast returns the last appended (key, value) pair and whether one
// exists, without removing it.
func (b *SortedMapBuilder[K, V]) peekLast() (K, V, bool) {
	if len(b.keys) == 0 {
		var zk K
		var zv V
		return zk, zv, false
	}
	n := len(b.keys)
	return b.keys[n-1], b.values[n-1], true
}

// popLast removes and returns the last appended (key, value) pair. Used
// internally by AutoMap when promoting a singleton into a compressed or
// sequential run.
func (b *SortedMapBuilder[K, V]) popLast() (K, V) {
	requireNotFrozen(b.frozen, "SortedMapBuilder.popLast")
	n := len(b.keys)
	requireTrue(n > 0, "SortedMapBuilder.popLast: empty")
	k, v := b.keys[n-1], b.values[n-1]
	b.keys, b.values = b.keys[:n-1], b.values[:n-1]
	return k, v
}

// Len reports the number of pairs appended so far.
func (b *SortedMapBuilder[K, V]) Len() int { return len(b.keys) }

// Freeze reorders the builder's pairs into CFBS order and returns the
// immutable SortedMap.
func (b *SortedMapBuilder[K, V]) Freeze() *SortedMap[K, V] {
	requireNotFrozen(b.frozen, "SortedMapBuilder.Freeze")
	b.frozen = true
	keys, values := order.MakeOrderPair(b.keys, b.values, nil, nil)
	return &SortedMap[K, V]{keys: keys, values: values}
}

// SortedMap is an immutable key/value map, searched by floor lookup on a
// CFBS-ordered key array with a parallel value array.
type SortedMap[K constraints.Ordered, V any] struct {
	keys   []K
	values []V
}

// NewSortedMap builds and immediately freezes a SortedMap from parallel
// key/value slices.
func NewSortedMap[K constraints.Ordered, V any](keys []K, values []V) *SortedMap[K, V] {
	return NewSortedMapBuilder[K, V](keys, values).Freeze()
}

// FromRawSortedMap reconstructs a frozen SortedMap directly from already-
// CFBS-ordered parallel key/value arrays, without re-sorting.
func FromRawSortedMap[K constraints.Ordered, V any](keys []K, values []V) *SortedMap[K, V] {
	return &SortedMap[K, V]{keys: keys, values: values}
}

// ToRaw returns the container's length and underlying CFBS-ordered
// key/value arrays, for serialization.
func (m *SortedMap[K, V]) ToRaw() (int, []K, []V) {
	return len(m.keys), m.keys, m.values
}

// Get returns the value for key, or a wrapped ErrKeyMissing if absent.
func (m *SortedMap[K, V]) Get(key K) (V, error) {
	idx := Search(m.keys, key)
	if idx == -1 || m.keys[idx] != key {
		var zero V
		return zero, keyMissing(key)
	}
	return m.values[idx], nil
}

// Len returns the number of pairs in the map.
func (m *SortedMap[K, V]) Len() int { return len(m.keys) }

// All yields the map's (key, value) pairs in sorted key order.
func (m *SortedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for idx := range order.IterForward(len(m.keys)) {
			if !yield(m.keys[idx], m.values[idx]) {
				return
			}
		}
	}
}

// Backward yields the map's (key, value) pairs in reverse sorted key order.
func (m *SortedMap[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for idx := range order.IterBackward(len(m.keys)) {
			if !yield(m.keys[idx], m.values[idx]) {
				return
			}
		}
	}
}

func (m *SortedMap[K, V]) String() string {
	return fmt.Sprintf("SortedMap(len=%d, keys=%v, values=%v)", len(m.keys), m.keys, m.values)
}

var (
	_ lowmemjson.Encodable = (*SortedMap[int, int])(nil)
	_ lowmemjson.Decodable = (*SortedMap[int, int])(nil)
)

func (m *SortedMap[K, V]) EncodeJSON(w io.Writer) error {
	if _, err := fmt.Fprintf(w, `{"Len":%d,"Keys":`, len(m.keys)); err != nil {
		return err
	}
	if err := lowmemjson.NewEncoder(w).Encode(m.keys); err != nil {
		return err
	}
	if _, err := w.Write([]byte(`,"Values":`)); err != nil {
		return err
	}
	if err := lowmemjson.NewEncoder(w).Encode(m.values); err != nil {
		return err
	}
	_, err := w.Write([]byte{'}'})
	return err
}

func (m *SortedMap[K, V]) DecodeJSON(r io.RuneScanner) error {
	var n int
	var keys []K
	var values []V
	err := decodeObjectFields(r, map[string]func(io.RuneScanner) error{
		"Len":    func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&n) },
		"Keys":   func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&keys) },
		"Values": func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&values) },
	})
	if err != nil {
		return err
	}
	m.keys, m.values = keys, values
	return nil
}

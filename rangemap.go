package cfbs

import (
	"fmt"
	"io"
	"iter"

	"git.lukeshu.com/go/lowmemjson"
	"golang.org/x/exp/constraints"

	"github.com/cfbs-go/cfbs/internal/order"
)

// RangeMapBuilder accumulates (key-run, value) triples, coalescing a run of
// consecutive keys sharing an equal value into a single [low,high] entry.
// The zero value is ready to use.
type RangeMapBuilder[K constraints.Integer, V comparable] struct {
	lowKeys, highKeys []K
	values            []V
	length            int
	frozen            bool
}

// NewRangeMapBuilder creates a builder seeded with keys and their paired
// values, sorted ascending by key. A duplicate key panics.
func NewRangeMapBuilder[K constraints.Integer, V comparable](keys []K, values []V) *RangeMapBuilder[K, V] {
	requireTrue(len(keys) == len(values), "NewRangeMapBuilder: keys/values length mismatch")
	idx := sortedUniqueIndices(keys)
	b := &RangeMapBuilder[K, V]{}
	for _, i := range idx {
		b.AppendRange(keys[i], keys[i], values[i])
	}
	return b
}

// AppendRange appends the closed key range [lowKey, highKey] mapped to
// value, coalescing with the previous run when it abuts and shares the same
// value.
func (b *RangeMapBuilder[K, V]) AppendRange(lowKey, highKey K, value V) {
	requireNotFrozen(b.frozen, "RangeMapBuilder.AppendRange")
	requireTrue(len(b.highKeys) == 0 || b.highKeys[len(b.highKeys)-1] < lowKey,
		"RangeMapBuilder.AppendRange: low=%v not strictly greater than last high", lowKey)
	requireTrue(lowKey <= highKey, "RangeMapBuilder.AppendRange: low=%v > high=%v", lowKey, highKey)

	if n := len(b.highKeys); n > 0 && b.highKeys[n-1]+1 == lowKey && b.values[n-1] == value {
		b.highKeys[n-1] = highKey
	} else {
		b.lowKeys = append(b.lowKeys, lowKey)
		b.highKeys = append(b.highKeys, highKey)
		b.values = append(b.values, value)
	}
	b.length += int(highKey-lowKey) + 1
}

// popRange removes and returns the last appended (low, high, value) run.
func (b *RangeMapBuilder[K, V]) popRange() (low, high K, value V) {
	requireNotFrozen(b.frozen, "RangeMapBuilder.popRange")
	n := len(b.lowKeys)
	requireTrue(n > 0, "RangeMapBuilder.popRange: empty")
	low, high, value = b.lowKeys[n-1], b.highKeys[n-1], b.values[n-1]
	b.lowKeys, b.highKeys, b.values = b.lowKeys[:n-1], b.highKeys[:n-1], b.values[:n-1]
	b.length -= int(high-low) + 1
	return low, high, value
}

func (b *RangeMapBuilder[K, V]) peekLastRun() (low, high K, value V, ok bool) {
	if len(b.highKeys) == 0 {
		return low, high, value, false
	}
	n := len(b.highKeys)
	return b.lowKeys[n-1], b.highKeys[n-1], b.values[n-1], true
}

// Len reports the cardinality of keys appended so far.
func (b *RangeMapBuilder[K, V]) Len() int { return b.length }

// Freeze reorders the builder's runs into CFBS order and returns the
// immutable RangeMap.
func (b *RangeMapBuilder[K, V]) Freeze() *RangeMap[K, V] {
	requireNotFrozen(b.frozen, "RangeMapBuilder.Freeze")
	b.frozen = true
	lowKeys, highKeys := order.MakeOrderPair(b.lowKeys, b.highKeys, nil, nil)
	values := order.MakeOrder(b.values, nil)
	return &RangeMap[K, V]{length: b.length, lowKeys: lowKeys, highKeys: highKeys, values: values}
}

// RangeMap is an immutable map storing coalesced runs of consecutive keys
// that share a value, searched by floor lookup on the run's low keys.
type RangeMap[K constraints.Integer, V comparable] struct {
	length            int
	lowKeys, highKeys []K
	values            []V
}

// NewRangeMap builds and immediately freezes a RangeMap from parallel
// key/value slices.
func NewRangeMap[K constraints.Integer, V comparable](keys []K, values []V) *RangeMap[K, V] {
	return NewRangeMapBuilder[K, V](keys, values).Freeze()
}

// FromRawRangeMap reconstructs a frozen RangeMap directly from already-
// CFBS-ordered parallel arrays.
func FromRawRangeMap[K constraints.Integer, V comparable](length int, lowKeys, highKeys []K, values []V) *RangeMap[K, V] {
	return &RangeMap[K, V]{length: length, lowKeys: lowKeys, highKeys: highKeys, values: values}
}

// ToRaw returns the container's length and its parallel run/value arrays.
func (m *RangeMap[K, V]) ToRaw() (int, []K, []K, []V) {
	return m.length, m.lowKeys, m.highKeys, m.values
}

// Get returns the value for key, or a wrapped ErrKeyMissing if absent.
func (m *RangeMap[K, V]) Get(key K) (V, error) {
	idx := Search(m.lowKeys, key)
	if idx == -1 || key > m.highKeys[idx] {
		var zero V
		return zero, keyMissing(key)
	}
	return m.values[idx], nil
}

// Len returns the number of keys in the map.
func (m *RangeMap[K, V]) Len() int { return m.length }

// All yields the map's (key, value) pairs in sorted key order, expanding
// every run.
func (m *RangeMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for idx := range order.IterForward(len(m.lowKeys)) {
			low, high, value := m.lowKeys[idx], m.highKeys[idx], m.values[idx]
			for k := low; k <= high; k++ {
				if !yield(k, value) {
					return
				}
			}
		}
	}
}

func (m *RangeMap[K, V]) String() string {
	return fmt.Sprintf("RangeMap(len=%d, low_keys=%v, high_keys=%v, values=%v)", m.length, m.lowKeys, m.highKeys, m.values)
}

var (
	_ lowmemjson.Encodable = (*RangeMap[int, int])(nil)
	_ lowmemjson.Decodable = (*RangeMap[int, int])(nil)
)

func (m *RangeMap[K, V]) EncodeJSON(w io.Writer) error {
	if _, err := fmt.Fprintf(w, `{"Len":%d,"LowKeys":`, m.length); err != nil {
		return err
	}
	if err := lowmemjson.NewEncoder(w).Encode(m.lowKeys); err != nil {
		return err
	}
	if _, err := w.Write([]byte(`,"HighKeys":`)); err != nil {
		return err
	}
	if err := lowmemjson.NewEncoder(w).Encode(m.highKeys); err != nil {
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

func (m *RangeMap[K, V]) DecodeJSON(r io.RuneScanner) error {
	var n int
	var low, high []K
	var values []V
	err := decodeObjectFields(r, map[string]func(io.RuneScanner) error{
		"Len":      func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&n) },
		"LowKeys":  func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&low) },
		"HighKeys": func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&high) },
		"Values":   func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&values) },
	})
	if err != nil {
		return err
	}
	m.length, m.lowKeys, m.highKeys, m.values = n, low, high, values
	return nil
}

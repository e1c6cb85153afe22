package cfbs

import (
	"fmt"
	"io"
	"iter"

	"git.lukeshu.com/go/lowmemjson"
	"golang.org/x/exp/constraints"

	"github.com/cfbs-go/cfbs/internal/order"
)

// DeltaMapBuilder accumulates (key-run, value) triples, coalescing a run of
// consecutive keys whose values form an arithmetic progression with step 1
// into a single [low,high] entry storing only the low key's value. The zero
// value is ready to use.
type DeltaMapBuilder[K constraints.Integer, V constraints.Integer] struct {
	lowKeys, highKeys []K
	values            []V
	length            int
	frozen            bool
}

// NewDeltaMapBuilder creates a builder seeded with keys and their paired
// values, sorted ascending by key. A duplicate key panics.
func NewDeltaMapBuilder[K constraints.Integer, V constraints.Integer](keys []K, values []V) *DeltaMapBuilder[K, V] {
	requireTrue(len(keys) == len(values), "NewDeltaMapBuilder: keys/values length mismatch")
	idx := sortedUniqueIndices(keys)
	b := &DeltaMapBuilder[K, V]{}
	for _, i := range idx {
		b.AppendRange(keys[i], keys[i], values[i])
	}
	return b
}

// AppendRange appends the closed key range [lowKey, highKey] whose value at
// lowKey is value (and increases by 1 per key thereafter), coalescing with
// the previous run when it abuts and its progression continues into this
// one.
func (b *DeltaMapBuilder[K, V]) AppendRange(lowKey, highKey K, value V) {
	requireNotFrozen(b.frozen, "DeltaMapBuilder.AppendRange")
	requireTrue(len(b.highKeys) == 0 || b.highKeys[len(b.highKeys)-1] < lowKey,
		"DeltaMapBuilder.AppendRange: low=%v not strictly greater than last high", lowKey)
	requireTrue(lowKey <= highKey, "DeltaMapBuilder.AppendRange: low=%v > high=%v", lowKey, highKey)

	if n := len(b.highKeys); n > 0 && b.highKeys[n-1]+1 == lowKey &&
		b.values[n-1]+V(lowKey-b.lowKeys[n-1]) == value {
		b.highKeys[n-1] = highKey
	} else {
		b.lowKeys = append(b.lowKeys, lowKey)
		b.highKeys = append(b.highKeys, highKey)
		b.values = append(b.values, value)
	}
	b.length += int(highKey-lowKey) + 1
}

// popRange removes and returns the last appended (low, high, value) run.
func (b *DeltaMapBuilder[K, V]) popRange() (low, high K, value V) {
	requireNotFrozen(b.frozen, "DeltaMapBuilder.popRange")
	n := len(b.lowKeys)
	requireTrue(n > 0, "DeltaMapBuilder.popRange: empty")
	low, high, value = b.lowKeys[n-1], b.highKeys[n-1], b.values[n-1]
	b.lowKeys, b.highKeys, b.values = b.lowKeys[:n-1], b.highKeys[:n-1], b.values[:n-1]
	b.length -= int(high-low) + 1
	return low, high, value
}

func (b *DeltaMapBuilder[K, V]) peekLastRun() (low, high K, value V, ok bool) {
	if len(b.highKeys) == 0 {
		return low, high, value, false
	}
	n := len(b.highKeys)
	return b.lowKeys[n-1], b.highKeys[n-1], b.values[n-1], true
}

// Len reports the cardinality of keys appended so far.
func (b *DeltaMapBuilder[K, V]) Len() int { return b.length }

// Freeze reorders the builder's runs into CFBS order and returns the
// immutable DeltaMap.
func (b *DeltaMapBuilder[K, V]) Freeze() *DeltaMap[K, V] {
	requireNotFrozen(b.frozen, "DeltaMapBuilder.Freeze")
	b.frozen = true
	lowKeys, highKeys := order.MakeOrderPair(b.lowKeys, b.highKeys, nil, nil)
	values := order.MakeOrder(b.values, nil)
	return &DeltaMap[K, V]{length: b.length, lowKeys: lowKeys, highKeys: highKeys, values: values}
}

// DeltaMap is an immutable map storing coalesced runs of consecutive keys
// whose values form a step-1 arithmetic progression, searched by floor
// lookup on the run's low keys; Get reconstructs the value arithmetically.
type DeltaMap[K constraints.Integer, V constraints.Integer] struct {
	length            int
	lowKeys, highKeys []K
	values            []V
}

// NewDeltaMap builds and immediately freezes a DeltaMap from parallel
// key/value slices.
func NewDeltaMap[K constraints.Integer, V constraints.Integer](keys []K, values []V) *DeltaMap[K, V] {
	return NewDeltaMapBuilder[K, V](keys, values).Freeze()
}

// FromRawDeltaMap reconstructs a frozen DeltaMap directly from already-
// CFBS-ordered parallel arrays.
func FromRawDeltaMap[K constraints.Integer, V constraints.Integer](length int, lowKeys, highKeys []K, values []V) *DeltaMap[K, V] {
	return &DeltaMap[K, V]{length: length, lowKeys: lowKeys, highKeys: highKeys, values: values}
}

// ToRaw returns the container's length and its parallel run/value arrays.
func (m *DeltaMap[K, V]) ToRaw() (int, []K, []K, []V) {
	return m.length, m.lowKeys, m.highKeys, m.values
}

// Get returns the value for key, reconstructed as storedValue + (key -
// lowKey), or a wrapped ErrKeyMissing if absent.
func (m *DeltaMap[K, V]) Get(key K) (V, error) {
	idx := Search(m.lowKeys, key)
	if idx == -1 || key > m.highKeys[idx] {
		var zero V
		return zero, keyMissing(key)
	}
	return m.values[idx] + V(key-m.lowKeys[idx]), nil
}

// Len returns the number of keys in the map.
func (m *DeltaMap[K, V]) Len() int { return m.length }

// All yields the map's (key, value) pairs in sorted key order, expanding
// every run and reconstructing each value.
func (m *DeltaMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for idx := range order.IterForward(len(m.lowKeys)) {
			low, high, value := m.lowKeys[idx], m.highKeys[idx], m.values[idx]
			for k := low; k <= high; k++ {
				if !yield(k, value+V(k-low)) {
					return
				}
			}
		}
	}
}

func (m *DeltaMap[K, V]) String() string {
	return fmt.Sprintf("DeltaMap(len=%d, low_keys=%v, high_keys=%v, values=%v)", m.length, m.lowKeys, m.highKeys, m.values)
}

var (
	_ lowmemjson.Encodable = (*DeltaMap[int, int])(nil)
	_ lowmemjson.Decodable = (*DeltaMap[int, int])(nil)
)

func (m *DeltaMap[K, V]) EncodeJSON(w io.Writer) error {
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

func (m *DeltaMap[K, V]) DecodeJSON(r io.RuneScanner) error {
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

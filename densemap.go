package cfbs

import (
	"fmt"
	"io"
	"iter"

	"git.lukeshu.com/go/lowmemjson"
	"golang.org/x/exp/constraints"

	"github.com/cfbs-go/cfbs/internal/order"
)

// DenseMapBuilder accumulates a run of keys with arbitrary (not necessarily
// equal or sequential) values, packing each run's values into a single
// shared growable buffer indexed by offset — the compression here is in
// amortizing the run/index bookkeeping, not the values themselves. The zero
// value is ready to use.
type DenseMapBuilder[K constraints.Integer, V any] struct {
	lowKeys, highKeys []K
	valueIndices      []int
	valueData         []V
	length            int
	frozen            bool
}

// NewDenseMapBuilder creates a builder seeded with keys and their paired
// values, sorted ascending by key. A duplicate key panics.
func NewDenseMapBuilder[K constraints.Integer, V any](keys []K, values []V) *DenseMapBuilder[K, V] {
	requireTrue(len(keys) == len(values), "NewDenseMapBuilder: keys/values length mismatch")
	idx := sortedUniqueIndices(keys)
	b := &DenseMapBuilder[K, V]{}
	for _, i := range idx {
		b.AppendRange(keys[i], []V{values[i]})
	}
	return b
}

// AppendRange appends len(valueList) keys starting at lowKey, each paired
// with the corresponding element of valueList, coalescing with the previous
// run's value data when it abuts.
func (b *DenseMapBuilder[K, V]) AppendRange(lowKey K, valueList []V) {
	requireNotFrozen(b.frozen, "DenseMapBuilder.AppendRange")
	highKey := lowKey + K(len(valueList)) - 1
	requireTrue(len(b.highKeys) == 0 || b.highKeys[len(b.highKeys)-1] < lowKey,
		"DenseMapBuilder.AppendRange: low=%v not strictly greater than last high", lowKey)
	requireTrue(lowKey <= highKey, "DenseMapBuilder.AppendRange: empty valueList")

	if n := len(b.highKeys); n > 0 && b.highKeys[n-1]+1 == lowKey {
		b.highKeys[n-1] = highKey
		b.valueData = append(b.valueData, valueList...)
	} else {
		b.lowKeys = append(b.lowKeys, lowKey)
		b.highKeys = append(b.highKeys, highKey)
		b.valueIndices = append(b.valueIndices, len(b.valueData))
		b.valueData = append(b.valueData, valueList...)
	}
	b.length += int(highKey-lowKey) + 1
}

// Len reports the cardinality of keys appended so far.
func (b *DenseMapBuilder[K, V]) Len() int { return b.length }

// Freeze reorders the builder's run/index arrays into CFBS order and
// returns the immutable DenseMap. The shared value-data buffer is carried
// over unchanged — its offsets are run-relative, not position-relative, so
// it needs no reordering of its own.
func (b *DenseMapBuilder[K, V]) Freeze() *DenseMap[K, V] {
	requireNotFrozen(b.frozen, "DenseMapBuilder.Freeze")
	b.frozen = true
	lowKeys, highKeys := order.MakeOrderPair(b.lowKeys, b.highKeys, nil, nil)
	valueIndices := order.MakeOrder(b.valueIndices, nil)
	return &DenseMap[K, V]{
		length:       b.length,
		lowKeys:      lowKeys,
		highKeys:     highKeys,
		valueIndices: valueIndices,
		valueData:    b.valueData,
	}
}

// DenseMap is an immutable map storing coalesced runs of consecutive keys
// with arbitrary per-key values, searched by floor lookup on the run's low
// keys; values live in one shared buffer indexed per run.
type DenseMap[K constraints.Integer, V any] struct {
	length            int
	lowKeys, highKeys []K
	valueIndices      []int
	valueData         []V
}

// NewDenseMap builds and immediately freezes a DenseMap from parallel
// key/value slices.
func NewDenseMap[K constraints.Integer, V any](keys []K, values []V) *DenseMap[K, V] {
	return NewDenseMapBuilder[K, V](keys, values).Freeze()
}

// FromRawDenseMap reconstructs a frozen DenseMap directly from already-
// CFBS-ordered parallel run arrays and the shared value-data buffer.
func FromRawDenseMap[K constraints.Integer, V any](length int, lowKeys, highKeys []K, valueIndices []int, valueData []V) *DenseMap[K, V] {
	return &DenseMap[K, V]{length: length, lowKeys: lowKeys, highKeys: highKeys, valueIndices: valueIndices, valueData: valueData}
}

// ToRaw returns the container's length, its parallel run arrays, and the
// shared value-data buffer.
func (m *DenseMap[K, V]) ToRaw() (int, []K, []K, []int, []V) {
	return m.length, m.lowKeys, m.highKeys, m.valueIndices, m.valueData
}

// Get returns the value for key, or a wrapped ErrKeyMissing if absent.
func (m *DenseMap[K, V]) Get(key K) (V, error) {
	idx := Search(m.lowKeys, key)
	if idx == -1 || key > m.highKeys[idx] {
		var zero V
		return zero, keyMissing(key)
	}
	offset := m.valueIndices[idx] + int(key-m.lowKeys[idx])
	return m.valueData[offset], nil
}

// Len returns the number of keys in the map.
func (m *DenseMap[K, V]) Len() int { return m.length }

// All yields the map's (key, value) pairs in sorted key order, expanding
// every run.
func (m *DenseMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for idx := range order.IterForward(len(m.lowKeys)) {
			low, high := m.lowKeys[idx], m.highKeys[idx]
			base := m.valueIndices[idx]
			for k := low; k <= high; k++ {
				if !yield(k, m.valueData[base+int(k-low)]) {
					return
				}
			}
		}
	}
}

func (m *DenseMap[K, V]) String() string {
	return fmt.Sprintf("DenseMap(len=%d, low_keys=%v, high_keys=%v, value_indices=%v, value_data=%v)",
		m.length, m.lowKeys, m.highKeys, m.valueIndices, m.valueData)
}

var (
	_ lowmemjson.Encodable = (*DenseMap[int, int])(nil)
	_ lowmemjson.Decodable = (*DenseMap[int, int])(nil)
)

func (m *DenseMap[K, V]) EncodeJSON(w io.Writer) error {
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
	if _, err := w.Write([]byte(`,"ValueIndices":`)); err != nil {
		return err
	}
	if err := lowmemjson.NewEncoder(w).Encode(m.valueIndices); err != nil {
		return err
	}
	if _, err := w.Write([]byte(`,"ValueData":`)); err != nil {
		return err
	}
	if err := lowmemjson.NewEncoder(w).Encode(m.valueData); err != nil {
		return err
	}
	_, err := w.Write([]byte{'}'})
	return err
}

func (m *DenseMap[K, V]) DecodeJSON(r io.RuneScanner) error {
	var n int
	var low, high []K
	var valueIndices []int
	var valueData []V
	err := decodeObjectFields(r, map[string]func(io.RuneScanner) error{
		"Len":          func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&n) },
		"LowKeys":      func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&low) },
		"HighKeys":     func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&high) },
		"ValueIndices": func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&valueIndices) },
		"ValueData":    func(r io.RuneScanner) error { return lowmemjson.NewDecoder(r).Decode(&valueData) },
	})
	if err != nil {
		return err
	}
	m.length, m.lowKeys, m.highKeys, m.valueIndices, m.valueData = n, low, high, valueIndices, valueData
	return nil
}

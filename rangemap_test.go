package cfbs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeMapCoalescesEqualValues(t *testing.T) {
	t.Parallel()
	b := &RangeMapBuilder[int, string]{}
	b.AppendRange(1, 3, "a")
	b.AppendRange(4, 4, "a") // abuts and equal -> coalesces
	b.AppendRange(6, 6, "a") // not adjacent -> new run
	b.AppendRange(7, 7, "b") // adjacent but different value -> new run
	m := b.Freeze()

	assert.Equal(t, 6, m.Len())
	for k, want := range map[int]string{1: "a", 2: "a", 3: "a", 4: "a", 6: "a", 7: "b"} {
		v, err := m.Get(k)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err := m.Get(5)
	assert.True(t, errors.Is(err, ErrKeyMissing))
}

func TestRangeMapSeedConstructor(t *testing.T) {
	t.Parallel()
	m := NewRangeMap([]int{1, 2, 3}, []string{"x", "x", "x"})
	assert.Equal(t, 3, m.Len())
	v, err := m.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestRangeMapSeedConstructorPanicsOnDuplicateKey(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewRangeMap([]int{1, 2, 2}, []string{"a", "a", "b"}) })
}

func TestRangeMapSerializationRoundTrip(t *testing.T) {
	t.Parallel()
	m := NewRangeMap([]int{1, 2, 3, 4}, []string{"a", "a", "b", "b"})

	var buf bytes.Buffer
	require.NoError(t, m.EncodeJSON(&buf))

	var got RangeMap[int, string]
	require.NoError(t, got.DecodeJSON(bytes.NewReader(buf.Bytes())))
	assert.Equal(t, m.Len(), got.Len())
	v, err := got.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

package cfbs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeltaMapCoalescesProgression(t *testing.T) {
	t.Parallel()
	b := &DeltaMapBuilder[int, int]{}
	b.AppendRange(1, 1, 100)
	b.AppendRange(2, 2, 101) // continues the progression -> coalesces
	b.AppendRange(3, 3, 101) // abuts but breaks the progression -> new run
	m := b.Freeze()

	assert.Equal(t, 3, m.Len())
	v, err := m.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 100, v)
	v, err = m.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 101, v)
	v, err = m.Get(3)
	require.NoError(t, err)
	assert.Equal(t, 101, v)

	_, err = m.Get(4)
	assert.True(t, errors.Is(err, ErrKeyMissing))
}

func TestDeltaMapSeedConstructor(t *testing.T) {
	t.Parallel()
	m := NewDeltaMap([]int{5, 6, 7}, []int{50, 51, 52})
	assert.Equal(t, 3, m.Len())
	v, err := m.Get(6)
	require.NoError(t, err)
	assert.Equal(t, 51, v)
}

func TestDeltaMapSeedConstructorPanicsOnDuplicateKey(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewDeltaMap([]int{1, 2, 2}, []int{10, 11, 12}) })
}

func TestDeltaMapSerializationRoundTrip(t *testing.T) {
	t.Parallel()
	m := NewDeltaMap([]int{1, 2, 3}, []int{10, 11, 12})

	var buf bytes.Buffer
	require.NoError(t, m.EncodeJSON(&buf))

	var got DeltaMap[int, int]
	require.NoError(t, got.DecodeJSON(bytes.NewReader(buf.Bytes())))
	assert.Equal(t, m.Len(), got.Len())
	v, err := got.Get(3)
	require.NoError(t, err)
	assert.Equal(t, 12, v)
}

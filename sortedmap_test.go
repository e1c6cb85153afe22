package cfbs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedMapBasics(t *testing.T) {
	t.Parallel()
	m := NewSortedMap([]int{3, 1, 2}, []string{"three", "one", "two"})
	assert.Equal(t, 3, m.Len())

	v, err := m.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "two", v)

	_, err = m.Get(99)
	assert.True(t, errors.Is(err, ErrKeyMissing))

	var keys []int
	var vals []string
	for k, v := range m.All() {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	assert.Equal(t, []int{1, 2, 3}, keys)
	assert.Equal(t, []string{"one", "two", "three"}, vals)
}

func TestSortedMapSeedConstructorPanicsOnDuplicateKey(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewSortedMap([]int{1, 1, 2}, []string{"first", "second", "two"}) })
}

func TestSortedMapSerializationRoundTrip(t *testing.T) {
	t.Parallel()
	m := NewSortedMap([]int{1, 2, 3}, []int{10, 20, 30})

	var buf bytes.Buffer
	require.NoError(t, m.EncodeJSON(&buf))

	var got SortedMap[int, int]
	require.NoError(t, got.DecodeJSON(bytes.NewReader(buf.Bytes())))
	assert.Equal(t, m.Len(), got.Len())
	v, err := got.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 20, v)
}

package cfbs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenseMapCoalescesRunIndependentOfValue(t *testing.T) {
	t.Parallel()
	b := &DenseMapBuilder[int, string]{}
	b.AppendRange(1, []string{"a", "b"})
	b.AppendRange(3, []string{"c"}) // abuts -> extends the same run
	b.AppendRange(10, []string{"z"})
	m := b.Freeze()

	assert.Equal(t, 4, m.Len())
	for k, want := range map[int]string{1: "a", 2: "b", 3: "c", 10: "z"} {
		v, err := m.Get(k)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err := m.Get(4)
	assert.True(t, errors.Is(err, ErrKeyMissing))
}

func TestDenseMapSeedConstructor(t *testing.T) {
	t.Parallel()
	m := NewDenseMap([]int{1, 2, 3}, []string{"x", "y", "z"})
	assert.Equal(t, 3, m.Len())
	v, err := m.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "y", v)
}

func TestDenseMapSeedConstructorPanicsOnDuplicateKey(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewDenseMap([]int{1, 2, 2}, []string{"a", "b", "c"}) })
}

func TestDenseMapSerializationRoundTrip(t *testing.T) {
	t.Parallel()
	m := NewDenseMap([]int{1, 2, 3}, []string{"x", "y", "z"})

	var buf bytes.Buffer
	require.NoError(t, m.EncodeJSON(&buf))

	var got DenseMap[int, string]
	require.NoError(t, got.DecodeJSON(bytes.NewReader(buf.Bytes())))
	assert.Equal(t, m.Len(), got.Len())
	v, err := got.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "z", v)
}

func TestDenseMapAll(t *testing.T) {
	t.Parallel()
	m := NewDenseMap([]int{1, 2, 5}, []string{"a", "b", "c"})
	var keys []int
	var vals []string
	for k, v := range m.All() {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	assert.Equal(t, []int{1, 2, 5}, keys)
	assert.Equal(t, []string{"a", "b", "c"}, vals)
}

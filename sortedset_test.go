package cfbs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectSet[K any](t *testing.T, seq func(yield func(K) bool)) []K {
	t.Helper()
	var out []K
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func TestSortedSetBasics(t *testing.T) {
	t.Parallel()
	s := NewSortedSet([]int{5, 1, 3, 9, 7})
	assert.Equal(t, 5, s.Len())
	for _, k := range []int{1, 3, 5, 7, 9} {
		assert.True(t, s.Contains(k), "expected %d to be present", k)
	}
	assert.False(t, s.Contains(2))
	assert.False(t, s.Contains(100))

	var got []int
	for v := range s.All() {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 3, 5, 7, 9}, got)

	var back []int
	for v := range s.Backward() {
		back = append(back, v)
	}
	assert.Equal(t, []int{9, 7, 5, 3, 1}, back)
}

func TestSortedSetSeedConstructorPanicsOnDuplicateKey(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewSortedSet([]int{5, 1, 3, 1, 9, 7}) })
}

func TestSortedSetBuilderPreconditions(t *testing.T) {
	t.Parallel()
	b := &SortedSetBuilder[int]{}
	b.Append(1)
	assert.Panics(t, func() { b.Append(1) })
	assert.Panics(t, func() { b.Append(0) })

	frozen := b.Freeze()
	assert.Equal(t, 1, frozen.Len())
	assert.Panics(t, func() { b.Append(2) })
}

func TestSortedSetEmpty(t *testing.T) {
	t.Parallel()
	s := NewSortedSet[int](nil)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(0))
	assert.Nil(t, collectSet[int](t, s.All()))
}

func TestSortedSetSerializationRoundTrip(t *testing.T) {
	t.Parallel()
	s := NewSortedSet([]int{2, 4, 6, 8, 10})

	var buf bytes.Buffer
	require.NoError(t, s.EncodeJSON(&buf))

	var got SortedSet[int]
	require.NoError(t, got.DecodeJSON(bytes.NewReader(buf.Bytes())))
	assert.Equal(t, s.Len(), got.Len())
	assert.ElementsMatch(t, collectSet[int](t, s.All()), collectSet[int](t, got.All()))
}

func TestSortedSetFromRaw(t *testing.T) {
	t.Parallel()
	built := NewSortedSet([]int{1, 2, 3, 4, 5})
	length, keys := built.ToRaw()
	assert.Equal(t, 5, length)

	raw := FromRawSortedSet(keys)
	assert.Equal(t, built.Len(), raw.Len())
	for _, k := range []int{1, 2, 3, 4, 5} {
		assert.True(t, raw.Contains(k))
	}
}

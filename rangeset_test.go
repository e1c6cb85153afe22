package cfbs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeSetCoalescesAdjacentRuns(t *testing.T) {
	t.Parallel()
	b := &RangeSetBuilder[int]{}
	b.AppendRange(1, 3)
	b.AppendRange(4, 4)
	b.AppendRange(6, 8)
	s := b.Freeze()

	assert.Equal(t, 7, s.Len())
	for _, k := range []int{1, 2, 3, 4, 6, 7, 8} {
		assert.True(t, s.Contains(k))
	}
	assert.False(t, s.Contains(5))
	assert.False(t, s.Contains(9))

	var got []int
	for v := range s.All() {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 6, 7, 8}, got)
}

func TestRangeSetBuilderPreconditions(t *testing.T) {
	t.Parallel()
	b := &RangeSetBuilder[int]{}
	b.AppendRange(1, 2)
	assert.Panics(t, func() { b.AppendRange(2, 3) })
	assert.Panics(t, func() { b.AppendRange(5, 4) })

	frozen := b.Freeze()
	assert.Panics(t, func() { b.AppendRange(10, 10) })
	assert.Equal(t, 2, frozen.Len())
}

func TestRangeSetSeedConstructor(t *testing.T) {
	t.Parallel()
	s := NewRangeSet([]int{1, 2, 3, 7, 9, 10})
	assert.Equal(t, 6, s.Len())
	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(9))
	assert.False(t, s.Contains(8))
}

func TestRangeSetSeedConstructorPanicsOnDuplicateKey(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewRangeSet([]int{1, 2, 2, 3}) })
}

func TestRangeSetSerializationRoundTrip(t *testing.T) {
	t.Parallel()
	s := NewRangeSet([]int{1, 2, 3, 10, 11, 20})

	var buf bytes.Buffer
	require.NoError(t, s.EncodeJSON(&buf))

	var got RangeSet[int]
	require.NoError(t, got.DecodeJSON(bytes.NewReader(buf.Bytes())))
	assert.Equal(t, s.Len(), got.Len())
	assert.True(t, got.Contains(2))
	assert.True(t, got.Contains(20))
	assert.False(t, got.Contains(15))
}

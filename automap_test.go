package cfbs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfbs-go/cfbs/internal/mode"
)

func TestAutoMapPromotesIntoCompressedRun(t *testing.T) {
	t.Parallel()
	b := NewAutoMapBuilder[int, int](nil, nil)
	b.Append(1, 10)
	b.Append(2, 10)
	b.Append(3, 10)
	m := b.Freeze()

	assert.Equal(t, 3, m.Len())
	for _, k := range []int{1, 2, 3} {
		v, err := m.Get(k)
		require.NoError(t, err)
		assert.Equal(t, 10, v)
	}
}

func TestAutoMapPromotesIntoDeltaRun(t *testing.T) {
	t.Parallel()
	b := NewAutoMapBuilder[int, int](nil, nil)
	b.Append(1, 10)
	b.Append(2, 11)
	b.Append(3, 12)
	m := b.Freeze()

	assert.Equal(t, 3, m.Len())
	want := map[int]int{1: 10, 2: 11, 3: 12}
	for k, w := range want {
		v, err := m.Get(k)
		require.NoError(t, err)
		assert.Equal(t, w, v)
	}
}

func TestAutoMapSingletonOutliers(t *testing.T) {
	t.Parallel()
	m := NewAutoMap([]int{1, 5, 9}, []int{100, 200, 300})
	assert.Equal(t, 3, m.Len())
	v, err := m.Get(5)
	require.NoError(t, err)
	assert.Equal(t, 200, v)

	_, err = m.Get(6)
	assert.True(t, errors.Is(err, ErrKeyMissing))
}

// TestAutoMapReshapesTwoElementCompressedRun exercises the classifier's
// (2,1)->(1,2) reshape when a two-key compressed (equal-value) run gets a
// third key continuing its value's arithmetic progression: the run's first
// key is promoted back out to the simple map, and the remaining pair
// becomes the head of a new delta run.
func TestAutoMapReshapesTwoElementCompressedRun(t *testing.T) {
	t.Parallel()
	b := NewAutoMapBuilder[int, int](nil, nil)
	b.Append(5, 100)
	b.Append(6, 100) // coalesces into a compressed run [5,6]=100
	b.Append(7, 101) // triggers the reshape
	m := b.Freeze()

	assert.Equal(t, 3, m.Len())
	v, err := m.Get(5)
	require.NoError(t, err)
	assert.Equal(t, 100, v)
	v, err = m.Get(6)
	require.NoError(t, err)
	assert.Equal(t, 100, v)
	v, err = m.Get(7)
	require.NoError(t, err)
	assert.Equal(t, 101, v)
}

// TestAutoMapReshapesTwoElementDeltaRun exercises the mirror-image reshape
// on a two-key delta run. The classifier compares the new key's value with
// the run's stored (low-key) value plus 1, which for a two-key run is the
// value held at the run's high key: when they match, the high key and the
// new key form an equal-value run, so the run's low key goes back to the
// simple map and the remaining pair becomes a compressed run.
func TestAutoMapReshapesTwoElementDeltaRun(t *testing.T) {
	t.Parallel()
	b := NewAutoMapBuilder[int, int](nil, nil)
	b.Append(1, 10)
	b.Append(2, 11) // coalesces into a delta run [1,2] stored value=10
	b.Append(3, 11) // triggers the reshape (stored 10 + 1 == 11, the value at key 2)
	m := b.Freeze()

	assert.Equal(t, 3, m.Len())
	v, err := m.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	v, err = m.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 11, v)
	v, err = m.Get(3)
	require.NoError(t, err)
	assert.Equal(t, 11, v)
}

func TestAutoMapAppendRangeDirectRequiresMode(t *testing.T) {
	t.Parallel()
	b := NewAutoMapBuilder[int, int](nil, nil)
	b.AppendRange(1, 3, 5, mode.Compressed)
	b.AppendRange(10, 12, 20, mode.Delta)
	m := b.Freeze()

	assert.Equal(t, 6, m.Len())
	v, err := m.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	v, err = m.Get(11)
	require.NoError(t, err)
	assert.Equal(t, 21, v)
}

func TestAutoMapAllMergesChildrenInOrder(t *testing.T) {
	t.Parallel()
	m := NewAutoMap([]int{1, 2, 3, 10, 20, 21, 22}, []int{1, 2, 3, 99, 1, 2, 3})
	var keys []int
	for k := range m.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []int{1, 2, 3, 10, 20, 21, 22}, keys)
}

func TestAutoMapSeedConstructorPanicsOnDuplicateKey(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewAutoMap([]int{1, 2, 2}, []int{10, 11, 12}) })
}

func TestAutoMapSerializationRoundTrip(t *testing.T) {
	t.Parallel()
	m := NewAutoMap([]int{1, 5, 6, 7}, []int{100, 1, 2, 3})

	var buf bytes.Buffer
	require.NoError(t, m.EncodeJSON(&buf))

	var got AutoMap[int, int]
	require.NoError(t, got.DecodeJSON(bytes.NewReader(buf.Bytes())))
	assert.Equal(t, m.Len(), got.Len())
	v, err := got.Get(7)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

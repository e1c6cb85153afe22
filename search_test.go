package cfbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSearchFloorLookup exercises Search's floor-lookup contract on a
// 7-element CFBS-ordered array holding the logical sequence 0..6: exact
// match, a value strictly between two logical neighbors (floor), below the
// whole range, and above the whole range.
func TestSearchFloorLookup(t *testing.T) {
	t.Parallel()
	arr := []float64{3, 1, 5, 0, 2, 4, 6}

	assert.Equal(t, 5, Search(arr, 4.0))
	assert.Equal(t, 5, Search(arr, 4.5))
	assert.Equal(t, -1, Search(arr, -1.0))
	assert.Equal(t, 6, Search(arr, 100.0))
}

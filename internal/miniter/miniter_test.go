package miniter

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seqOf(vs ...int) func(yield func(int) bool) {
	return func(yield func(int) bool) {
		for _, v := range vs {
			if !yield(v) {
				return
			}
		}
	}
}

func collect(seq func(yield func(int) bool)) []int {
	var out []int
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func less(a, b int) bool { return a < b }

func TestMergeEmpty(t *testing.T) {
	t.Parallel()
	assert.Nil(t, collect(Merge(less)))
}

func TestMergeSingle(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []int{1, 2, 3}, collect(Merge(less, seqOf(1, 2, 3))))
}

func TestMergeSeveral(t *testing.T) {
	t.Parallel()
	got := collect(Merge(less, seqOf(1, 3, 5), seqOf(2, 4, 6), seqOf()))
	want := []int{1, 2, 3, 4, 5, 6}
	assert.Equal(t, want, got)
}

func TestMergeDoesNotDeduplicate(t *testing.T) {
	t.Parallel()
	got := collect(Merge(less, seqOf(1, 2), seqOf(2, 3)))
	assert.Equal(t, 4, len(got))
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	assert.Equal(t, sorted, got, "result must be sorted even though source ties may resolve either way")
}

func TestMergeEarlyStop(t *testing.T) {
	t.Parallel()
	var got []int
	for v := range Merge(less, seqOf(1, 2, 3), seqOf(4, 5, 6)) {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, got)
}

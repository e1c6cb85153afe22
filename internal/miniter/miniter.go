// Package miniter implements the external min-merging iterator that the
// composite (Auto) containers use to present their children as a single
// sorted stream: it lazily merges k already-sorted iter.Seq sources into
// one sorted stream, without deduplicating. Ties may resolve to any source;
// callers must only rely on element-wise sort order, never source identity.
//
// No third-party k-way-merge iterator was found anywhere in the example
// pack (see repository DESIGN.md for the libraries that were considered),
// so this is built directly on stdlib container/heap, the idiomatic Go way
// to implement exactly this kind of priority merge.
package miniter

import (
	"container/heap"
	"iter"
)

type frontier[T any] struct {
	val  T
	next func() (T, bool)
}

type queue[T any] struct {
	items []frontier[T]
	less  func(a, b T) bool
}

func (q *queue[T]) Len() int { return len(q.items) }
func (q *queue[T]) Less(i, j int) bool {
	return q.less(q.items[i].val, q.items[j].val)
}
func (q *queue[T]) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *queue[T]) Push(x any)    { q.items = append(q.items, x.(frontier[T])) }
func (q *queue[T]) Pop() any {
	n := len(q.items)
	it := q.items[n-1]
	q.items = q.items[:n-1]
	return it
}

// Merge returns the sorted union (with duplicates) of the given already-
// sorted sources, ordered by less. Each source is pulled lazily: Merge
// itself does no work until the returned sequence is iterated.
func Merge[T any](less func(a, b T) bool, sources ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		var stops []func()
		defer func() {
			for _, stop := range stops {
				stop()
			}
		}()

		q := &queue[T]{less: less}
		for _, src := range sources {
			next, stop := iter.Pull(src)
			stops = append(stops, stop)
			if v, ok := next(); ok {
				q.items = append(q.items, frontier[T]{val: v, next: next})
			}
		}
		heap.Init(q)

		for q.Len() > 0 {
			top := heap.Pop(q).(frontier[T])
			if !yield(top.val) {
				return
			}
			if v, ok := top.next(); ok {
				heap.Push(q, frontier[T]{val: v, next: top.next})
			}
		}
	}
}

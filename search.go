package cfbs

import (
	"golang.org/x/exp/constraints"

	"github.com/cfbs-go/cfbs/internal/order"
)

// Search performs a floor lookup on a CFBS-ordered array: it returns a
// physical index r such that arr[r] <= item (or -1 if no such element
// exists), and the element immediately after r in sorted order is either
// absent or strictly greater than item. Worst-case depth is
// ceil(log2(n+1)).
func Search[T constraints.Ordered](arr []T, item T) int {
	n := len(arr)
	if n == 0 {
		return -1
	}
	cur := 0
	for {
		switch {
		case item < arr[cur]:
			if order.HasChild(cur, n, order.Left) {
				cur = order.Child(cur, order.Left)
				continue
			}
			return order.Predecessor(cur, n)
		case arr[cur] < item:
			if order.HasChild(cur, n, order.Right) {
				cur = order.Child(cur, order.Right)
				continue
			}
			return cur
		default:
			return cur
		}
	}
}

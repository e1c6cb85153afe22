// Package order implements the CFBS (cache-friendly beap-like storage)
// index algebra: the bijection between a logical index (position in sorted
// order) and a physical index (position in the breadth-first array layout),
// together with the tree-navigation primitives defined on that layout.
//
// For a size n that is exactly 2^k-1, the physical layout is precisely the
// breadth-first enumeration of a perfectly balanced binary search tree. For
// other n, the deepest row is partially filled with the right-most logical
// positions missing; see ToPhysicalIndex.
package order

import (
	"iter"

	"github.com/cfbs-go/cfbs/internal/fault"
)

// Direction selects which side of a node to navigate toward.
type Direction int

const (
	Left Direction = iota
	Right
)

// Flipped returns the opposite direction.
func (d Direction) Flipped() Direction {
	if d == Left {
		return Right
	}
	return Left
}

// none is the sentinel "no such node" result, used in place of Python's
// None. Physical/logical indices are never negative, so -1 is unambiguous.
const none = -1

// Parent returns the physical index of n's parent. Undefined (panics) for
// the root, n == 0.
func Parent(n int) int {
	fault.RequireTrue(n != 0, "Parent: n=%d has no parent", n)
	return (n - 1) / 2
}

// Child returns the physical index of n's child in direction dir.
func Child(n int, dir Direction) int {
	if dir == Left {
		return 2*n + 1
	}
	return 2*n + 2
}

// IsRoot reports whether n is the root of the tree.
func IsRoot(n int) bool {
	return n == 0
}

// IsChild reports whether n is a dir-side child of its parent.
func IsChild(n int, dir Direction) bool {
	if n == 0 {
		return false
	}
	if dir == Left {
		return n%2 == 1
	}
	return n%2 == 0
}

// HasChild reports whether n has a child in direction dir within a tree of
// size sz.
func HasChild(n, sz int, dir Direction) bool {
	return Child(n, dir) < sz
}

// MostChild follows dir repeatedly from n until no further child exists,
// returning the deepest descendant in that direction.
func MostChild(n, sz int, dir Direction) int {
	for HasChild(n, sz, dir) {
		n = Child(n, dir)
	}
	return n
}

// Adcessor returns the predecessor (dir == Left) or successor (dir ==
// Right) of n in a tree of size sz, or none if n is the extreme node in
// that direction.
func Adcessor(n, sz int, dir Direction) int {
	if HasChild(n, sz, dir) {
		return MostChild(Child(n, dir), sz, dir.Flipped())
	}
	for {
		if IsChild(n, dir.Flipped()) {
			return Parent(n)
		}
		if IsRoot(n) {
			return none
		}
		n = Parent(n)
	}
}

// Predecessor returns the physical index immediately before n in sorted
// order, or none.
func Predecessor(n, sz int) int {
	return Adcessor(n, sz, Left)
}

// Successor returns the physical index immediately after n in sorted
// order, or none.
func Successor(n, sz int) int {
	return Adcessor(n, sz, Right)
}

// Edge returns the extreme (first for Left, last for Right) physical index
// of a tree of size sz, or none if sz == 0.
func Edge(sz int, dir Direction) int {
	if sz == 0 {
		return none
	}
	return MostChild(0, sz, dir)
}

// First returns the physical index of the smallest element, or none.
func First(sz int) int {
	return Edge(sz, Left)
}

// Last returns the physical index of the largest element, or none.
func Last(sz int) int {
	return Edge(sz, Right)
}

// IterToward yields physical indices starting at the extreme opposite dir
// and walking toward dir, i.e. in ascending order for dir == Right and
// descending order for dir == Left.
func IterToward(sz int, dir Direction) iter.Seq[int] {
	return func(yield func(int) bool) {
		n := Edge(sz, dir.Flipped())
		for n != none {
			if !yield(n) {
				return
			}
			n = Adcessor(n, sz, dir)
		}
	}
}

// IterForward yields physical indices in ascending sorted order.
func IterForward(sz int) iter.Seq[int] {
	return IterToward(sz, Right)
}

// IterBackward yields physical indices in descending sorted order.
func IterBackward(sz int) iter.Seq[int] {
	return IterToward(sz, Left)
}

// ToPhysicalIndexComplete maps a logical index li to its physical index in
// a completed tree of size sz (sz+1 must be a power of two).
//
// The bit shifted off of both li and sz on each loop iteration is always a
// 1, except for the final li>>1 once the loop exits.
func ToPhysicalIndexComplete(li, sz int) int {
	fault.RequireTrue((sz+1)&sz == 0, "ToPhysicalIndexComplete: sz=%d+1 must be a power of two", sz)
	fault.RequireTrue(0 <= li && li < sz, "ToPhysicalIndexComplete: li=%d out of range [0,%d)", li, sz)

	for li&1 != 0 {
		li >>= 1
		sz >>= 1
	}
	return (sz >> 1) + (li >> 1)
}

// ToPhysicalIndex maps a logical index li (0 <= li < sz) to its physical
// index in the CFBS layout of an array of size sz, for arbitrary sz.
func ToPhysicalIndex(li, sz int) int {
	fault.RequireTrue(0 <= li && li < sz, "ToPhysicalIndex: li=%d out of range [0,%d)", li, sz)

	szCompleted := completedSize(sz)
	missing := szCompleted - sz

	adjustmentBase := sz - missing
	if diff := li - adjustmentBase; diff >= 0 {
		li += diff
	}
	return ToPhysicalIndexComplete(li, szCompleted)
}

// ToLogicalIndexComplete is the inverse of ToPhysicalIndexComplete.
func ToLogicalIndexComplete(pi, sz int) int {
	fault.RequireTrue((sz+1)&sz == 0, "ToLogicalIndexComplete: sz=%d+1 must be a power of two", sz)
	fault.RequireTrue(0 <= pi && pi < sz, "ToLogicalIndexComplete: pi=%d out of range [0,%d)", pi, sz)

	szGoalPlus1 := sz + 1

	bits := bitLength(pi + 1)
	szPlus1 := 1 << (bits - 1)
	li := pi + 1 - szPlus1

	szPlus1 <<= 1
	li <<= 1
	liPlus1 := li + 1

	for szPlus1 != szGoalPlus1 {
		szPlus1 <<= 1
		liPlus1 <<= 1
	}
	return liPlus1 - 1
}

// ToLogicalIndex is the inverse of ToPhysicalIndex, for arbitrary sz.
func ToLogicalIndex(pi, sz int) int {
	fault.RequireTrue(0 <= pi && pi < sz, "ToLogicalIndex: pi=%d out of range [0,%d)", pi, sz)

	szCompleted := completedSize(sz)
	missing := szCompleted - sz

	li := ToLogicalIndexComplete(pi, szCompleted)
	adjustmentBase := sz - missing
	if diff := li - adjustmentBase; diff >= 0 {
		fault.RequireTrue(diff&1 == 0, "ToLogicalIndex: internal invariant violated for pi=%d sz=%d", pi, sz)
		li -= diff >> 1
	}
	return li
}

// completedSize returns the smallest 2^k-1 >= sz.
func completedSize(sz int) int {
	return (1 << bitLength(sz)) - 1
}

// bitLength returns the number of bits required to represent x, i.e.
// floor(log2(x))+1 for x > 0, and 0 for x == 0. Mirrors Python's
// int.bit_length().
func bitLength(x int) int {
	n := 0
	for x != 0 {
		x >>= 1
		n++
	}
	return n
}

package cfbs

import (
	"iter"

	"github.com/cfbs-go/cfbs/internal/order"
)

// Direction selects which side of a CFBS tree node to navigate toward.
// Re-exported from internal/order for advanced clients who want the raw
// tree-navigation primitives directly (spec §6).
type Direction = order.Direction

const (
	Left  = order.Left
	Right = order.Right
)

// Parent returns the physical index of i's parent. Panics for the root.
func Parent(i int) int { return order.Parent(i) }

// Child returns the physical index of i's child in direction dir.
func Child(i int, dir Direction) int { return order.Child(i, dir) }

// IsRoot reports whether i is the root of the tree.
func IsRoot(i int) bool { return order.IsRoot(i) }

// IsChild reports whether i is a dir-side child of its parent.
func IsChild(i int, dir Direction) bool { return order.IsChild(i, dir) }

// HasChild reports whether i has a child in direction dir within a tree of
// size n.
func HasChild(i, n int, dir Direction) bool { return order.HasChild(i, n, dir) }

// MostChild follows dir repeatedly from i, returning the deepest
// descendant of a tree of size n in that direction.
func MostChild(i, n int, dir Direction) int { return order.MostChild(i, n, dir) }

// Predecessor returns the physical index immediately before i in sorted
// order, or -1 if i is the smallest element.
func Predecessor(i, n int) int { return order.Predecessor(i, n) }

// Successor returns the physical index immediately after i in sorted
// order, or -1 if i is the largest element.
func Successor(i, n int) int { return order.Successor(i, n) }

// Edge returns the extreme physical index (first for Left, last for
// Right) of a tree of size n, or -1 if n == 0.
func Edge(n int, dir Direction) int { return order.Edge(n, dir) }

// First returns the physical index of the smallest element, or -1.
func First(n int) int { return order.First(n) }

// Last returns the physical index of the largest element, or -1.
func Last(n int) int { return order.Last(n) }

// IterForward yields physical indices in ascending sorted order.
func IterForward(n int) iter.Seq[int] { return order.IterForward(n) }

// IterBackward yields physical indices in descending sorted order.
func IterBackward(n int) iter.Seq[int] { return order.IterBackward(n) }

// ToPhysicalIndex maps a logical index li (position in sorted order) to its
// physical index (position in the CFBS array) for an array of size n.
func ToPhysicalIndex(li, n int) int { return order.ToPhysicalIndex(li, n) }

// ToLogicalIndex is the inverse of ToPhysicalIndex.
func ToLogicalIndex(pi, n int) int { return order.ToLogicalIndex(pi, n) }

// MakeOrder reorders a sorted sequence into CFBS order. See
// internal/order.MakeOrder for the `into` buffer contract.
func MakeOrder[T any](sorted []T, into []T) []T { return order.MakeOrder(sorted, into) }

// IterOrderForward yields the elements of a CFBS-ordered array in sorted
// order.
func IterOrderForward[T any](arr []T) iter.Seq[T] { return order.IterOrderForward(arr) }

// IterOrderBackward yields the elements of a CFBS-ordered array in reverse
// sorted order.
func IterOrderBackward[T any](arr []T) iter.Seq[T] { return order.IterOrderBackward(arr) }

// Package list provides a circular doubly linked list built from
// Node values. The same Node type is used both for the head of a list
// (the sentinel, which never carries a value) and for the members of
// the list, so algorithms can be written directly in terms of the
// links rather than through a container abstraction.
//
// Callers are responsible for their own concurrency control, and
// must not mix sentinels and members: a head is never added to
// another list.
package list

import "iter"

// Node is a link in a circular doubly linked list. A node that is
// alone points to itself in both directions once initialized; a node
// that has been removed from a list has nil links.
type Node[T any] struct {
	next  *Node[T]
	prev  *Node[T]
	Value T
}

// New returns an initialized, empty list head.
func New[T any]() *Node[T] { return new(Node[T]).Init() }

// NewNode produces a detached node holding the value, suitable for
// use with Add and AddTail.
func NewNode[T any](val T) *Node[T] { return &Node[T]{Value: val} }

// Init makes n an empty circular list and returns it.
func (n *Node[T]) Init() *Node[T] {
	n.next = n
	n.prev = n
	return n
}

func (n *Node[T]) lazyInit() {
	if n.next == nil {
		n.Init()
	}
}

// Next returns the node following n. For the last member of a list
// this is the head.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Prev returns the node preceding n. For the first member of a list
// this is the head.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

// Front returns the first member of the list headed by n, or n itself
// when the list is empty.
func (n *Node[T]) Front() *Node[T] {
	n.lazyInit()
	return n.next
}

// Back returns the last member of the list headed by n, or n itself
// when the list is empty.
func (n *Node[T]) Back() *Node[T] {
	n.lazyInit()
	return n.prev
}

// Detached reports whether n is not linked to any other node.
func (n *Node[T]) Detached() bool { return n.next == nil && n.prev == nil }

// Empty reports whether the list headed by n has no members. Nil
// and zero-valued heads are empty.
func (n *Node[T]) Empty() bool { return n == nil || n.next == nil || n.next == n }

// Singular reports whether the list headed by n has exactly one
// member.
func (n *Node[T]) Singular() bool { return !n.Empty() && n.next == n.prev }

func link[T any](node, prev, next *Node[T]) {
	next.prev = node
	node.next = next
	node.prev = prev
	prev.next = node
}

func unlink[T any](prev, next *Node[T]) {
	next.prev = prev
	prev.next = next
}

// Add inserts node immediately after n. When n is a head, node
// becomes the first member of the list.
func (n *Node[T]) Add(node *Node[T]) {
	n.lazyInit()
	link(node, n, n.next)
}

// AddTail inserts node immediately before n. When n is a head, node
// becomes the last member of the list.
func (n *Node[T]) AddTail(node *Node[T]) {
	n.lazyInit()
	link(node, n.prev, n)
}

// Del removes n from the list that contains it and clears its
// links. Calling Del on a detached node is a no-op.
func (n *Node[T]) Del() {
	if n.Detached() {
		return
	}
	unlink(n.prev, n.next)
	n.next = nil
	n.prev = nil
}

// DelInit removes n from its list and leaves it as an empty list of
// its own.
func (n *Node[T]) DelInit() {
	if !n.Detached() {
		unlink(n.prev, n.next)
	}
	n.Init()
}

// Move removes n from its list and inserts it after head. A detached
// n is simply added.
func (n *Node[T]) Move(head *Node[T]) {
	if !n.Detached() {
		unlink(n.prev, n.next)
	}
	head.Add(n)
}

// MoveTail removes n from its list and inserts it before head. A
// detached n is simply added.
func (n *Node[T]) MoveTail(head *Node[T]) {
	if !n.Detached() {
		unlink(n.prev, n.next)
	}
	head.AddTail(n)
}

// MoveRange moves the contiguous run of nodes [first, last) so that
// it follows target, keeping the order of the run. The run may come
// from a different list than target. The run must be non-empty
// and target must not be inside it.
//
// The operation rewires a constant number of links regardless of the
// length of the run.
func MoveRange[T any](first, last, target *Node[T]) {
	if first == last {
		return
	}
	end := last.prev

	unlink(first.prev, last)

	target.lazyInit()
	after := target.next
	first.prev = target
	target.next = first
	end.next = after
	after.prev = end
}

func splice[T any](src, prev, next *Node[T]) {
	first := src.next
	last := src.prev

	first.prev = prev
	prev.next = first

	last.next = next
	next.prev = last
}

// Splice moves every member of src to the front of the list headed by
// n. src is left in an undefined state; use SpliceInit to reuse it.
func (n *Node[T]) Splice(src *Node[T]) {
	if src.Empty() {
		return
	}
	n.lazyInit()
	splice(src, n, n.next)
}

// SpliceTail moves every member of src to the back of the list headed
// by n. src is left in an undefined state; use SpliceTailInit to
// reuse it.
func (n *Node[T]) SpliceTail(src *Node[T]) {
	if src.Empty() {
		return
	}
	n.lazyInit()
	splice(src, n.prev, n)
}

// SpliceInit is Splice, and leaves src as an empty list.
func (n *Node[T]) SpliceInit(src *Node[T]) {
	if src.Empty() {
		return
	}
	n.Splice(src)
	src.Init()
}

// SpliceTailInit is SpliceTail, and leaves src as an empty list.
func (n *Node[T]) SpliceTailInit(src *Node[T]) {
	if src.Empty() {
		return
	}
	n.SpliceTail(src)
	src.Init()
}

// Len counts the members of the list headed by n. This is an O(n)
// operation: lists do not track their length because nodes migrate
// freely between lists.
func (n *Node[T]) Len() (count int) {
	if n.Empty() {
		return 0
	}
	for node := n.next; node != n; node = node.next {
		count++
	}
	return count
}

// Nodes returns an iterator over the members of the list headed by
// n, from front to back. The node being visited may be removed or
// moved by the loop body without disturbing the iteration.
func (n *Node[T]) Nodes() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		if n.Empty() {
			return
		}
		for node, safe := n.next, n.next.next; node != n; node, safe = safe, safe.next {
			if !yield(node) {
				return
			}
		}
	}
}

// All returns an iterator over the values held by the members of the
// list headed by n, from front to back.
func (n *Node[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for node := range n.Nodes() {
			if !yield(node.Value) {
				return
			}
		}
	}
}

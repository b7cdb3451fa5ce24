// Package strq implements a queue of strings on top of a circular
// doubly linked list, along with a family of classic list
// algorithms (deduplication, block reversal, stable merge sort,
// monotonic pruning, and k-way merging) that operate directly on the
// links of the list rather than copying values around.
//
// Queues are not safe for concurrent use. A nil *Queue behaves as an
// empty queue for every operation.
package strq

import (
	"iter"
	"strings"

	"github.com/tychoish/strq/list"
)

// Element is a member of a queue. Elements returned by RemoveHead
// and RemoveTail are detached from the queue and belong to the
// caller; pass them to Release when they are no longer needed.
type Element = list.Node[string]

// Queue is the handle for a queue. The zero value is an empty queue
// ready to use.
type Queue struct {
	head list.Node[string]
}

// New returns an empty queue.
func New() *Queue {
	q := &Queue{}
	q.head.Init()
	return q
}

func (q *Queue) root() *Element {
	if q.head.Detached() {
		q.head.Init()
	}
	return &q.head
}

// Release destroys an element that has been removed from a queue,
// dropping its value. Release is safe to call with nil.
func Release(e *Element) {
	if e == nil {
		return
	}
	e.Del()
	e.Value = ""
}

// Free releases every element in the queue. The queue must not be
// used after Free returns.
func (q *Queue) Free() {
	if q == nil {
		return
	}
	for node := range q.head.Nodes() {
		Release(node)
	}
	q.head = list.Node[string]{}
}

// InsertHead adds a copy of s to the front of the queue, returning
// false if the queue is nil.
func (q *Queue) InsertHead(s string) bool {
	if q == nil {
		return false
	}
	q.root().Add(list.NewNode(strings.Clone(s)))
	return true
}

// InsertTail adds a copy of s to the back of the queue, returning
// false if the queue is nil.
func (q *Queue) InsertTail(s string) bool {
	if q == nil {
		return false
	}
	q.root().AddTail(list.NewNode(strings.Clone(s)))
	return true
}

// RemoveHead detaches and returns the first element of the queue,
// or nil if the queue is nil or empty. The element is not released:
// ownership passes to the caller.
//
// When buf is not empty, up to len(buf)-1 bytes of the element's
// value are copied into it followed by a zero byte; see CString.
func (q *Queue) RemoveHead(buf []byte) *Element {
	if q.Empty() {
		return nil
	}
	return remove(q.head.Front(), buf)
}

// RemoveTail detaches and returns the last element of the queue,
// with the same semantics as RemoveHead.
func (q *Queue) RemoveTail(buf []byte) *Element {
	if q.Empty() {
		return nil
	}
	return remove(q.head.Back(), buf)
}

func remove(e *Element, buf []byte) *Element {
	if len(buf) > 0 {
		n := copy(buf[:len(buf)-1], e.Value)
		buf[n] = 0
	}
	e.Del()
	return e
}

// CString returns the contents of buf up to, but not including, the
// first zero byte, as written by RemoveHead and RemoveTail.
func CString(buf []byte) string {
	for idx, b := range buf {
		if b == 0 {
			return string(buf[:idx])
		}
	}
	return string(buf)
}

// Empty reports whether the queue has no elements.
func (q *Queue) Empty() bool { return q == nil || q.head.Empty() }

// Singular reports whether the queue has exactly one element.
func (q *Queue) Singular() bool { return q != nil && q.head.Singular() }

// Size returns the number of elements in the queue. The queue does
// not cache its length, so this is an O(n) operation.
func (q *Queue) Size() int {
	if q.Empty() {
		return 0
	}
	return q.head.Len()
}

// Head returns the value of the first element without removing it.
func (q *Queue) Head() (string, bool) {
	if q.Empty() {
		return "", false
	}
	return q.head.Front().Value, true
}

// Tail returns the value of the last element without removing it.
func (q *Queue) Tail() (string, bool) {
	if q.Empty() {
		return "", false
	}
	return q.head.Back().Value, true
}

// All returns an iterator over the values in the queue, from front
// to back.
func (q *Queue) All() iter.Seq[string] {
	if q == nil {
		return func(func(string) bool) {}
	}
	return q.head.All()
}

// Values exports the contents of the queue to a slice.
func (q *Queue) Values() []string {
	out := make([]string, 0, q.Size())
	for v := range q.All() {
		out = append(out, v)
	}
	return out
}

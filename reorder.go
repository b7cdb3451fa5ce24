package strq

import "github.com/tychoish/strq/list"

// DeleteMiddle removes and releases the middle element of the
// queue. For queues with an even number of elements this is the
// second of the two middle elements (index size/2). Returns false if
// the queue is nil or empty.
func (q *Queue) DeleteMiddle() bool {
	if q.Empty() {
		return false
	}

	head := &q.head
	slow, fast := head, head
	for fast.Next() != head && fast.Next().Next() != head {
		fast = fast.Next().Next()
		slow = slow.Next()
	}

	Release(slow.Next())
	return true
}

// DeleteDuplicates removes every element whose value is equal to an
// adjacent element's, including the first element of each run of
// equal values, so that only values that appeared exactly once
// remain. Only neighbors are compared: the queue is expected to be
// sorted already, and is not sorted by this operation.
//
// Returns false when the queue is nil, empty, or has a single
// element.
func (q *Queue) DeleteDuplicates() bool {
	if q.Empty() || q.Singular() {
		return false
	}

	head := &q.head
	var dropped list.Node[string]
	for current := head.Next(); current != head; {
		end := current.Next()
		for end != head && end.Value == current.Value {
			end = end.Next()
		}
		if end != current.Next() {
			list.MoveRange(current, end, dropped.Back())
		}
		current = end
	}

	for node := range dropped.Nodes() {
		Release(node)
	}
	return true
}

// SwapPairs exchanges every two adjacent elements, starting at the
// front. With an odd number of elements the last one stays in place.
func (q *Queue) SwapPairs() {
	if q.Empty() {
		return
	}

	head := &q.head
	for current := head; current.Next() != head && current.Next().Next() != head; {
		first := current.Next()
		first.Move(first.Next())
		current = first
	}
}

// Reverse reverses the order of the elements in place.
func (q *Queue) Reverse() {
	if q.Empty() {
		return
	}

	head := &q.head
	for tail := head; head.Next() != tail; tail = tail.Prev() {
		head.Next().MoveTail(tail)
	}
}

// ReverseK reverses the elements in consecutive blocks of k. A final
// block of fewer than k elements keeps its original order; k of 1
// (or less) leaves the queue unchanged.
func (q *Queue) ReverseK(k int) {
	if k <= 1 || q.Empty() || q.Singular() {
		return
	}

	head := &q.head
	blocks := q.Size() / k
	prev, current := head, head.Next()
	for step := k - 1; blocks > 0; {
		current.Next().Move(prev)
		step--
		if step == 0 {
			step = k - 1
			blocks--
			prev = current
			current = current.Next()
		}
	}
}

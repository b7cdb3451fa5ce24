package strq

// inOrder reports whether a may stay ahead of b. Ties always favor
// the left side, which keeps both sorts and merges stable.
func inOrder(a, b *Element, descending bool) bool {
	if descending {
		return a.Value >= b.Value
	}
	return a.Value <= b.Value
}

// merge combines two sorted runs that sit next to each other in the
// same list: the left run starts at left and ends where the right run
// begins, and the right run ends before tail. Out of order nodes from
// the right run are moved in front of the left cursor, so when the
// left cursor catches up to the right cursor the left run is used up
// and whatever remains of the right run is already in place.
func merge(left, right, tail *Element, descending bool) {
	for left != right && right != tail {
		if inOrder(left, right, descending) {
			left = left.Next()
			continue
		}

		next := right.Next()
		right.MoveTail(left)
		right = next
	}
}

// middle finds the first node of the second half of [first, tail)
// with a slow/fast scan. For odd lengths the extra node stays on the
// right.
func middle(first, tail *Element) *Element {
	slow, fast := first, first
	for fast != tail && fast.Next() != tail {
		slow = slow.Next()
		fast = fast.Next().Next()
	}
	return slow
}

// sortRange sorts the nodes between before (exclusive) and tail
// (exclusive). Ranges are anchored on the node in front of them
// because the first node of a range changes as it is sorted.
func sortRange(before, tail *Element, descending bool) {
	first := before.Next()
	if first == tail || first.Next() == tail {
		return
	}

	mid := middle(first, tail)
	sortRange(before, mid, descending)

	leftLast := mid.Prev()
	sortRange(leftLast, tail, descending)

	merge(before.Next(), leftLast.Next(), tail, descending)
}

// Sort orders the queue by byte-wise string comparison, ascending
// or descending, using a merge sort over the links of the list.
// Elements with equal values keep their relative order.
func (q *Queue) Sort(descending bool) {
	if q.Empty() || q.Singular() {
		return
	}
	sortRange(&q.head, &q.head, descending)
}

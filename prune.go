package strq

// Ascend removes and releases every element that has an element with
// a strictly smaller value anywhere to its right, leaving a
// non-decreasing queue. Returns the number of remaining elements.
func (q *Queue) Ascend() int { return q.prune(false) }

// Descend removes and releases every element that has an element
// with a strictly larger value anywhere to its right, leaving a
// non-increasing queue. Returns the number of remaining elements.
func (q *Queue) Descend() int { return q.prune(true) }

// prune walks the reversed queue, so that the right-most element is
// visited first, and drops each element that would break
// monotonicity with the last element kept.
func (q *Queue) prune(descending bool) int {
	if q.Empty() || q.Singular() {
		return q.Size()
	}

	q.Reverse()

	head := &q.head
	for kept := head.Next(); kept.Next() != head; {
		next := kept.Next()
		if dominated(kept, next, descending) {
			Release(next)
			continue
		}
		kept = next
	}

	q.Reverse()
	return q.Size()
}

// dominated reports whether candidate, which sits to the left of kept
// in the original order, has to go.
func dominated(kept, candidate *Element, descending bool) bool {
	if descending {
		return kept.Value > candidate.Value
	}
	return kept.Value < candidate.Value
}

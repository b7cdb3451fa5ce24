package strq

import (
	"iter"

	"github.com/tychoish/strq/list"
)

// Context tracks one queue taking part in a k-way merge, along with
// the size of the queue as last recorded.
type Context struct {
	ID    int
	Queue *Queue
	Size  int

	link list.Node[*Context]
}

// Chain is an ordered collection of queue contexts, linked with the
// same list primitives as the queues themselves. The zero value is an
// empty chain.
type Chain struct {
	head   list.Node[*Context]
	nextID int
}

// Add creates a context for q at the end of the chain and returns it.
func (c *Chain) Add(q *Queue) *Context {
	ctx := &Context{ID: c.nextID, Queue: q, Size: q.Size()}
	c.nextID++
	ctx.link.Value = ctx
	c.head.AddTail(&ctx.link)
	return ctx
}

// Remove detaches the context from the chain it belongs to. The
// context's queue is left untouched.
func (c *Chain) Remove(ctx *Context) {
	if c == nil || ctx == nil {
		return
	}
	ctx.link.Del()
}

// Len returns the number of contexts in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return c.head.Len()
}

// First returns the first context in the chain, or nil if the chain
// is empty.
func (c *Chain) First() *Context {
	if c == nil || c.head.Empty() {
		return nil
	}
	return c.head.Front().Value
}

// Last returns the most recently added context still in the chain,
// or nil if the chain is empty.
func (c *Chain) Last() *Context {
	if c == nil || c.head.Empty() {
		return nil
	}
	return c.head.Back().Value
}

// Next returns the context after ctx, wrapping around to the front of
// the chain.
func (c *Chain) Next(ctx *Context) *Context {
	if c.Len() == 0 || ctx == nil || ctx.link.Detached() {
		return nil
	}
	next := ctx.link.Next()
	if next == &c.head {
		next = next.Next()
	}
	return next.Value
}

// Prev returns the context before ctx, wrapping around to the back of
// the chain.
func (c *Chain) Prev(ctx *Context) *Context {
	if c.Len() == 0 || ctx == nil || ctx.link.Detached() {
		return nil
	}
	prev := ctx.link.Prev()
	if prev == &c.head {
		prev = prev.Prev()
	}
	return prev.Value
}

// All returns an iterator over the contexts in the chain.
func (c *Chain) All() iter.Seq[*Context] {
	if c == nil {
		return func(func(*Context) bool) {}
	}
	return c.head.All()
}

// MergeAll merges every queue in the chain into the first one and
// returns the number of elements in the combined queue. Each queue
// must already be sorted in the requested order; MergeAll only
// interleaves, it does not sort. The other queues are left empty and
// their contexts record a size of zero.
//
// Returns 0 for a nil or empty chain.
func MergeAll(c *Chain, descending bool) int {
	first := c.First()
	if first == nil || first.Queue == nil {
		return 0
	}

	dst := first.Queue.root()
	for ctx := range c.All() {
		if ctx == first {
			continue
		}
		mergeInto(dst, ctx.Queue, descending)
		ctx.Size = 0
	}

	first.Size = first.Queue.Size()
	return first.Size
}

// mergeInto moves the contents of src onto the back of the list
// headed by dst and merges the two sorted runs in place.
func mergeInto(dst *Element, src *Queue, descending bool) {
	if src.Empty() || &src.head == dst {
		return
	}

	mid := src.head.Front()
	dst.SpliceTailInit(&src.head)
	merge(dst.Next(), mid, dst, descending)
}

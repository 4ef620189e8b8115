package setpager

import (
	"context"
	"iter"
)

// ForwardPages returns a sequence of page data slices, starting with the
// receiver's page and following "after" tokens until the end of the set.
//
// Each step performs at most one remote round trip (pages already loaded
// are memoized). A load failure yields (nil, err) and ends the sequence.
// Re-invoking the method restarts the traversal from the receiver.
func (c *PageCursor[T]) ForwardPages(ctx context.Context) iter.Seq2[[]T, error] {
	return c.pages(ctx, dirAfter)
}

// BackwardPages is ForwardPages following "before" tokens instead: pages
// arrive nearest-first, while the element order inside each page stays
// exactly as the remote engine returned it.
func (c *PageCursor[T]) BackwardPages(ctx context.Context) iter.Seq2[[]T, error] {
	return c.pages(ctx, dirBefore)
}

func (c *PageCursor[T]) pages(ctx context.Context, d direction) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		for cur := c; cur != nil; {
			data, err := cur.Data(ctx)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(data, nil) {
				return
			}

			cur, err = cur.page(ctx, d)
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

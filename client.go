package setpager

import "context"

// Cursor is an opaque position token issued by the remote engine. A nil
// Cursor means "no page in that direction".
type Cursor any

// Page is one batch of a paginated result set as returned by a Client.
type Page[T any] struct {
	// Data - elements of the page, in the order the engine returned them.
	Data []T
	// Before - token of the page preceding this one, nil at the start of the set.
	Before Cursor
	// After - token of the page following this one, nil at the end of the set.
	After Cursor
}

// Client executes remote query expressions. Implementations own transport,
// retries, serialization and decoding of remote values into T; this library
// treats all of that as a black box and propagates Query errors to the
// caller unchanged.
type Client[T any] interface {
	Query(ctx context.Context, expr Expr) (Page[T], error)
}

package setpager

import (
	"context"
	"fmt"
	"maps"
	"reflect"

	"github.com/samber/lo"
)

// PostprocessFunc transforms one page element locally after the remote
// call returns. It must be pure and synchronous.
type PostprocessFunc[T any] func(T) T

// pageState is the settable-once result cell of one load. Before the first
// (and only) store, loaded is false and the remaining fields are zero.
type pageState[T any] struct {
	loaded bool
	data   []T
	before Cursor
	after  Cursor
}

// store performs the one-shot unloaded -> loaded transition. Storing into
// an already loaded cell is an internal contract violation: ensureLoaded
// checks the flag before issuing the round trip.
func (s *pageState[T]) store(page Page[T]) {
	if s.loaded {
		panic(fmt.Errorf("page state stored twice"))
	}

	s.loaded = true
	s.data = page.Data
	s.before = page.Before
	s.after = page.After
}

func (s *pageState[T]) token(d direction) Cursor {
	switch d {
	case dirBefore:
		return s.before
	case dirAfter:
		return s.after
	default:
		panic(fmt.Errorf("cannot read cursor token for direction '%d'", d))
	}
}

// PageCursor is a lazy view of one page of a remote, server-paginated set.
//
// A cursor is created unloaded and performs at most one round trip through
// its Client, triggered by Load or by the first access to Data, Before or
// After. All With* builders derive a fresh unloaded instance and never
// touch the receiver, so any derived cursor re-fetches its own page.
//
// A single instance's load is not safe to race from concurrent goroutines;
// distinct instances are independent and safe to use concurrently.
type PageCursor[T any] struct {
	client Client[T]
	set    Expr
	params Params
	mapFn  ExprFunc
	postFn PostprocessFunc[T]

	state pageState[T]
}

// New returns an unloaded cursor over the given set expression. The
// parameter map is copied; mutate your own copy freely afterwards. A nil
// params map is stored as an empty one, so cursors built with and without
// parameters stay comparable.
func New[T any](client Client[T], set Expr, params Params) *PageCursor[T] {
	cloned := maps.Clone(params)
	if cloned == nil {
		cloned = Params{}
	}

	return &PageCursor[T]{
		client: client,
		set:    set,
		params: cloned,
	}
}

// clone copies the configuration into a fresh unloaded instance. Loaded
// data never travels to derived cursors.
func (c *PageCursor[T]) clone() *PageCursor[T] {
	if c == nil {
		return &PageCursor[T]{params: Params{}}
	}

	return &PageCursor[T]{
		client: c.client,
		set:    c.set,
		params: maps.Clone(c.params),
		mapFn:  c.mapFn,
		postFn: c.postFn,
	}
}

// WithParams returns a fresh unloaded cursor with params merged into a copy
// of the receiver's parameters, last write wins. If params carries either
// cursor key ("before"/"after"), both existing cursor keys are dropped
// first, which keeps the two keys mutually exclusive and lets a navigation
// step replace a stale cursor of the opposite direction.
func (c *PageCursor[T]) WithParams(params Params) *PageCursor[T] {
	ret := c.clone()
	ret.params = ret.params.merge(params)

	return ret
}

// WithMap returns a fresh unloaded cursor whose paginate expression is
// wrapped by fn before execution. The server evaluates the transform; the
// local postprocessing function is unchanged.
func (c *PageCursor[T]) WithMap(fn ExprFunc) *PageCursor[T] {
	ret := c.clone()
	ret.mapFn = fn

	return ret
}

// WithPostprocessing returns a fresh unloaded cursor that applies fn to
// every element of a loaded page, in page order. The server-side map is
// unchanged.
func (c *PageCursor[T]) WithPostprocessing(fn PostprocessFunc[T]) *PageCursor[T] {
	ret := c.clone()
	ret.postFn = fn

	return ret
}

// Load fetches the page if it has not been fetched yet. It reports whether
// a round trip was actually performed: false means the page was already
// memoized. Client errors are returned to the caller unchanged, and a
// failed load leaves the cursor unloaded so a later call retries.
func (c *PageCursor[T]) Load(ctx context.Context) (bool, error) {
	return c.ensureLoaded(ctx)
}

func (c *PageCursor[T]) ensureLoaded(ctx context.Context) (bool, error) {
	if c.state.loaded {
		return false, nil
	}

	expr := Expr(Paginate(c.set, c.params))
	if c.mapFn != nil {
		expr = c.mapFn(expr)
	}

	page, err := c.client.Query(ctx, expr)
	if err != nil {
		return false, err
	}

	if c.postFn != nil {
		page.Data = lo.Map(page.Data, func(item T, _ int) T {
			return c.postFn(item)
		})
	}

	c.state.store(page)

	return true, nil
}

// Loaded reports whether the page has been fetched. It never triggers a
// load itself.
func (c *PageCursor[T]) Loaded() bool {
	return c != nil && c.state.loaded
}

// Data returns the elements of the page, loading it on first access.
func (c *PageCursor[T]) Data(ctx context.Context) ([]T, error) {
	if _, err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	return c.state.data, nil
}

// Before returns the token of the preceding page, loading on first access.
// A nil token means the set has no page in that direction.
func (c *PageCursor[T]) Before(ctx context.Context) (Cursor, error) {
	if _, err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	return c.state.before, nil
}

// After returns the token of the following page, loading on first access.
// A nil token means the set has no page in that direction.
func (c *PageCursor[T]) After(ctx context.Context) (Cursor, error) {
	if _, err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	return c.state.after, nil
}

// GetParams returns a copy of the cursor's parameters.
func (c *PageCursor[T]) GetParams() Params {
	if c == nil {
		return nil
	}

	return maps.Clone(c.params)
}

// PageAfter returns an unloaded cursor for the page following this one, or
// nil when the end of the set is reached. Loads the receiver if needed.
func (c *PageCursor[T]) PageAfter(ctx context.Context) (*PageCursor[T], error) {
	return c.page(ctx, dirAfter)
}

// PageBefore returns an unloaded cursor for the page preceding this one, or
// nil when the start of the set is reached. Loads the receiver if needed.
func (c *PageCursor[T]) PageBefore(ctx context.Context) (*PageCursor[T], error) {
	return c.page(ctx, dirBefore)
}

func (c *PageCursor[T]) page(ctx context.Context, d direction) (*PageCursor[T], error) {
	if _, err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	token := c.state.token(d)
	if token == nil {
		return nil, nil
	}

	return c.WithParams(Params{d.paramKey(): token}), nil
}

// Equal reports whether two cursors are structurally identical: same loaded
// flag, same data and tokens by value, same Client reference, same set
// expression and parameters by value, and the same map/postprocessing
// functions by identity.
//
// IMPORTANT:
// Function identity is a sharp edge. Two distinct closures are never equal
// here, even when they behave identically.
func (c *PageCursor[T]) Equal(other *PageCursor[T]) bool {
	if c == nil || other == nil {
		return c == other
	}

	return c.state.loaded == other.state.loaded &&
		reflect.DeepEqual(c.state.data, other.state.data) &&
		reflect.DeepEqual(c.state.before, other.state.before) &&
		reflect.DeepEqual(c.state.after, other.state.after) &&
		sameClient(c.client, other.client) &&
		reflect.DeepEqual(c.set, other.set) &&
		reflect.DeepEqual(c.params, other.params) &&
		sameFunc(c.mapFn, other.mapFn) &&
		sameFunc(c.postFn, other.postFn)
}

// sameFunc compares function values by code pointer, treating two nils as
// equal.
func sameFunc(a, b any) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.IsNil() || bv.IsNil() {
		return av.IsNil() && bv.IsNil()
	}

	return av.Pointer() == bv.Pointer()
}

// sameClient compares two clients by reference. Clients are interface
// values with arbitrary dynamic types, so a bare == is not an option: it
// panics on non-comparable dynamic types such as func adapters.
func sameClient(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Type() != bv.Type() {
		return false
	}
	if av.Type().Comparable() {
		return a == b
	}

	switch av.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return av.Pointer() == bv.Pointer()
	default:
		// Non-comparable values without a usable identity (e.g. structs
		// embedding funcs) are never considered the same reference.
		return false
	}
}

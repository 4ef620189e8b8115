package setpager

// Package setpager provides a lazy, cursor-driven client for remote,
// server-paginated result sets.
//
// Overview
//
// A remote query engine evaluates an opaque set expression and returns one
// page of elements at a time, together with opaque before/after cursor
// tokens. setpager wraps that protocol into a PageCursor:
//   - PageCursor: an immutable view of one page. It loads lazily, exactly
//     once, on the first access to its data or cursor tokens.
//   - Builders (WithParams, WithMap, WithPostprocessing) derive fresh,
//     unloaded instances without touching the receiver.
//   - PageAfter/PageBefore navigate the set; ForwardPages/BackwardPages
//     drive the navigation into a full traversal.
//
// Key concepts
//   - Client: the remote execution boundary. GormClient is a reference
//     implementation backed by GORM keyset pagination.
//   - Params: pagination parameters. The cursor keys "before" and "after"
//     are mutually exclusive; setpager enforces that on every merge.
//   - Server-side map vs. postprocessing: the former rewrites the paginate
//     expression before it is sent, the latter runs locally on every
//     element of a loaded page.
//
// See README for examples and usage details.

package setpager

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
)

// TableSet is the set expression understood by GormClient: one table (or
// view), an optional scope narrowing it, and the keyset ordering.
//
// IMPORTANT:
// OrderBy MUST include at least one unique column, otherwise cursor
// positions are ambiguous and pages can overlap.
type TableSet struct {
	// Table - table or view name.
	Table string
	// Scope - optional extra conditions applied before pagination.
	Scope func(*gorm.DB) *gorm.DB
	// OrderBy - keyset ordering columns with explicit directions.
	OrderBy Orderings
}

// Getters maps ordering columns to value extractors. Declare one getter per
// OrderBy column so the client can capture boundary rows into tokens.
//
// Example:
//
//	setpager.Getters[User]{
//		"id":         func(u User) any { return u.ID },
//		"created_at": func(u User) any { return u.CreatedAt },
//	}
type Getters[T any] map[string]func(T) any

// GormClient is a reference Client implementation that evaluates paginate
// expressions over *TableSet via GORM keyset pagination. It fetches one
// probe row past the requested size to decide whether a further page exists
// in the traversal direction.
type GormClient[T any] struct {
	db      *gorm.DB
	getters Getters[T]
}

func NewGormClient[T any](db *gorm.DB, getters Getters[T]) *GormClient[T] {
	return &GormClient[T]{
		db:      db,
		getters: getters,
	}
}

// Query - implements Client.
func (g *GormClient[T]) Query(ctx context.Context, expr Expr) (Page[T], error) {
	paginate, ok := expr.(*PaginateExpr)
	if !ok {
		return Page[T]{}, fmt.Errorf("gorm client cannot execute expression of type %T", expr)
	}

	set, ok := paginate.Set.(*TableSet)
	if !ok {
		return Page[T]{}, fmt.Errorf("gorm client cannot paginate set expression of type %T", paginate.Set)
	}

	if err := set.OrderBy.validate(); err != nil {
		return Page[T]{}, fmt.Errorf("cannot paginate: %w", err)
	}

	size := sizeFromParams(paginate.Params)
	key, token, hasToken := paginate.Params.cursorToken()
	backward := hasToken && key == ParamBefore

	db := g.db.WithContext(ctx).Table(set.Table)
	if set.Scope != nil {
		db = set.Scope(db)
	}

	// A "before" cursor walks the set in reverse: flip the ordering for the
	// query and restore row order afterwards.
	orderings := set.OrderBy
	if backward {
		orderings = orderings.flipped()
	}
	db = orderings.Apply(db)

	if hasToken {
		elements, err := DecodeToken(token)
		if err != nil {
			return Page[T]{}, fmt.Errorf("cannot paginate: %w", err)
		}

		condition, err := keysetCondition(elements, set.OrderBy, backward)
		if err != nil {
			return Page[T]{}, fmt.Errorf("cannot paginate: %w", err)
		}

		db = db.Clauses(condition)
	}

	// Probe row: fetch one extra record to detect a further page.
	var rows []T
	if err := db.Limit(size + 1).Find(&rows).Error; err != nil {
		return Page[T]{}, err
	}

	more := len(rows) > size
	if more {
		rows = rows[:size]
	}
	if backward {
		slices.Reverse(rows)
	}

	page := Page[T]{Data: rows}
	if len(rows) == 0 {
		return page, nil
	}

	var err error
	page.Before, page.After, err = g.pageTokens(rows, set.OrderBy, hasToken, backward, more)
	if err != nil {
		return Page[T]{}, err
	}

	return page, nil
}

// pageTokens derives the before/after tokens bounding the returned rows.
// A token is emitted only when a page is known to exist in that direction:
// either the probe row proved it, or the traversal arrived from there.
func (g *GormClient[T]) pageTokens(rows []T, orderings Orderings, hasToken, backward, more bool) (Cursor, Cursor, error) {
	firstToken, err := g.rowToken(rows[0], orderings)
	if err != nil {
		return nil, nil, err
	}
	lastToken, err := g.rowToken(rows[len(rows)-1], orderings)
	if err != nil {
		return nil, nil, err
	}

	var before, after Cursor
	switch {
	case !hasToken:
		if more {
			after = lastToken
		}
	case backward:
		after = lastToken
		if more {
			before = firstToken
		}
	default:
		before = firstToken
		if more {
			after = lastToken
		}
	}

	return before, after, nil
}

func (g *GormClient[T]) rowToken(row T, orderings Orderings) (string, error) {
	elements := make([]TokenElement, 0, len(orderings))
	for _, orderBy := range orderings {
		getter, ok := g.getters[orderBy.Column]
		if !ok {
			return "", fmt.Errorf("cannot find getter for column '%s' met in ordering", orderBy.Column)
		}

		elements = append(elements, TokenElement{
			Column: orderBy.Column,
			Value:  getter(row),
		})
	}

	return EncodeToken(elements), nil
}

var _ Client[struct{}] = (*GormClient[struct{}])(nil)

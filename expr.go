package setpager

import "maps"

// Expr is an expression of the remote query language. The core never
// inspects expressions: it only composes them and hands them to a Client,
// which owns their actual representation and serialization.
type Expr any

// ExprFunc transforms one remote expression into another. It is the shape
// of a server-side map: the paginate expression goes in, the expression
// that is actually executed comes out.
type ExprFunc func(Expr) Expr

// PaginateExpr asks the remote engine for one page of the underlying set.
// Clients type-switch on *PaginateExpr (or on whatever a configured
// server-side map wrapped it into).
type PaginateExpr struct {
	// Set - the set expression being paginated.
	Set Expr
	// Params - pagination parameters, including at most one cursor key.
	Params Params
}

// Paginate builds a paginate expression over the given set. The parameter
// map is copied, so later mutation of params does not leak into the
// expression.
func Paginate(set Expr, params Params) *PaginateExpr {
	return &PaginateExpr{
		Set:    set,
		Params: maps.Clone(params),
	}
}

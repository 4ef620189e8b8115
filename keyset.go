package setpager

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm/clause"
)

var _encoder = base64.RawURLEncoding

// TokenElement is one (column, value) pair of a keyset token, recording the
// boundary row's value for a single ordering column.
type TokenElement struct {
	Column string `json:"c"`
	Value  any    `json:"v"`
}

// EncodeToken renders token elements as a base64 string suitable for use as
// an opaque cursor.
func EncodeToken(elements []TokenElement) string {
	if len(elements) == 0 {
		return ""
	}

	jTok, err := json.Marshal(elements)
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor token: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact cursor token: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

// DecodeToken parses an opaque cursor back into token elements. The token
// must be a string produced by EncodeToken.
func DecodeToken(token Cursor) ([]TokenElement, error) {
	b64String, ok := token.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected cursor token type %T", token)
	}
	if len(b64String) == 0 {
		return nil, fmt.Errorf("empty cursor token")
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 encoded cursor token: %w", err)
	}

	var elems []TokenElement
	if err = json.Unmarshal(jsonData, &elems); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json encoded cursor token: %w", err)
	}

	return elems, nil
}

// keysetCondition builds the WHERE condition selecting rows strictly past
// the boundary row captured in elements, with respect to orderings.
//
// For orderings (C1..Cn) the condition expands to
//
//	(C1 op1 V1) OR (C1 = V1 AND C2 op2 V2) OR ...
//
// where opi is ">" for ASC and "<" for DESC. With flip set (a "before"
// cursor walking backwards) every operator is inverted.
func keysetCondition(elements []TokenElement, orderings Orderings, flip bool) (clause.Expression, error) {
	if len(elements) != len(orderings) {
		return nil, fmt.Errorf("cursor token column number mismatch")
	}

	disjuncts := make([]clause.Expression, 0, len(elements))
	for i, elem := range elements {
		if elem.Column != orderings[i].Column {
			return nil, fmt.Errorf("unexpected cursor token column '%s'", elem.Column)
		}

		conjuncts := make([]clause.Expression, 0, i+1)
		for _, prev := range elements[:i] {
			conjuncts = append(conjuncts, columnCondition(prev.Column, "=", prev.Value))
		}
		conjuncts = append(conjuncts, columnCondition(elem.Column, strictOperator(orderings[i].Direction, flip), elem.Value))

		if len(conjuncts) == 1 {
			disjuncts = append(disjuncts, conjuncts[0])
		} else {
			disjuncts = append(disjuncts, clause.And(conjuncts...))
		}
	}

	if len(disjuncts) == 1 {
		return disjuncts[0], nil
	}

	return clause.Or(disjuncts...), nil
}

func strictOperator(d Direction, flip bool) string {
	if flip {
		d = d.flipped()
	}

	switch d {
	case DirectionASC:
		return ">"
	case DirectionDESC:
		return "<"
	default:
		panic(fmt.Errorf("cannot map direction '%s' to operator", d))
	}
}

func columnCondition(column string, operator string, value any) clause.Expression {
	return clause.Expr{
		SQL:  fmt.Sprintf("%s %s ?", column, operator),
		Vars: []any{reviveValue(value)},
	}
}

// reviveValue undoes the JSON round trip of a token value where it matters
// for SQL comparison: timestamps come back as strings and must be bound as
// time.Time again. Everything else is passed through.
func reviveValue(v any) any {
	parseTimeOrValue := func(vBytes []byte) any {
		dst := time.Time{}
		if err := dst.UnmarshalText(vBytes); err == nil {
			return dst
		}

		return v
	}

	switch vt := v.(type) {
	case string:
		return parseTimeOrValue([]byte(vt))
	case []byte:
		return parseTimeOrValue(vt)
	default:
		return v
	}
}

package setpager

import "fmt"

// direction selects which cursor token a navigation step follows. Keeping
// it a closed two-variant tag makes invalid directions unrepresentable
// through the public API.
type direction int

const (
	dirBefore direction = iota
	dirAfter
)

// paramKey maps the direction to its cursor parameter key.
func (d direction) paramKey() string {
	switch d {
	case dirBefore:
		return ParamBefore
	case dirAfter:
		return ParamAfter
	default:
		panic(fmt.Errorf("cannot map direction '%d' to a cursor key", d))
	}
}

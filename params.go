package setpager

import (
	"maps"

	"github.com/samber/lo"
)

// Pagination parameter keys understood by every Client.
const (
	// ParamSize - requested page size.
	ParamSize = "size"
	// ParamBefore - cursor key: fetch the page strictly before the token.
	ParamBefore = "before"
	// ParamAfter - cursor key: fetch the page strictly after the token.
	ParamAfter = "after"
)

// Params maps pagination parameter names to values.
//
// IMPORTANT:
// ParamBefore and ParamAfter are mutually exclusive. Every merge performed
// by the library keeps at most one of them; maps built by hand should
// respect the same rule.
type Params map[string]any

// merge returns a copy of p with overrides applied on top, last write wins.
// If overrides carry either cursor key, both cursor keys are scrubbed from
// the copy first, so a single-direction navigation replaces any stale
// cursor and the exclusivity invariant holds by construction.
func (p Params) merge(overrides Params) Params {
	ret := maps.Clone(p)
	if ret == nil {
		ret = make(Params, len(overrides))
	}

	if overrides.hasCursorKey() {
		delete(ret, ParamBefore)
		delete(ret, ParamAfter)
	}

	return lo.Assign(ret, overrides)
}

func (p Params) hasCursorKey() bool {
	_, hasBefore := p[ParamBefore]
	_, hasAfter := p[ParamAfter]

	return hasBefore || hasAfter
}

// cursorToken returns the single configured cursor token, its key and
// whether one is present at all. An error is never needed here: merge keeps
// the exclusivity invariant, and hand-built maps are validated by clients.
func (p Params) cursorToken() (string, any, bool) {
	if tok, ok := p[ParamBefore]; ok {
		return ParamBefore, tok, true
	}
	if tok, ok := p[ParamAfter]; ok {
		return ParamAfter, tok, true
	}

	return "", nil, false
}

package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/relaykit/relay/core/handler"
)

// knownMethods is the recognized verb set of the registration surface.
// Requests carrying any other verb short-circuit to method-not-allowed
// before matching is attempted.
var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
	http.MethodHead:    true,
}

// bodyMethods are the verbs for which the dispatcher decodes request bodies.
var bodyMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// segment is one compiled pattern segment: either a literal or a named
// parameter. Trailing wildcards are tracked on the route, not as a segment.
type segment struct {
	literal string
	param   string
}

func (s segment) isParam() bool {
	return s.param != ""
}

// route is a compiled route template bound to a handler.
type route[C handler.Context] struct {
	method   string
	pattern  string
	segments []segment
	wildcard bool
	handler  handler.HandlerFunc[C]

	// paramKeys are the declared parameter names in pattern order.
	paramKeys []string

	// literalPrefix counts leading literal segments; literals counts all of
	// them. Both feed the deterministic specificity ordering.
	literalPrefix int
	literals      int
}

// match reports whether the normalized path segments fit this route and
// returns the extracted parameters. The parameter map contains exactly the
// declared names; values are the literal path segments, undecoded.
func (rt *route[C]) match(segs []string) (map[string]string, bool) {
	if rt.wildcard {
		if len(segs) < len(rt.segments) {
			return nil, false
		}
	} else if len(segs) != len(rt.segments) {
		return nil, false
	}

	for i, s := range rt.segments {
		if !s.isParam() && s.literal != segs[i] {
			return nil, false
		}
	}

	params := make(map[string]string, len(rt.paramKeys))
	for i, s := range rt.segments {
		if s.isParam() {
			params[s.param] = segs[i]
		}
	}
	return params, true
}

// routeSet holds one method's routes split by match strategy.
type routeSet[C handler.Context] struct {
	// exact indexes literal-only patterns by normalized path for O(1) hits.
	exact map[string]*route[C]

	// dynamic holds parameterized patterns ordered by specificity:
	// longer literal prefix first, then more literal segments, then
	// registration order.
	dynamic []*route[C]

	// wildcard holds trailing-wildcard patterns, longest literal prefix first.
	wildcard []*route[C]
}

// table is the route table: method to pattern to handler, with the match
// priority exact > parameterized > wildcard. Registration must complete
// before serving begins; the table is read-only afterwards.
type table[C handler.Context] struct {
	methods  map[string]*routeSet[C]
	patterns map[string]map[string]bool
}

func newTable[C handler.Context]() *table[C] {
	return &table[C]{
		methods:  make(map[string]*routeSet[C]),
		patterns: make(map[string]map[string]bool),
	}
}

// register compiles and stores a route. Registration faults are programmer
// errors and panic at startup: invalid patterns, duplicate (method, pattern)
// pairs, duplicate parameter names, and non-trailing wildcards.
func (t *table[C]) register(method, pattern string, h handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	if t.patterns[method][pattern] {
		panic(fmt.Errorf("%w: %s '%s'", ErrDuplicateRoute, method, pattern))
	}
	if t.patterns[method] == nil {
		t.patterns[method] = make(map[string]bool)
	}
	t.patterns[method][pattern] = true

	rt := compileRoute[C](method, pattern, h)

	set := t.methods[method]
	if set == nil {
		set = &routeSet[C]{exact: make(map[string]*route[C])}
		t.methods[method] = set
	}

	switch {
	case rt.wildcard:
		set.wildcard = append(set.wildcard, rt)
		sort.SliceStable(set.wildcard, func(i, j int) bool {
			return len(set.wildcard[i].segments) > len(set.wildcard[j].segments)
		})
	case len(rt.paramKeys) > 0:
		set.dynamic = append(set.dynamic, rt)
		sort.SliceStable(set.dynamic, func(i, j int) bool {
			a, b := set.dynamic[i], set.dynamic[j]
			if a.literalPrefix != b.literalPrefix {
				return a.literalPrefix > b.literalPrefix
			}
			return a.literals > b.literals
		})
	default:
		set.exact[strings.Join(literalSegments(rt.segments), "/")] = rt
	}
}

func compileRoute[C handler.Context](method, pattern string, h handler.HandlerFunc[C]) *route[C] {
	rt := &route[C]{method: method, pattern: pattern, handler: h}

	segs := splitPath(pattern)
	for i, raw := range segs {
		switch {
		case raw == "*":
			if i != len(segs)-1 {
				panic(fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern))
			}
			rt.wildcard = true

		case strings.HasPrefix(raw, ":"):
			name := raw[1:]
			if name == "" {
				panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
			}
			for _, key := range rt.paramKeys {
				if key == name {
					panic(fmt.Errorf("%w: '%s' has duplicate key '%s'", ErrDuplicateParam, pattern, name))
				}
			}
			rt.paramKeys = append(rt.paramKeys, name)
			rt.segments = append(rt.segments, segment{param: name})

		default:
			rt.segments = append(rt.segments, segment{literal: raw})
			rt.literals++
			if len(rt.paramKeys) == 0 {
				rt.literalPrefix++
			}
		}
	}

	return rt
}

// lookup resolves (method, path) to a route and its extracted parameters in
// strict priority order: exact literal, then parameterized, then wildcard.
func (t *table[C]) lookup(method, path string) (*route[C], map[string]string, bool) {
	set := t.methods[method]
	if set == nil {
		return nil, nil, false
	}

	segs := splitPath(path)

	if rt, ok := set.exact[strings.Join(segs, "/")]; ok {
		return rt, make(map[string]string), true
	}

	for _, rt := range set.dynamic {
		if params, ok := rt.match(segs); ok {
			return rt, params, true
		}
	}

	for _, rt := range set.wildcard {
		if params, ok := rt.match(segs); ok {
			return rt, params, true
		}
	}

	return nil, nil, false
}

// matchesAny reports whether the path structurally matches a route under any
// method. Used for handler-less probes such as OPTIONS.
func (t *table[C]) matchesAny(path string) bool {
	segs := splitPath(path)
	key := strings.Join(segs, "/")

	for _, set := range t.methods {
		if _, ok := set.exact[key]; ok {
			return true
		}
		for _, rt := range set.dynamic {
			if _, ok := rt.match(segs); ok {
				return true
			}
		}
		for _, rt := range set.wildcard {
			if _, ok := rt.match(segs); ok {
				return true
			}
		}
	}
	return false
}

// routes returns all registered routes for introspection.
func (t *table[C]) routes() []Route {
	var rts []Route
	for method, set := range t.methods {
		for _, rt := range set.exact {
			rts = append(rts, Route{Method: method, Pattern: rt.pattern})
		}
		for _, rt := range set.dynamic {
			rts = append(rts, Route{Method: method, Pattern: rt.pattern})
		}
		for _, rt := range set.wildcard {
			rts = append(rts, Route{Method: method, Pattern: rt.pattern})
		}
	}
	sort.Slice(rts, func(i, j int) bool {
		if rts[i].Method != rts[j].Method {
			return rts[i].Method < rts[j].Method
		}
		return rts[i].Pattern < rts[j].Pattern
	})
	return rts
}

// splitPath normalizes a path into its segments: leading and trailing
// slashes are trimmed and consecutive or empty segments dropped.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

func literalSegments(segs []segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.literal
	}
	return out
}

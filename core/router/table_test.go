package router

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaykit/relay/core/handler"
)

func nopHandler(*Context) handler.Response {
	return func(http.ResponseWriter, *http.Request) error { return nil }
}

func TestTableLookup(t *testing.T) {
	t.Parallel()

	t.Run("exact_wins_over_parameterized", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodGet, "/items/:id", nopHandler)
		tbl.register(http.MethodGet, "/items/new", nopHandler)

		rt, params, ok := tbl.lookup(http.MethodGet, "/items/new")
		require.True(t, ok)
		assert.Equal(t, "/items/new", rt.pattern)
		assert.Empty(t, params)
	})

	t.Run("parameterized_wins_over_wildcard", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodGet, "/files/*", nopHandler)
		tbl.register(http.MethodGet, "/files/:name", nopHandler)

		rt, params, ok := tbl.lookup(http.MethodGet, "/files/report.pdf")
		require.True(t, ok)
		assert.Equal(t, "/files/:name", rt.pattern)
		assert.Equal(t, map[string]string{"name": "report.pdf"}, params)
	})

	t.Run("wildcard_matches_its_own_prefix", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodGet, "/a/*", nopHandler)

		for _, path := range []string{"/a", "/a/b", "/a/b/c"} {
			_, _, ok := tbl.lookup(http.MethodGet, path)
			assert.True(t, ok, path)
		}

		_, _, ok := tbl.lookup(http.MethodGet, "/x")
		assert.False(t, ok)
	})

	t.Run("params_are_verbatim_and_undecoded", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodGet, "/users/:email", nopHandler)

		_, params, ok := tbl.lookup(http.MethodGet, "/users/me%40example.com")
		require.True(t, ok)
		assert.Equal(t, "me%40example.com", params["email"])
	})

	t.Run("param_map_holds_exactly_declared_keys", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodGet, "/orgs/:org/repos/:repo", nopHandler)

		_, params, ok := tbl.lookup(http.MethodGet, "/orgs/acme/repos/site")
		require.True(t, ok)
		assert.Equal(t, map[string]string{"org": "acme", "repo": "site"}, params)
	})

	t.Run("slashes_are_normalized", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodGet, "/a/b", nopHandler)

		for _, path := range []string{"/a/b", "/a/b/", "//a//b"} {
			_, _, ok := tbl.lookup(http.MethodGet, path)
			assert.True(t, ok, path)
		}
	})

	t.Run("longer_literal_prefix_is_more_specific", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodGet, "/a/:y/c", nopHandler)
		tbl.register(http.MethodGet, "/a/b/:x", nopHandler)

		rt, _, ok := tbl.lookup(http.MethodGet, "/a/b/c")
		require.True(t, ok)
		assert.Equal(t, "/a/b/:x", rt.pattern)
	})

	t.Run("more_literals_break_prefix_ties", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodGet, "/u/:a/:c", nopHandler)
		tbl.register(http.MethodGet, "/u/:a/b", nopHandler)

		rt, _, ok := tbl.lookup(http.MethodGet, "/u/x/b")
		require.True(t, ok)
		assert.Equal(t, "/u/:a/b", rt.pattern)
	})

	t.Run("registration_order_breaks_full_ties", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodGet, "/p/:a/z", nopHandler)
		tbl.register(http.MethodGet, "/p/:b/z", nopHandler)

		rt, _, ok := tbl.lookup(http.MethodGet, "/p/q/z")
		require.True(t, ok)
		assert.Equal(t, "/p/:a/z", rt.pattern)
	})

	t.Run("method_isolation", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodPost, "/items", nopHandler)

		_, _, ok := tbl.lookup(http.MethodGet, "/items")
		assert.False(t, ok)
	})
}

func TestTableRegister(t *testing.T) {
	t.Parallel()

	t.Run("duplicate_route_panics", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodGet, "/items/:id", nopHandler)

		assert.PanicsWithError(t, "duplicate route registration: GET '/items/:id'", func() {
			tbl.register(http.MethodGet, "/items/:id", nopHandler)
		})
	})

	t.Run("same_pattern_different_method_is_allowed", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		tbl.register(http.MethodGet, "/items/:id", nopHandler)

		assert.NotPanics(t, func() {
			tbl.register(http.MethodDelete, "/items/:id", nopHandler)
		})
	})

	t.Run("duplicate_param_name_panics", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		assert.Panics(t, func() {
			tbl.register(http.MethodGet, "/a/:id/b/:id", nopHandler)
		})
	})

	t.Run("non_trailing_wildcard_panics", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		assert.Panics(t, func() {
			tbl.register(http.MethodGet, "/a/*/b", nopHandler)
		})
	})

	t.Run("empty_param_name_panics", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		assert.Panics(t, func() {
			tbl.register(http.MethodGet, "/a/:", nopHandler)
		})
	})

	t.Run("pattern_must_start_with_slash", func(t *testing.T) {
		t.Parallel()

		tbl := newTable[*Context]()
		assert.Panics(t, func() {
			tbl.register(http.MethodGet, "items", nopHandler)
		})
	})
}

func TestTableMatchesAny(t *testing.T) {
	t.Parallel()

	tbl := newTable[*Context]()
	tbl.register(http.MethodPost, "/items", nopHandler)
	tbl.register(http.MethodGet, "/files/*", nopHandler)

	assert.True(t, tbl.matchesAny("/items"))
	assert.True(t, tbl.matchesAny("/files/a/b"))
	assert.False(t, tbl.matchesAny("/nowhere"))
}

func TestTableRoutes(t *testing.T) {
	t.Parallel()

	tbl := newTable[*Context]()
	tbl.register(http.MethodPost, "/items", nopHandler)
	tbl.register(http.MethodGet, "/items/:id", nopHandler)
	tbl.register(http.MethodGet, "/files/*", nopHandler)

	assert.Equal(t, []Route{
		{Method: http.MethodGet, Pattern: "/files/*"},
		{Method: http.MethodGet, Pattern: "/items/:id"},
		{Method: http.MethodPost, Pattern: "/items"},
	}, tbl.routes())
}

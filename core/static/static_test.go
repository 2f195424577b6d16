package static_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaykit/relay/core/router"
	"github.com/relaykit/relay/core/static"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "style.css", "body {}")
	writeFile(t, root, "docs/index.html", "<h1>docs</h1>")
	writeFile(t, root, "docs/guide.html", "<h1>guide</h1>")

	t.Run("serves_existing_file", func(t *testing.T) {
		t.Parallel()

		d := static.NewDir("/assets", root)
		rec := httptest.NewRecorder()
		handled := d.Serve(rec, httptest.NewRequest(http.MethodGet, "/assets/style.css", nil))

		require.True(t, handled)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "body {}", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	})

	t.Run("miss_reports_false_without_writing", func(t *testing.T) {
		t.Parallel()

		d := static.NewDir("/assets", root)
		rec := httptest.NewRecorder()
		handled := d.Serve(rec, httptest.NewRequest(http.MethodGet, "/assets/missing.css", nil))

		assert.False(t, handled)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("path_outside_prefix_is_a_miss", func(t *testing.T) {
		t.Parallel()

		d := static.NewDir("/assets", root)
		rec := httptest.NewRecorder()
		handled := d.Serve(rec, httptest.NewRequest(http.MethodGet, "/style.css", nil))

		assert.False(t, handled)
	})

	t.Run("directory_falls_back_to_index", func(t *testing.T) {
		t.Parallel()

		d := static.NewDir("/assets", root)
		rec := httptest.NewRecorder()
		handled := d.Serve(rec, httptest.NewRequest(http.MethodGet, "/assets/docs", nil))

		require.True(t, handled)
		assert.Equal(t, "<h1>docs</h1>", rec.Body.String())
	})

	t.Run("directory_without_index_is_a_miss", func(t *testing.T) {
		t.Parallel()

		bare := t.TempDir()
		writeFile(t, bare, "sub/file.txt", "data")

		d := static.NewDir("/", bare)
		rec := httptest.NewRecorder()
		handled := d.Serve(rec, httptest.NewRequest(http.MethodGet, "/sub", nil))

		assert.False(t, handled)
	})

	t.Run("traversal_is_rejected", func(t *testing.T) {
		t.Parallel()

		d := static.NewDir("/assets", root)
		rec := httptest.NewRecorder()
		handled := d.Serve(rec, httptest.NewRequest(http.MethodGet, "/assets/../../etc/passwd", nil))

		assert.False(t, handled)
	})

	t.Run("root_prefix_serves_everything", func(t *testing.T) {
		t.Parallel()

		d := static.NewDir("/", root)
		rec := httptest.NewRecorder()
		handled := d.Serve(rec, httptest.NewRequest(http.MethodGet, "/docs/guide.html", nil))

		require.True(t, handled)
		assert.Equal(t, "<h1>guide</h1>", rec.Body.String())
	})
}

func TestFile(t *testing.T) {
	t.Parallel()

	t.Run("serves_single_file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFile(t, root, "favicon.ico", "icon-bytes")

		h := static.File[*router.Context](filepath.Join(root, "favicon.ico"))

		mux := router.New[*router.Context]()
		mux.Get("/favicon.ico", h)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "icon-bytes", rec.Body.String())
	})

	t.Run("missing_file_panics_at_startup", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			static.File[*router.Context]("/nonexistent/favicon.ico")
		})
	})

	t.Run("directory_panics_at_startup", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			static.File[*router.Context](t.TempDir())
		})
	})
}

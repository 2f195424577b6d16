package static

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir serves files from a filesystem directory under a URL prefix. It
// implements the dispatcher's StaticServer collaborator: Serve reports false
// on a miss so routing continues, instead of writing a 404 that would shadow
// registered routes.
//
// Directory requests fall back to index.html; listings are never generated.
type Dir struct {
	prefix string
	root   string
}

// NewDir creates a static server mapping URL paths under prefix to files
// under root. An empty prefix means "/".
func NewDir(prefix, root string) *Dir {
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return &Dir{prefix: prefix, root: root}
}

// Serve writes the file matching the request path and reports whether it
// handled the request. Requests outside the prefix, traversal attempts, and
// missing files all return false untouched.
func (d *Dir) Serve(w http.ResponseWriter, r *http.Request) bool {
	rel, ok := d.relPath(r.URL.Path)
	if !ok {
		return false
	}

	target := filepath.Join(d.root, filepath.FromSlash(rel))

	// Clean must not escape the root.
	cleanRoot := filepath.Clean(d.root)
	if target != cleanRoot && !strings.HasPrefix(target, cleanRoot+string(filepath.Separator)) {
		return false
	}

	info, err := os.Stat(target)
	if err != nil {
		return false
	}

	if info.IsDir() {
		target = filepath.Join(target, "index.html")
		if info, err = os.Stat(target); err != nil || info.IsDir() {
			return false
		}
	}

	// ServeFile handles Range requests, If-Modified-Since, and content type.
	http.ServeFile(w, r, target)
	return true
}

// relPath strips the prefix and normalizes the remainder, rejecting paths
// that do not live under the prefix.
func (d *Dir) relPath(urlPath string) (string, bool) {
	cleaned := path.Clean("/" + urlPath)
	if d.prefix == "/" {
		return strings.TrimPrefix(cleaned, "/"), true
	}
	if cleaned == d.prefix {
		return "", true
	}
	if strings.HasPrefix(cleaned, d.prefix+"/") {
		return cleaned[len(d.prefix)+1:], true
	}
	return "", false
}

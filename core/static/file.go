package static

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/relaykit/relay/core/handler"
)

// File creates a route handler that serves one file. Content type detection
// and range requests come from http.ServeFile. The path is validated at
// startup; a missing file or a directory is a programmer error and panics.
func File[C handler.Context](filePath string) handler.HandlerFunc[C] {
	cleanPath := filepath.Clean(filePath)

	info, err := os.Stat(cleanPath)
	if err != nil {
		panic("static.File: " + err.Error())
	}
	if info.IsDir() {
		panic("static.File: path is a directory, not a file: " + cleanPath)
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			http.ServeFile(w, r, cleanPath)
			return nil
		}
	}
}

// Package static serves files from disk. Dir implements the dispatcher's
// static-file collaborator: it is consulted for GET requests before routing
// and reports a miss instead of writing a 404, so registered routes at the
// same paths keep working. File builds an ordinary route handler for a
// single file such as a favicon.
//
// Directory listings are never generated; a directory request falls back to
// its index.html or misses. Paths are normalized and traversal outside the
// root is rejected.
package static

// Package logger provides slog attribute helpers with consistent keys across
// the codebase. Nil errors and empty identifiers produce empty attrs that
// slog drops, so call sites never need nil checks.
package logger

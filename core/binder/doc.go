// Package binder decodes request bodies for body-bearing methods. The
// declared content type selects the decoded variant: JSON media types yield
// a structured value, form and multipart payloads flatten into key/value
// maps (multipart file parts are kept in their raw form), binary families
// keep the raw bytes tagged with their content type, and everything else is
// delivered as plain text.
//
// Missing or empty bodies yield a zero Body and never fault. Parse failures
// are surfaced as typed errors (ErrMalformedJSON, ErrMalformedForm) so the
// dispatcher can distinguish them from handler faults.
package binder

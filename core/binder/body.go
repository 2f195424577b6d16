package binder

import "mime/multipart"

// Kind identifies which variant of a decoded Body is populated.
type Kind uint8

const (
	// KindNone means the request carried no body.
	KindNone Kind = iota
	// KindJSON means Value holds the decoded JSON document.
	KindJSON
	// KindForm means Form holds flattened key/value pairs; for multipart
	// requests Files additionally holds the raw file parts.
	KindForm
	// KindBinary means Bytes holds the raw payload tagged with ContentType.
	KindBinary
	// KindText means Text holds the body as plain text.
	KindText
)

// Body is the decoded request payload. Exactly one variant is populated,
// selected by the declared content type of the request.
type Body struct {
	Kind Kind

	// Value is the decoded JSON document for KindJSON.
	Value any

	// Form holds flattened form fields for KindForm; on duplicate keys the
	// last value wins.
	Form map[string]string

	// Files holds multipart file parts by field name, in their raw form.
	Files map[string][]*multipart.FileHeader

	// Bytes is the raw payload for KindBinary.
	Bytes []byte

	// ContentType is the declared media type for KindBinary.
	ContentType string

	// Text is the payload for KindText.
	Text string
}

// IsZero reports whether the request carried no decodable body.
func (b Body) IsZero() bool {
	return b.Kind == KindNone
}

// Receiver is implemented by request contexts that accept a decoded body.
// The dispatcher delivers the Body to any context implementing it.
type Receiver interface {
	SetBody(Body)
}

package cookie

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Directive builds a single Set-Cookie directive string from the standard
// cookie-attribute grammar: name=value followed by semicolon-joined
// attributes (Path, Domain, Max-Age, Expires as an HTTP-date, HttpOnly,
// Secure, SameSite).
func Directive(name, value string, opts Options) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)

	if opts.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(opts.Path)
	}
	if opts.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(opts.Domain)
	}
	if opts.MaxAge > 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(opts.MaxAge))
	} else if opts.MaxAge < 0 {
		b.WriteString("; Max-Age=0")
	}
	if !opts.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(opts.Expires.UTC().Format(http.TimeFormat))
	}
	if opts.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	if opts.Secure {
		b.WriteString("; Secure")
	}
	switch opts.SameSite {
	case http.SameSiteLaxMode:
		b.WriteString("; SameSite=Lax")
	case http.SameSiteStrictMode:
		b.WriteString("; SameSite=Strict")
	case http.SameSiteNoneMode:
		b.WriteString("; SameSite=None")
	}

	return b.String()
}

// DeleteDirective builds a directive that removes the named cookie: the value
// is emptied and Max-Age forced to zero. Path, Domain and the security
// attributes from opts are preserved so the directive targets the same cookie
// that was originally set.
func DeleteDirective(name string, opts Options) string {
	opts.MaxAge = -1
	opts.Expires = unixEpoch
	return Directive(name, "", opts)
}

// unixEpoch is the conventional Expires value for cookie removal.
var unixEpoch = time.Unix(0, 0)

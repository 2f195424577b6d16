// Package cookie builds Set-Cookie directive strings from the standard
// cookie-attribute grammar. It is used by the response builder's SetCookie
// and DeleteCookie operations.
//
//	directive := cookie.Directive("session", "abc", cookie.Apply(cookie.Options{},
//		cookie.WithHTTPOnly(true),
//		cookie.WithMaxAge(3600),
//	))
//	// session=abc; Max-Age=3600; HttpOnly
package cookie

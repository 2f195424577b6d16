// Package response constructs finalized HTTP responses. It offers two
// surfaces over the same rendering core: standalone constructors (String,
// JSON, Redirect, Status) for one-shot responses, and Builder, a write-once
// accumulator for status, ordered headers and cookie directives.
//
//	func update(ctx *router.Context) handler.Response {
//		b := response.NewBuilder()
//		b.SetStatus(http.StatusCreated)
//		b.SetHeader("X-Resource", "item")
//		b.SetCookie("seen", "1", cookie.WithHTTPOnly(true))
//		return b.Send(map[string]any{"ok": true})
//	}
//
// A Builder finalizes exactly once; mutations after Send or Redirect are
// logged and ignored.
package response

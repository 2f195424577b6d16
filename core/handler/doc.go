// Package handler defines the contract types shared by the dispatch layer:
// the request Context interface, the Response render function, type-safe
// handler and error-handler signatures, and the guard pipeline primitives.
//
// A handler receives a context and returns a Response:
//
//	func hello(ctx *router.Context) handler.Response {
//		return response.String("Hello, " + ctx.Param("name"))
//	}
//
// Guards run before the handler and either allow, reject, or short-circuit:
//
//	func requireToken[C handler.Context](ctx C) handler.GuardResult {
//		if ctx.Request().Header.Get("Authorization") == "" {
//			return handler.Reject(errors.New("missing token"))
//		}
//		return handler.Allow()
//	}
package handler

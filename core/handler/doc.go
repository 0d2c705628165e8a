// Package handler defines the typed request-processing contract shared by the
// router, middlewares and application handlers.
//
// A handler receives a context type C and returns a Response closure; it never
// writes to the ResponseWriter directly:
//
//	func itemList(repo *item.Repository, views *web.Views) handler.HandlerFunc[*web.Context] {
//		return func(ctx *web.Context) handler.Response {
//			return response.TemplateName(views.Set(), "items", repo.FindAll())
//		}
//	}
//
// Middlewares are plain functions over HandlerFunc and compose with Chain:
//
//	h := handler.Chain(endpoint, requestID, logging, loginCheck)
package handler

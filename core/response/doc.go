// Package response builds handler.Response values: plain text, rendered
// html/template pages, redirects and errors.
//
//	return response.TemplateName(views, "item", data)
//	return response.RedirectSeeOther("/items/" + id)
//	return response.Error(response.ErrNotFound.WithMessage("item not found"))
//
// Errors returned from a Response reach the router's error handler. AsHTTPError
// turns any error into an HTTPError using its StatusCode() when it has one.
package response

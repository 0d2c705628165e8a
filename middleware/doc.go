// Package middleware holds the request pipeline pieces.
//
// Filters are plain net/http middlewares installed around the router with
// router.WithHTTPMiddleware: LogFilter and LoginCheckFilter. Interceptors
// are typed handler.Middleware values that run after routing: RequestID,
// Logging, LoginCheck and CurrentMember.
//
// Filter whitelists use SimpleMatch ("*" spans slashes). Interceptor
// exclusions use PathMatch, where "*" stays inside a segment and "**"
// spans segments.
package middleware

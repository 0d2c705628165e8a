// Package web serves the item administration UI.
//
// NewRouter wires the pages behind two layers of request handling. Filters
// wrap the whole router and see every request: metrics, LogFilter and,
// with GateFilter, LoginCheckFilter. Interceptors run after a route matched:
// RequestID, Logging, CurrentMember and, with GateInterceptor, LoginCheck.
// Which login strategy remembers the member is decided by the caller
// through Deps.Strategy.
package web

package middleware

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/sessionlab/core/handler"
)

type memberContextKey struct{}

// CurrentMember resolves the logged-in member once per request and stores
// it in the context. Anonymous requests pass through with nothing stored.
func CurrentMember[C handler.Context, M any](resolve func(r *http.Request) (M, bool)) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if m, ok := resolve(ctx.Request()); ok {
				ctx.SetValue(memberContextKey{}, m)
			}
			return next(ctx)
		}
	}
}

// GetMember returns the member stored by CurrentMember.
// The second result is false for anonymous requests.
func GetMember[M any](ctx handler.Context) (M, bool) {
	return MemberFromContext[M](ctx)
}

// MemberFromContext reads the member from a plain context, such as the one
// returned by ctx.Request().Context() after CurrentMember ran.
func MemberFromContext[M any](ctx context.Context) (M, bool) {
	m, ok := ctx.Value(memberContextKey{}).(M)
	return m, ok
}

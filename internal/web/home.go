package web

import (
	"github.com/dmitrymomot/sessionlab/core/handler"
)

// homeHandler greets members and shows the sign-up and login links to everyone else.
func homeHandler(v views) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		m, ok := ctx.Member()
		if !ok {
			return v.render(viewHome, page{Title: "Home"})
		}
		return v.render(viewLoginHome, page{Title: "Home", Member: &m})
	}
}

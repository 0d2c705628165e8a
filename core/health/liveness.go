package health

import (
	"github.com/dmitrymomot/sessionlab/core/handler"
	"github.com/dmitrymomot/sessionlab/core/response"
)

// Liveness always answers "ALIVE"; it checks nothing but the process itself.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent answers 204 with no body.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}

package binder

import "net/http"

// Binder maps request data onto the struct v points to.
type Binder func(r *http.Request, v any) error

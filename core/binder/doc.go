// Package binder maps HTML form submissions and query strings onto structs.
//
//	var f ItemForm
//	if err := binder.Form()(r, &f); err != nil {
//		if fe, ok := binder.IsFieldError(err); ok {
//			// fe.Field could not be converted
//		}
//	}
//
// Blank inputs are treated as absent, so pointer fields let callers tell
// "missing" apart from zero.
package binder

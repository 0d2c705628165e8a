package httpsession

import "errors"

var (
	// ErrNotFound is returned by a Store for unknown or expired ids.
	ErrNotFound = errors.New("session not found")
	// ErrNoSession is returned by Manager.Get when the request has no live session.
	ErrNoSession = errors.New("no session")
	// ErrTokenGeneration is returned when the random source fails.
	ErrTokenGeneration = errors.New("failed to generate session id")
	// ErrSaveSession wraps store failures on save.
	ErrSaveSession = errors.New("failed to save session")
	// ErrDeleteSession wraps store failures on delete.
	ErrDeleteSession = errors.New("failed to delete session")
	// ErrUnknownStore is returned for an unsupported SESSION_STORE value.
	ErrUnknownStore = errors.New("unknown session store")
)

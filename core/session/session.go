package session

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionlab/core/logger"
)

// CookieName is the cookie that carries the session token.
const CookieName = "mySessionId"

// CookieSource is the read side of a request: it yields the value of the
// named cookie, if the request has one.
type CookieSource interface {
	Cookie(name string) (string, bool)
}

// CookieSink is the write side of a response.
type CookieSink interface {
	SetCookie(name, value string)
}

// Manager maps opaque tokens to values of type V.
// Entries live until Expire is called or the process exits.
// All methods are safe for concurrent use.
type Manager[V any] struct {
	mu       sync.RWMutex
	sessions map[string]V
	log      *slog.Logger
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger enables debug records for create and expire.
// Tokens are logged as a short prefix only.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// NewManager returns an empty manager.
func NewManager[V any](opts ...Option) *Manager[V] {
	o := options{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[V]{
		sessions: make(map[string]V),
		log:      o.log.With(logger.Component("session")),
	}
}

// Create stores value under a fresh random token and sets the CookieName
// cookie on sink. The token is returned for callers that need it.
func (m *Manager[V]) Create(value V, sink CookieSink) string {
	token := uuid.New().String()

	m.mu.Lock()
	m.sessions[token] = value
	m.mu.Unlock()

	sink.SetCookie(CookieName, token)
	m.log.Debug("session created", logger.Token(token))
	return token
}

// Get returns the value for the token in the request cookie.
// The second result is false when the cookie or the entry is missing.
func (m *Manager[V]) Get(source CookieSource) (V, bool) {
	var zero V

	token, ok := source.Cookie(CookieName)
	if !ok {
		return zero, false
	}

	m.mu.RLock()
	value, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return zero, false
	}
	return value, true
}

// Expire removes the entry for the token in the request cookie.
// Missing cookies and unknown tokens are ignored. The client cookie is left
// as is; once expired it simply stops resolving.
func (m *Manager[V]) Expire(source CookieSource) {
	token, ok := source.Cookie(CookieName)
	if !ok {
		return
	}

	m.mu.Lock()
	_, existed := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()

	if existed {
		m.log.Debug("session expired", logger.Token(token))
	}
}

// Len returns the number of live entries.
func (m *Manager[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

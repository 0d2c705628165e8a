package httpsession

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/sessionlab/core/logger"
)

// Manager ties sessions in a Store to a cookie on the client.
type Manager[Data any] struct {
	store Store[Data]
	opts  options
}

// NewManager returns a manager over store.
func NewManager[Data any](store Store[Data], opts ...Option) *Manager[Data] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[Data]{store: store, opts: o}
}

// NewFromConfig applies cfg and then opts.
func NewFromConfig[Data any](store Store[Data], cfg Config, opts ...Option) *Manager[Data] {
	base := []Option{
		WithCookieName(cfg.CookieName),
		WithCookieSecure(cfg.CookieSecure),
		WithMaxInactiveInterval(cfg.MaxInactive),
	}
	return NewManager(store, append(base, opts...)...)
}

// CookieName returns the name of the session cookie.
func (m *Manager[Data]) CookieName() string {
	return m.opts.cookieName
}

// Get returns the live session referenced by the request cookie and records
// the access. It never creates one; ErrNoSession means there is none.
func (m *Manager[Data]) Get(ctx context.Context, r *http.Request) (Session[Data], error) {
	c, err := r.Cookie(m.opts.cookieName)
	if err != nil || c.Value == "" {
		return Session[Data]{}, ErrNoSession
	}

	sess, err := m.store.Get(ctx, c.Value)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session[Data]{}, ErrNoSession
		}
		return Session[Data]{}, err
	}

	now := time.Now()
	if err := m.store.Touch(ctx, sess.ID, now); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session[Data]{}, ErrNoSession
		}
		return Session[Data]{}, errors.Join(ErrSaveSession, err)
	}
	sess.LastAccessedAt = now
	return *sess, nil
}

// GetOrCreate returns the current session or starts a new one, setting the cookie.
func (m *Manager[Data]) GetOrCreate(ctx context.Context, w http.ResponseWriter, r *http.Request) (Session[Data], error) {
	sess, err := m.Get(ctx, r)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrNoSession) {
		return Session[Data]{}, err
	}

	sess, err = newSession[Data](m.opts.maxInactive)
	if err != nil {
		return Session[Data]{}, err
	}
	if err := m.store.Save(ctx, &sess); err != nil {
		return Session[Data]{}, errors.Join(ErrSaveSession, err)
	}

	http.SetCookie(w, m.cookie(sess.ID, 0))
	m.opts.logger.DebugContext(ctx, "session created",
		logger.Token(sess.ID),
		logger.Duration(sess.MaxInactiveInterval),
	)
	return sess, nil
}

// Save persists sess and marks it accessed now.
func (m *Manager[Data]) Save(ctx context.Context, sess Session[Data]) error {
	sess.LastAccessedAt = time.Now()
	if err := m.store.Save(ctx, &sess); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	return nil
}

// Invalidate deletes the current session, if any, and clears the cookie.
func (m *Manager[Data]) Invalidate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	c, err := r.Cookie(m.opts.cookieName)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, m.cookie("", -1))

	if err := m.store.Delete(ctx, c.Value); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	m.opts.logger.DebugContext(ctx, "session invalidated", logger.Token(c.Value))
	return nil
}

// StartCleanup removes expired sessions every interval until ctx is done.
// It returns immediately; the loop runs in its own goroutine.
func (m *Manager[Data]) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := m.cleanup(ctx); err != nil && ctx.Err() == nil {
					m.opts.logger.ErrorContext(ctx, "session cleanup failed", logger.Error(err))
				}
			}
		}
	}()
}

func (m *Manager[Data]) cleanup(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	if n > 0 {
		m.opts.logger.DebugContext(ctx, "expired sessions removed", logger.Count("removed", int(n)))
	}
	return n, nil
}

func (m *Manager[Data]) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.opts.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// LogValue renders the session for structured logs without its attributes.
func (s Session[Data]) LogValue() slog.Value {
	return slog.GroupValue(
		logger.SessionID(s.ID),
		slog.Time("created_at", s.CreatedAt),
		slog.Time("last_accessed_at", s.LastAccessedAt),
		slog.Duration("max_inactive", s.MaxInactiveInterval),
		slog.Bool("is_new", s.isNew),
	)
}

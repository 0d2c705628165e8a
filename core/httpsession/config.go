package httpsession

import (
	"log/slog"
	"time"
)

// Store kinds accepted by SESSION_STORE.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds SESSION_* settings.
type Config struct {
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"SESSIONID"`
	CookieSecure    bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	MaxInactive     time.Duration `env:"SESSION_MAX_INACTIVE" envDefault:"30m"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1m"`
	Store           string        `env:"SESSION_STORE" envDefault:"memory"`
}

type options struct {
	cookieName   string
	cookieSecure bool
	maxInactive  time.Duration
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		cookieName:  "SESSIONID",
		maxInactive: 30 * time.Minute,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// Option configures a Manager.
type Option func(*options)

// WithCookieName sets the cookie carrying the session id.
func WithCookieName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.cookieName = name
		}
	}
}

// WithCookieSecure marks the session cookie Secure.
func WithCookieSecure(secure bool) Option {
	return func(o *options) { o.cookieSecure = secure }
}

// WithMaxInactiveInterval sets the idle timeout for new sessions; zero disables it.
func WithMaxInactiveInterval(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.maxInactive = d
		}
	}
}

// WithLogger sets the logger for lifecycle and cleanup records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

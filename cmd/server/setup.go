package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/sessionlab/core/health"
	"github.com/dmitrymomot/sessionlab/core/httpsession"
	"github.com/dmitrymomot/sessionlab/core/logger"
	"github.com/dmitrymomot/sessionlab/integration/database/redis"
	"github.com/dmitrymomot/sessionlab/internal/auth"
	"github.com/dmitrymomot/sessionlab/internal/metrics"
)

func newLogger(cfg Config) *slog.Logger {
	mode := logger.WithDevelopment(cfg.AppName)
	if cfg.AppEnv == "production" {
		mode = logger.WithProduction(cfg.AppName)
	}
	return logger.New(mode, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
}

// ephemeralSecret is used when COOKIE_SECRETS is empty. Signed cookies then
// stop verifying after a restart.
func ephemeralSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// sessionStore is the container session backend chosen by SESSION_STORE.
type sessionStore struct {
	store  httpsession.Store[auth.SessionData]
	checks []health.Check
	close  func() error
}

func newSessionStore(ctx context.Context, cfg Config, m *metrics.Metrics) (sessionStore, error) {
	switch cfg.Session.Store {
	case httpsession.StoreMemory:
		store := httpsession.NewMemoryStore[auth.SessionData]()
		m.SessionGauge("container", "Live container sessions", store.Len)
		return sessionStore{store: store, close: func() error { return nil }}, nil

	case httpsession.StoreRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return sessionStore{}, err
		}
		return sessionStore{
			store:  httpsession.NewRedisStore[auth.SessionData](client),
			checks: []health.Check{{Name: "redis", Fn: redis.Healthcheck(client)}},
			close:  client.Close,
		}, nil

	default:
		return sessionStore{}, fmt.Errorf("%w: %q", httpsession.ErrUnknownStore, cfg.Session.Store)
	}
}

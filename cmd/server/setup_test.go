package main

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionlab/core/httpsession"
	"github.com/dmitrymomot/sessionlab/internal/auth"
	"github.com/dmitrymomot/sessionlab/internal/metrics"
)

func TestEphemeralSecret(t *testing.T) {
	t.Parallel()

	a, err := ephemeralSecret()
	require.NoError(t, err)
	b, err := ephemeralSecret()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestNewSessionStore(t *testing.T) {
	t.Parallel()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()

		var cfg Config
		cfg.Session.Store = httpsession.StoreMemory
		s, err := newSessionStore(t.Context(), cfg, metrics.New())
		require.NoError(t, err)
		assert.IsType(t, &httpsession.MemoryStore[auth.SessionData]{}, s.store)
		assert.Empty(t, s.checks)
		assert.NoError(t, s.close())
	})

	t.Run("redis", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		var cfg Config
		cfg.Session.Store = httpsession.StoreRedis
		cfg.Redis.ConnectionURL = "redis://" + mr.Addr() + "/0"
		cfg.Redis.RetryAttempts = 1
		cfg.Redis.RetryInterval = time.Millisecond
		cfg.Redis.ConnectTimeout = time.Second

		s, err := newSessionStore(t.Context(), cfg, metrics.New())
		require.NoError(t, err)
		assert.IsType(t, &httpsession.RedisStore[auth.SessionData]{}, s.store)
		require.Len(t, s.checks, 1)
		assert.Equal(t, "redis", s.checks[0].Name)
		assert.NoError(t, s.checks[0].Fn(t.Context()))
		assert.NoError(t, s.close())
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()

		var cfg Config
		cfg.Session.Store = "etcd"
		_, err := newSessionStore(t.Context(), cfg, metrics.New())
		assert.ErrorIs(t, err, httpsession.ErrUnknownStore)
	})
}

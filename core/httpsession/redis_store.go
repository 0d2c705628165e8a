package httpsession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as JSON values whose TTL follows MaxInactiveInterval.
type RedisStore[Data any] struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
}

// WithKeyPrefix changes the key prefix (default "session:").
func WithKeyPrefix(prefix string) RedisOption {
	return func(o *redisOptions) { o.prefix = prefix }
}

// NewRedisStore returns a store backed by client.
func NewRedisStore[Data any](client redis.UniversalClient, opts ...RedisOption) *RedisStore[Data] {
	o := redisOptions{prefix: "session:"}
	for _, opt := range opts {
		opt(&o)
	}
	return &RedisStore[Data]{client: client, prefix: o.prefix}
}

func (s *RedisStore[Data]) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore[Data]) Get(ctx context.Context, id string) (*Session[Data], error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var sess Session[Data]
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.IsExpired() {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *RedisStore[Data]) Save(ctx context.Context, sess *Session[Data]) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), raw, sess.MaxInactiveInterval).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Touch rewrites the session inside a WATCH transaction with SET XX, so a
// concurrent Delete wins and the key is never recreated.
func (s *RedisStore[Data]) Touch(ctx context.Context, id string, at time.Time) error {
	key := s.key(id)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return fmt.Errorf("redis get session: %w", err)
		}

		var sess Session[Data]
		if err := json.Unmarshal(raw, &sess); err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
		if sess.IsExpired() {
			return ErrNotFound
		}
		sess.LastAccessedAt = at
		if raw, err = json.Marshal(sess); err != nil {
			return fmt.Errorf("encode session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetXX(ctx, key, raw, sess.MaxInactiveInterval)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil, errors.Is(err, ErrNotFound):
		return err
	case errors.Is(err, redis.TxFailedErr):
		// The key changed under us: either saved again (already touched) or deleted.
		if n, xerr := s.client.Exists(ctx, key).Result(); xerr == nil && n == 0 {
			return ErrNotFound
		}
		return nil
	default:
		return fmt.Errorf("redis touch session: %w", err)
	}
}

func (s *RedisStore[Data]) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts keys once their TTL runs out.
func (s *RedisStore[Data]) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}

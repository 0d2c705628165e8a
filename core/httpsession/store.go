package httpsession

import (
	"context"
	"time"
)

// Store persists sessions. Implementations must be safe for concurrent use
// and return ErrNotFound for missing or expired ids.
type Store[Data any] interface {
	Get(ctx context.Context, id string) (*Session[Data], error)
	Save(ctx context.Context, sess *Session[Data]) error
	Delete(ctx context.Context, id string) error
	// Touch sets LastAccessedAt of an existing session. It never recreates a
	// deleted one and returns ErrNotFound instead.
	Touch(ctx context.Context, id string, at time.Time) error
	// DeleteExpired removes idle sessions and returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}

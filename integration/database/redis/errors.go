package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned when REDIS_URL is blank.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")
	// ErrInvalidConnectionURL wraps redis.ParseURL failures.
	ErrInvalidConnectionURL = errors.New("invalid redis connection URL")
	// ErrNotReady means no ping succeeded within the retry budget.
	ErrNotReady = errors.New("redis is not ready")
	// ErrHealthcheckFailed is returned by the readiness probe.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)

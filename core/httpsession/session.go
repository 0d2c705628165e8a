package httpsession

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"
)

// Session is a server-side session with typed attributes.
// MaxInactiveInterval of zero means the session never times out.
type Session[Data any] struct {
	ID                  string        `json:"id"`
	Data                Data          `json:"data"`
	CreatedAt           time.Time     `json:"created_at"`
	LastAccessedAt      time.Time     `json:"last_accessed_at"`
	MaxInactiveInterval time.Duration `json:"max_inactive_interval"`

	isNew bool
}

func newSession[Data any](maxInactive time.Duration) (Session[Data], error) {
	id, err := generateID()
	if err != nil {
		return Session[Data]{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session[Data]{
		ID:                  id,
		CreatedAt:           now,
		LastAccessedAt:      now,
		MaxInactiveInterval: maxInactive,
		isNew:               true,
	}, nil
}

// IsNew reports whether the session was created while handling the current request.
func (s Session[Data]) IsNew() bool {
	return s.isNew
}

// IsExpired reports whether the session has been idle longer than MaxInactiveInterval.
func (s Session[Data]) IsExpired() bool {
	return s.expiredAt(time.Now())
}

func (s Session[Data]) expiredAt(now time.Time) bool {
	return s.MaxInactiveInterval > 0 && now.Sub(s.LastAccessedAt) > s.MaxInactiveInterval
}

// SetData replaces the session attributes.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
}

// generateID returns 32 random bytes as unpadded base64url.
func generateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

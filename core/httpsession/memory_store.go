package httpsession

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore[Data any] struct {
	mu       sync.RWMutex
	sessions map[string]Session[Data]
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore[Data any]() *MemoryStore[Data] {
	return &MemoryStore[Data]{sessions: make(map[string]Session[Data])}
}

func (s *MemoryStore[Data]) Get(_ context.Context, id string) (*Session[Data], error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || sess.IsExpired() {
		return nil, ErrNotFound
	}
	sess.isNew = false
	return &sess, nil
}

func (s *MemoryStore[Data]) Save(_ context.Context, sess *Session[Data]) error {
	s.mu.Lock()
	s.sessions[sess.ID] = *sess
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore[Data]) Touch(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.IsExpired() {
		return ErrNotFound
	}
	sess.LastAccessedAt = at
	s.sessions[id] = sess
	return nil
}

func (s *MemoryStore[Data]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore[Data]) DeleteExpired(_ context.Context) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, sess := range s.sessions {
		if sess.expiredAt(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore[Data]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

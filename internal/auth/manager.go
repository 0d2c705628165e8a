package auth

import (
	"net/http"

	"github.com/dmitrymomot/sessionlab/core/session"
	"github.com/dmitrymomot/sessionlab/internal/member"
)

// Manager keeps the member in the mySessionId token map.
type Manager struct {
	sessions *session.Manager[member.Member]
}

func NewManager(sessions *session.Manager[member.Member]) *Manager {
	return &Manager{sessions: sessions}
}

func (m *Manager) Name() string { return StrategyManager }

func (m *Manager) Login(w http.ResponseWriter, _ *http.Request, mem member.Member) error {
	m.sessions.Create(mem, session.Response(w))
	return nil
}

func (m *Manager) Current(r *http.Request) (member.Member, bool) {
	return m.sessions.Get(session.Request(r))
}

// Logout drops the server entry. The mySessionId cookie stays on the
// client and simply stops resolving.
func (m *Manager) Logout(_ http.ResponseWriter, r *http.Request) error {
	m.sessions.Expire(session.Request(r))
	return nil
}

package auth

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/sessionlab/core/httpsession"
	"github.com/dmitrymomot/sessionlab/internal/member"
)

// SessionData is the attribute set of a container session.
type SessionData struct {
	LoginMember *member.Member `json:"login_member,omitempty"`
}

// Container keeps the member in a server-side session.
type Container struct {
	sessions *httpsession.Manager[SessionData]
}

func NewContainer(sessions *httpsession.Manager[SessionData]) *Container {
	return &Container{sessions: sessions}
}

func (c *Container) Name() string { return StrategyContainer }

func (c *Container) Login(w http.ResponseWriter, r *http.Request, m member.Member) error {
	sess, err := c.sessions.GetOrCreate(r.Context(), w, r)
	if err != nil {
		return err
	}
	sess.SetData(SessionData{LoginMember: &m})
	return c.sessions.Save(r.Context(), sess)
}

func (c *Container) Current(r *http.Request) (member.Member, bool) {
	sess, err := c.sessions.Get(r.Context(), r)
	if err != nil || sess.Data.LoginMember == nil {
		return member.Member{}, false
	}
	return *sess.Data.LoginMember, true
}

// Logout invalidates the whole session.
func (c *Container) Logout(w http.ResponseWriter, r *http.Request) error {
	if err := c.sessions.Invalidate(r.Context(), w, r); err != nil && !errors.Is(err, httpsession.ErrNoSession) {
		return err
	}
	return nil
}

// Package auth remembers the logged-in member between requests.
//
// Three strategies are available and selected by name at startup:
//
//   - container: a server-side session with a SESSIONID cookie and idle timeout
//   - manager:   the mySessionId token map from core/session
//   - cookie:    a signed memberId cookie with no server state
package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/sessionlab/core/cookie"
	"github.com/dmitrymomot/sessionlab/core/httpsession"
	"github.com/dmitrymomot/sessionlab/core/session"
	"github.com/dmitrymomot/sessionlab/internal/member"
)

// Strategy names accepted by New.
const (
	StrategyContainer = "container"
	StrategyManager   = "manager"
	StrategyCookie    = "cookie"
)

var (
	ErrUnknownStrategy   = errors.New("unknown session strategy")
	ErrMissingDependency = errors.New("session strategy dependency is not configured")
)

// Strategy stores and resolves the logged-in member.
type Strategy interface {
	// Login remembers m for subsequent requests.
	Login(w http.ResponseWriter, r *http.Request, m member.Member) error
	// Current returns the member the request belongs to.
	Current(r *http.Request) (member.Member, bool)
	// Logout forgets the member.
	Logout(w http.ResponseWriter, r *http.Request) error
	Name() string
}

// Deps carries what the strategies are built from. Only the fields the
// chosen strategy needs have to be set.
type Deps struct {
	Container *httpsession.Manager[SessionData]
	Manager   *session.Manager[member.Member]
	Cookies   *cookie.Manager
	Members   *member.Repository
}

// New returns the strategy registered under name.
func New(name string, deps Deps) (Strategy, error) {
	switch name {
	case StrategyContainer:
		if deps.Container == nil {
			return nil, fmt.Errorf("%w: %s needs a session manager", ErrMissingDependency, name)
		}
		return NewContainer(deps.Container), nil
	case StrategyManager:
		if deps.Manager == nil {
			return nil, fmt.Errorf("%w: %s needs a token manager", ErrMissingDependency, name)
		}
		return NewManager(deps.Manager), nil
	case StrategyCookie:
		if deps.Cookies == nil || deps.Members == nil {
			return nil, fmt.Errorf("%w: %s needs cookies and members", ErrMissingDependency, name)
		}
		return NewCookie(deps.Cookies, deps.Members), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

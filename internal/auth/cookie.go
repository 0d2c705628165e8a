package auth

import (
	"net/http"
	"strconv"

	"github.com/dmitrymomot/sessionlab/core/cookie"
	"github.com/dmitrymomot/sessionlab/internal/member"
)

// MemberIDCookie carries the signed member id for the cookie strategy.
const MemberIDCookie = "memberId"

// Cookie stores the member id in a signed cookie and loads the member on
// every request.
type Cookie struct {
	cookies *cookie.Manager
	members *member.Repository
}

func NewCookie(cookies *cookie.Manager, members *member.Repository) *Cookie {
	return &Cookie{cookies: cookies, members: members}
}

func (c *Cookie) Name() string { return StrategyCookie }

func (c *Cookie) Login(w http.ResponseWriter, _ *http.Request, m member.Member) error {
	return c.cookies.SetSigned(w, MemberIDCookie, strconv.FormatInt(m.ID, 10))
}

func (c *Cookie) Current(r *http.Request) (member.Member, bool) {
	raw, err := c.cookies.GetSigned(r, MemberIDCookie)
	if err != nil {
		return member.Member{}, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return member.Member{}, false
	}
	m, err := c.members.FindByID(r.Context(), id)
	if err != nil {
		return member.Member{}, false
	}
	return m, true
}

func (c *Cookie) Logout(w http.ResponseWriter, _ *http.Request) error {
	c.cookies.Delete(w, MemberIDCookie)
	return nil
}

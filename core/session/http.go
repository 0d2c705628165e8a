package session

import "net/http"

type requestSource struct {
	r *http.Request
}

// Request adapts r to CookieSource. With duplicate cookies the first one wins.
func Request(r *http.Request) CookieSource {
	return requestSource{r: r}
}

func (s requestSource) Cookie(name string) (string, bool) {
	c, err := s.r.Cookie(name)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

type responseSink struct {
	w http.ResponseWriter
}

// Response adapts w to CookieSink. Cookies are written with Path=/ and
// HttpOnly, and without Max-Age or Expires, so they last for the browser session.
func Response(w http.ResponseWriter) CookieSink {
	return responseSink{w: w}
}

func (s responseSink) SetCookie(name, value string) {
	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	})
}

// Package session is a minimal server-side session store: an opaque token in
// the mySessionId cookie maps to an application value held in memory.
//
//	sessions := session.NewManager[member.Member]()
//
//	// login
//	sessions.Create(m, session.Response(w))
//
//	// any later request
//	m, ok := sessions.Get(session.Request(r))
//
//	// logout
//	sessions.Expire(session.Request(r))
//
// There is no timeout, eviction or persistence. Expire only forgets the
// token on the server; the browser keeps sending the cookie, which then
// resolves to nothing. Callers that want the cookie gone must clear it.
//
// The manager talks to requests and responses through CookieSource and
// CookieSink, so it can be driven without net/http.
package session

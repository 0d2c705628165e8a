// Package cookie manages HTTP cookies with consistent default attributes.
//
// Signed cookies keep the value readable but tamper-evident (HMAC-SHA256).
// Encrypted cookies hide the value (AES-256-GCM). Flash cookies are encrypted
// JSON messages removed on first read, used for post-redirect notices.
// Signing and encryption use separate keys derived from each secret with
// HKDF, and both bind the cookie name.
//
//	m, err := cookie.NewFromConfig(cfg)
//	_ = m.SetSigned(w, "memberId", "42")
//	id, err := m.GetSigned(r, "memberId")
//
// Configuration comes from COOKIE_* variables (see Config).
package cookie

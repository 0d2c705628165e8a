package cookie_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionlab/core/cookie"
)

const (
	secretA = "0123456789abcdef0123456789abcdef"
	secretB = "fedcba9876543210fedcba9876543210"
)

func newManager(t *testing.T, secrets ...string) *cookie.Manager {
	t.Helper()
	if len(secrets) == 0 {
		secrets = []string{secretA}
	}
	m, err := cookie.New(secrets)
	require.NoError(t, err)
	return m
}

// roundTrip copies cookies set on w into a fresh request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
}

func TestSetGetDelete(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "theme", "dark", cookie.WithMaxAge(60)))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, 60, cookies[0].MaxAge)

	v, err := m.Get(roundTrip(w), "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "theme")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

	w = httptest.NewRecorder()
	m.Delete(w, "theme")
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
}

func TestSetTooLarge(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	err := m.Set(httptest.NewRecorder(), "big", strings.Repeat("x", cookie.MaxCookieSize))

	var tooLarge cookie.ErrCookieTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "big", tooLarge.Name)
}

func TestSigned(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "memberId", "42"))

	v, err := m.GetSigned(roundTrip(w), "memberId")
	require.NoError(t, err)
	assert.Equal(t, "42", v)

	t.Run("tampered", func(t *testing.T) {
		t.Parallel()

		raw := w.Result().Cookies()[0].Value
		_, sig, _ := strings.Cut(raw, ".")
		forged := "NDM." + sig // "43"

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "memberId", Value: forged})
		_, err := m.GetSigned(r, "memberId")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "memberId", Value: "42"})
		_, err := m.GetSigned(r, "memberId")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestSignedBoundToName(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "memberId", "1"))
	require.NoError(t, m.SetEncrypted(w, "sealed", "1"))

	var signed, sealed string
	for _, c := range w.Result().Cookies() {
		switch c.Name {
		case "memberId":
			signed = c.Value
		case "sealed":
			sealed = c.Value
		}
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "adminId", Value: signed})
	r.AddCookie(&http.Cookie{Name: "other", Value: sealed})

	_, err := m.GetSigned(r, "adminId")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	_, err = m.GetEncrypted(r, "other")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
}

func TestSignedKeyIsNotRawSecret(t *testing.T) {
	t.Parallel()

	h := hmac.New(sha256.New, []byte(secretA))
	h.Write([]byte("memberId\x001"))
	forged := base64.RawURLEncoding.EncodeToString([]byte("1")) + "." + base64.RawURLEncoding.EncodeToString(h.Sum(nil))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "memberId", Value: forged})
	_, err := newManager(t).GetSigned(r, "memberId")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestKeyRotation(t *testing.T) {
	t.Parallel()

	old := newManager(t, secretA)
	w := httptest.NewRecorder()
	require.NoError(t, old.SetSigned(w, "s", "signed"))
	require.NoError(t, old.SetEncrypted(w, "e", "sealed"))
	r := roundTrip(w)

	rotated := newManager(t, secretB, secretA)
	v, err := rotated.GetSigned(r, "s")
	require.NoError(t, err)
	assert.Equal(t, "signed", v)

	v, err = rotated.GetEncrypted(r, "e")
	require.NoError(t, err)
	assert.Equal(t, "sealed", v)

	other := newManager(t, secretB)
	_, err = other.GetSigned(r, "s")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	_, err = other.GetEncrypted(r, "e")
	assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
}

func TestEncryptedHidesValue(t *testing.T) {
	t.Parallel()

	m := newManager(t)
	w := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(w, "e", "secret-value"))
	assert.NotContains(t, w.Result().Cookies()[0].Value, "secret")
}

func TestFlash(t *testing.T) {
	t.Parallel()

	type notice struct {
		Saved bool `json:"saved"`
	}

	m := newManager(t)
	w := httptest.NewRecorder()
	require.NoError(t, m.SetFlash(w, "item", notice{Saved: true}))

	r := roundTrip(w)
	w = httptest.NewRecorder()

	var got notice
	require.NoError(t, m.GetFlash(w, r, "item", &got))
	assert.True(t, got.Saved)

	deleted := w.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Equal(t, -1, deleted[0].MaxAge)

	err := m.GetFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "item", &got)
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := cookie.Config{
		Secrets:  " " + secretA + " , ," + secretB,
		Path:     "/app",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxSize:  64,
	}
	assert.Equal(t, []string{secretA, secretB}, cfg.SecretList())

	m, err := cookie.NewFromConfig(cfg)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "a", "b"))
	c := w.Result().Cookies()[0]
	assert.Equal(t, "/app", c.Path)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	var tooLarge cookie.ErrCookieTooLarge
	assert.ErrorAs(t, m.Set(httptest.NewRecorder(), "a", strings.Repeat("b", 64)), &tooLarge)

	_, err = cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}

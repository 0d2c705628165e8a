package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

const (
	// MaxCookieSize is the default Set-Cookie header limit.
	MaxCookieSize = 4096

	minSecretLength = 32
	flashPrefix     = "__flash_"
)

// Manager reads and writes plain, signed, encrypted and flash cookies.
// Secrets are tried in order when verifying or decrypting, so a new secret
// can be prepended without invalidating cookies issued with the old one.
// Signatures and ciphertexts are bound to the cookie name.
type Manager struct {
	keys     []keyPair
	defaults Options
	maxSize  int
}

// keyPair holds the signing and encryption keys derived from one secret.
type keyPair struct {
	sign []byte
	aead cipher.AEAD
}

func deriveKeys(secret string) (keyPair, error) {
	kdf := func(info string) ([]byte, error) {
		key := make([]byte, 32)
		if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
			return nil, err
		}
		return key, nil
	}

	signKey, err := kdf("cookie signing")
	if err != nil {
		return keyPair{}, err
	}
	encKey, err := kdf("cookie encryption")
	if err != nil {
		return keyPair{}, err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return keyPair{}, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return keyPair{}, err
	}
	return keyPair{sign: signKey, aead: gcm}, nil
}

// New validates secrets and returns a manager with Path=/, HttpOnly and
// SameSite=Lax defaults, overridden by opts.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make([]keyPair, 0, len(secrets))
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(s), minSecretLength)
		}
		k, err := deriveKeys(s)
		if err != nil {
			return nil, fmt.Errorf("derive keys for secret %d: %w", i, err)
		}
		keys = append(keys, k)
	}

	return &Manager{
		keys: keys,
		defaults: applyOptions(Options{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}, opts),
		maxSize: MaxCookieSize,
	}, nil
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	o := applyOptions(m.defaults, opts)

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}

	if size := len(c.String()); size > m.maxSize {
		return ErrCookieTooLarge{Name: name, Size: size, Max: m.maxSize}
	}

	http.SetCookie(w, c)
	return nil
}

// Get returns the raw value of the first cookie called name.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie on the client.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}

// SetSigned writes value in clear text with an HMAC-SHA256 signature.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Set(w, name, m.sign(name, value), opts...)
}

// GetSigned returns the value of a signed cookie after checking its signature.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(name, raw)
}

// SetEncrypted writes value sealed with AES-256-GCM.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	sealed, err := m.encrypt(name, value)
	if err != nil {
		return err
	}
	return m.Set(w, name, sealed, opts...)
}

// GetEncrypted opens a cookie written by SetEncrypted.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.decrypt(name, raw)
}

// SetFlash stores value as an encrypted one-shot message under key.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	return m.SetEncrypted(w, flashPrefix+key, string(data), WithMaxAge(0))
}

// GetFlash decodes the flash message under key into dest and deletes it.
// A missing message returns ErrCookieNotFound.
func (m *Manager) GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key

	data, err := m.GetEncrypted(r, name)
	if err != nil {
		if !errors.Is(err, ErrCookieNotFound) {
			m.Delete(w, name)
		}
		return err
	}
	m.Delete(w, name)

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("unmarshal flash: %w", err)
	}
	return nil
}

// mac covers the cookie name as well as the value, so a signed value
// cannot be replayed under another name.
func mac(key []byte, name string, value []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write(value)
	return h.Sum(nil)
}

func (m *Manager) sign(name, value string) string {
	sig := mac(m.keys[0].sign, name, []byte(value))
	return base64.RawURLEncoding.EncodeToString([]byte(value)) + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func (m *Manager) verify(name, signed string) (string, error) {
	encValue, encSig, ok := strings.Cut(signed, ".")
	if !ok {
		return "", ErrInvalidFormat
	}

	value, err := base64.RawURLEncoding.DecodeString(encValue)
	if err != nil {
		return "", ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		if hmac.Equal(sig, mac(k.sign, name, value)) {
			return string(value), nil
		}
	}
	return "", ErrInvalidSignature
}

// encrypt seals value with the cookie name as additional data.
func (m *Manager) encrypt(name, value string) (string, error) {
	gcm := m.keys[0].aead

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(gcm.Seal(nonce, nonce, []byte(value), []byte(name))), nil
}

func (m *Manager) decrypt(name, encoded string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, k := range m.keys {
		size := k.aead.NonceSize()
		if len(data) < size {
			return "", ErrInvalidFormat
		}
		nonce, ciphertext := data[:size], data[size:]
		if plain, err := k.aead.Open(nil, nonce, ciphertext, []byte(name)); err == nil {
			return string(plain), nil
		}
	}
	return "", ErrDecryptionFailed
}

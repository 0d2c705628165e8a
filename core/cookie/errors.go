package cookie

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSecret indicates the manager was built without any usable secret.
	ErrNoSecret = errors.New("no secret provided for cookie manager")

	// ErrSecretTooShort indicates a secret shorter than 32 characters.
	ErrSecretTooShort = errors.New("secret must be at least 32 characters long")

	// ErrInvalidSignature indicates a signed value failed verification with every secret.
	ErrInvalidSignature = errors.New("cookie signature verification failed")

	// ErrDecryptionFailed indicates an encrypted value could not be opened with any secret.
	ErrDecryptionFailed = errors.New("failed to decrypt cookie value")

	// ErrCookieNotFound indicates the request carries no cookie with that name.
	ErrCookieNotFound = errors.New("cookie not found in request")

	// ErrInvalidFormat indicates a value that is not in the expected encoding.
	ErrInvalidFormat = errors.New("invalid cookie format")
)

// ErrCookieTooLarge reports a Set-Cookie header above the configured limit.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("cookie %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}

// Package member holds registered members and their in-memory repository.
package member

import "errors"

var (
	ErrNotFound         = errors.New("member not found")
	ErrDuplicateLoginID = errors.New("login id already taken")
)

// Member is a registered user of the admin UI.
type Member struct {
	ID           int64  `json:"id"`
	LoginID      string `json:"login_id"`
	Name         string `json:"name"`
	PasswordHash []byte `json:"-"`
}

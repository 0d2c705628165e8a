package login_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/sessionlab/internal/login"
	"github.com/dmitrymomot/sessionlab/internal/member"
)

func newService(t *testing.T) (*login.Service, *member.Repository) {
	t.Helper()
	repo := member.NewRepository()
	return login.NewService(repo, login.WithCost(bcrypt.MinCost)), repo
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newService(t)

	m, err := svc.Register(ctx, "test", "tester", "test!")
	require.NoError(t, err)
	assert.Equal(t, "test", m.LoginID)
	assert.Equal(t, "tester", m.Name)
	assert.NotEqual(t, []byte("test!"), m.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(m.PasswordHash, []byte("test!")))

	stored, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, stored)

	_, err = svc.Register(ctx, "test", "again", "pw")
	assert.ErrorIs(t, err, member.ErrDuplicateLoginID)

	_, err = svc.Register(ctx, "long", "long", strings.Repeat("x", login.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, login.ErrPasswordTooLong)
	_, err = repo.FindByLoginID(ctx, "long")
	assert.ErrorIs(t, err, member.ErrNotFound)

	_, err = svc.Register(ctx, "exact", "exact", strings.Repeat("x", login.MaxPasswordBytes))
	assert.NoError(t, err)
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newService(t)

	registered, err := svc.Register(ctx, "test", "tester", "test!")
	require.NoError(t, err)

	m, err := svc.Login(ctx, "test", "test!")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, m.ID)

	_, err = svc.Login(ctx, "test", "wrong")
	assert.ErrorIs(t, err, login.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "test!")
	assert.ErrorIs(t, err, login.ErrInvalidCredentials)
	assert.Equal(t, "login id or password does not match", err.Error())
}

// Package login checks member credentials and registers new members.
package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/sessionlab/core/logger"
	"github.com/dmitrymomot/sessionlab/internal/member"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var (
	// ErrInvalidCredentials covers both an unknown login id and a wrong password.
	ErrInvalidCredentials = errors.New("login id or password does not match")
	// ErrPasswordTooLong is returned by Register for passwords over MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password is too long")
)

type Service struct {
	members *member.Repository
	cost    int
	log     *slog.Logger
}

type Option func(*Service)

// WithCost sets the bcrypt cost used by Register.
func WithCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(members *member.Repository, opts ...Option) *Service {
	s := &Service{
		members: members,
		cost:    bcrypt.DefaultCost,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("login"))
	return s
}

// Login returns the member whose login id and password match.
func (s *Service) Login(ctx context.Context, loginID, password string) (member.Member, error) {
	m, err := s.members.FindByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			s.log.InfoContext(ctx, "login failed", logger.LoginID(loginID), logger.Result("unknown_member"))
			return member.Member{}, ErrInvalidCredentials
		}
		return member.Member{}, err
	}

	if err := bcrypt.CompareHashAndPassword(m.PasswordHash, []byte(password)); err != nil {
		s.log.InfoContext(ctx, "login failed", logger.LoginID(loginID), logger.Result("bad_password"))
		return member.Member{}, ErrInvalidCredentials
	}

	s.log.InfoContext(ctx, "login succeeded", logger.LoginID(loginID), logger.MemberID(m.ID))
	return m, nil
}

// Register hashes password and stores a new member.
func (s *Service) Register(ctx context.Context, loginID, name, password string) (member.Member, error) {
	if len(password) > MaxPasswordBytes {
		return member.Member{}, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return member.Member{}, ErrPasswordTooLong
		}
		return member.Member{}, fmt.Errorf("hash password: %w", err)
	}

	m, err := s.members.Save(ctx, member.Member{LoginID: loginID, Name: name, PasswordHash: hash})
	if err != nil {
		return member.Member{}, err
	}

	s.log.InfoContext(ctx, "member registered", logger.LoginID(loginID), logger.MemberID(m.ID))
	return m, nil
}

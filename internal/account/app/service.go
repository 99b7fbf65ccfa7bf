package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dimasqi/storefront/internal/account/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")
	ErrNotFound     = errors.New("user not found")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately not saying which.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrSessionNotFound = errors.New("session not found")
)

type Service struct {
	users    UserRepo
	sessions SessionStore
}

func NewService(users UserRepo, sessions SessionStore) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
	}
}

func (s *Service) Signup(ctx context.Context, email, username, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if !strings.Contains(email, "@") || username == "" || len(password) < 8 {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	return s.users.Create(ctx, domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	})
}

// Login verifies the password and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, u.ID)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, u, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// Authenticate resolves a session token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.User, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return domain.User{}, err
	}
	return s.users.GetByID(ctx, userID)
}

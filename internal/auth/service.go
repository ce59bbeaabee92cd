// Package auth registers users, verifies credentials and issues bearer
// tokens.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/logger"
	"github.com/naitik09090/backend-games/internal/validation"
)

const (
	msgRequired     = "Username and password are required"
	msgTaken        = "Username already exists"
	msgInvalidLogin = "Invalid username or password"
)

// Credentials is the register and login payload.
type Credentials struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// UserInfo is the public part of a user.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Session is a successful login.
type Session struct {
	Token     string    `json:"token"`
	User      UserInfo  `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Service struct {
	users  domain.UserStore
	hasher *Hasher
	tokens *TokenManager
	logger logger.Logger
}

func NewService(users domain.UserStore, hasher *Hasher, tokens *TokenManager, log logger.Logger) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens, logger: log}
}

// Tokens exposes the manager so the HTTP layer can verify bearer tokens.
func (s *Service) Tokens() *TokenManager { return s.tokens }

// Register creates a user. The username is stored trimmed.
func (s *Service) Register(ctx context.Context, in Credentials) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, &domain.ValidationError{Message: msgRequired}
	}
	if err := validation.Struct(Credentials{Username: username, Password: in.Password}); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, domain.Invalid("password", "must be at most 72 bytes")
		}
		return nil, &domain.StoreError{Op: "hash password", Err: err}
	}

	u := &domain.User{Username: username, PasswordHash: hash}
	if err := s.users.Insert(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, &domain.AuthError{Message: msgTaken}
		}
		return nil, &domain.StoreError{Op: "insert user", Err: err}
	}

	s.logger.Info("user registered", logger.String("user_id", u.ID), logger.String("username", u.Username))
	return u, nil
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, in Credentials) (*Session, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, &domain.ValidationError{Message: msgRequired}
	}

	u, err := s.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.hasher.CompareDummy(in.Password)
		return nil, &domain.AuthError{Message: msgInvalidLogin}
	case err != nil:
		return nil, &domain.StoreError{Op: "get user", Err: err}
	}

	if !s.hasher.Compare(u.PasswordHash, in.Password) {
		s.logger.Debug("login rejected", logger.String("username", username))
		return nil, &domain.AuthError{Message: msgInvalidLogin}
	}

	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		User:      UserInfo{ID: u.ID, Username: u.Username},
		ExpiresAt: exp,
	}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lamsashop/lamsa/internal/auth"
	"github.com/lamsashop/lamsa/internal/domain"
)

// SessionTTL is how long a login session stays valid.
const SessionTTL = 30 * 24 * time.Hour

// AccountService provides registration, login and session resolution.
type AccountService interface {
	Register(ctx context.Context, name, phone, password string) (*domain.User, error)
	Login(ctx context.Context, phone, password string) (*domain.User, *domain.Session, error)
	Logout(ctx context.Context, token string) error

	// Resolve maps a session token to its user, or ErrSessionNotFound for
	// missing/expired tokens.
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

type accountService struct {
	users domain.UserStore
}

// NewAccountService creates an AccountService instance.
func NewAccountService(users domain.UserStore) AccountService {
	return &accountService{users: users}
}

// Register creates a new customer account.
func (s *accountService) Register(ctx context.Context, name, phone, password string) (*domain.User, error) {
	if name == "" || phone == "" {
		return nil, domain.Invalid("account.register", "name and phone are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.Invalid("account.register", err.Error())
		}
		return nil, domain.Internal(err, "account.register", "failed to hash password")
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and opens a session.
func (s *accountService) Login(ctx context.Context, phone, password string) (*domain.User, *domain.Session, error) {
	user, err := s.users.GetUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := s.users.CreateSession(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return user, session, nil
}

// Logout ends a session. Unknown tokens are a no-op.
func (s *accountService) Logout(ctx context.Context, token string) error {
	if err := s.users.DeleteSession(ctx, token); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Resolve maps a session token to its user.
func (s *accountService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.users.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired() {
		return nil, domain.ErrSessionNotFound
	}

	return s.users.GetUser(ctx, session.UserID)
}

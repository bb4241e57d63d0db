package domain

import (
	"context"
	"time"
)

// User/session domain errors.
var (
	ErrUserNotFound       = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrSessionNotFound    = &Error{Code: ENOTFOUND, Message: "Session not found"}
	ErrDuplicatePhone     = &Error{Code: ECONFLICT, Message: "An account with this phone number already exists"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid phone number or password"}
)

// User is a storefront account. Accounts are keyed by phone number, the
// identifier customers actually have; email is optional.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is an opaque login token with a fixed lifetime.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its lifetime.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// UserStore persists accounts and login sessions.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByPhone(ctx context.Context, phone string) (*User, error)

	CreateSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, token string) (*Session, error)
	DeleteSession(ctx context.Context, token string) error

	// DeleteExpiredSessions removes sessions past their lifetime and
	// returns how many were removed. Called by the cleanup worker.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

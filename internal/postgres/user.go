package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lamsashop/lamsa/internal/domain"
)

// UserStore implements domain.UserStore on PostgreSQL.
type UserStore struct {
	db *pgxpool.Pool
}

var _ domain.UserStore = (*UserStore)(nil)

// NewUserStore creates a PostgreSQL-backed user store.
func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, name, phone, email, password_hash, is_admin, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new account. Phone numbers are unique.
func (s *UserStore) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, name, phone, email, password_hash, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Phone, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicatePhone
		}
		return domain.Internal(err, "user.create", "failed to create user")
	}
	return nil
}

// GetUser retrieves an account by ID.
func (s *UserStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err, "user.get", "failed to get user")
	}
	return u, nil
}

// GetUserByPhone retrieves an account by phone number.
func (s *UserStore) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.Internal(err, "user.get_by_phone", "failed to get user")
	}
	return u, nil
}

// CreateSession inserts a login session.
func (s *UserStore) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		session.Token, session.UserID, session.ExpiresAt,
	)
	if err != nil {
		return domain.Internal(err, "session.create", "failed to create session")
	}
	return nil
}

// GetSession retrieves a session by token.
func (s *UserStore) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := s.db.QueryRow(ctx,
		`SELECT token, user_id, expires_at FROM sessions WHERE token = $1`, token,
	).Scan(&session.Token, &session.UserID, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.Internal(err, "session.get", "failed to get session")
	}
	return &session, nil
}

// DeleteSession removes a session by token.
func (s *UserStore) DeleteSession(ctx context.Context, token string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return domain.Internal(err, "session.delete", "failed to delete session")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their lifetime.
func (s *UserStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, domain.Internal(err, "session.delete_expired", "failed to delete expired sessions")
	}
	return tag.RowsAffected(), nil
}

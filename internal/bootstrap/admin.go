// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lamsashop/lamsa/internal"
	"github.com/lamsashop/lamsa/internal/auth"
	"github.com/lamsashop/lamsa/internal/domain"
)

// EnsureAdmin creates the initial admin account if it does not exist.
// Idempotent: safe to call on every startup. When the admin phone or
// password is unset it logs a warning and skips, which allows running
// a dev instance without an admin.
func EnsureAdmin(ctx context.Context, users domain.UserStore, cfg internal.AdminConfig, logger *slog.Logger) error {
	if cfg.Phone == "" || cfg.Password == "" {
		logger.Warn("skipping admin creation, LAMSA_ADMIN_PHONE or LAMSA_ADMIN_PASSWORD not set")
		return nil
	}

	existing, err := users.GetUserByPhone(ctx, cfg.Phone)
	if err == nil {
		if !existing.IsAdmin {
			return fmt.Errorf("account %s exists but is not an admin", cfg.Phone)
		}
		logger.Debug("admin account already exists", "user_id", existing.ID)
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("looking up admin account: %w", err)
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = "Admin"
	}
	admin := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Phone:        cfg.Phone,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := users.CreateUser(ctx, admin); err != nil {
		// A concurrent instance may have created it first.
		if errors.Is(err, domain.ErrDuplicatePhone) {
			return nil
		}
		return fmt.Errorf("creating admin account: %w", err)
	}

	logger.Info("created initial admin account", "user_id", admin.ID)
	return nil
}

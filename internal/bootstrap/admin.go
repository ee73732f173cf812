// Package bootstrap seeds data the service needs before it can accept traffic.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/ports"
	"github.com/LSiluvaiSiprin/ReCon/internal/password"
)

type AdminConfig struct {
	Email    string
	Password string
	Username string
}

// EnsureAdmin creates the default admin account when no admin exists yet.
// Losing a concurrent insert race to another instance counts as success.
func EnsureAdmin(ctx context.Context, cfg AdminConfig, users ports.UserRepository, log zerolog.Logger) error {
	admins, err := users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("bootstrap count admins: %w", err)
	}
	if admins > 0 {
		return nil
	}

	email := domain.NormalizeEmail(cfg.Email)
	if email == "" || strings.TrimSpace(cfg.Password) == "" {
		return fmt.Errorf("admin bootstrap missing required config")
	}
	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		username = "Admin"
	}

	hashed, err := password.Hash(cfg.Password)
	if err != nil {
		return fmt.Errorf("bootstrap hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		existing, lookupErr := users.FindByEmail(ctx, email)
		if lookupErr == nil && existing.IsAdmin() {
			return nil
		}
		return fmt.Errorf("bootstrap create admin: %s is registered to a non-admin account", email)
	}
	if err != nil {
		return fmt.Errorf("bootstrap create admin: %w", err)
	}

	log.Info().
		Str("email", created.Email).
		Str("user_id", created.ID).
		Msg("bootstrap admin user created")
	return nil
}

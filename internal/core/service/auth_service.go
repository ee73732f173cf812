package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/ports"
	"github.com/LSiluvaiSiprin/ReCon/internal/password"
)

var validate = validator.New()

// AuthService implements signup, login and logout.
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.TokenIssuer
	revoker ports.TokenRevoker
	stats   ports.StatsCache
	logger  zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, revoker ports.TokenRevoker, stats ports.StatsCache, logger zerolog.Logger) *AuthService {
	if stats == nil {
		stats = noopStatsCache{}
	}
	return &AuthService{users: users, tokens: tokens, revoker: revoker, stats: stats, logger: logger}
}

// Register creates a regular, active user account.
func (s *AuthService) Register(ctx context.Context, username, email, plain string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = domain.NormalizeEmail(email)

	if username == "" {
		return nil, domain.ValidationErrorf("username is required")
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, domain.ValidationErrorf("email must be a valid email")
	}
	if len(plain) < password.MinLength {
		return nil, domain.ValidationErrorf("password must be at least %d characters", password.MinLength)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register lookup: %w", err)
	}

	hash, err := password.Hash(plain)
	if errors.Is(err, password.ErrTooLong) {
		return nil, domain.ValidationErrorf("password must be at most %d bytes", password.MaxLength)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("register create: %w", err)
	}

	if err := s.stats.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login checks credentials and returns a signed session. The active flag is
// checked before the password.
func (s *AuthService) Login(ctx context.Context, email, plain string) (*ports.Session, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || plain == "" {
		return nil, nil, domain.ValidationErrorf("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, domain.ErrAccountDeactivated
	}

	ok, err := password.Verify(plain, user.PasswordHash)
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		return nil, nil, domain.ErrInvalidCredentials
	}

	tkn, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")
	return &ports.Session{Token: tkn, ExpiresAt: expiresAt}, user, nil
}

// Logout revokes tokenID. Tokens that have already expired need no record.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, tokenID, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

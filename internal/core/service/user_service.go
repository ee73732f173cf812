package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/ports"
)

type UserService struct {
	repo       ports.UserRepository
	sessions   ports.SessionRevoker
	sessionTTL time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

// NewUserService builds the service. sessions may be nil, in which case
// deactivated users keep their tokens until expiry. sessionTTL should match
// the token lifetime.
func NewUserService(repo ports.UserRepository, sessions ports.SessionRevoker, sessionTTL time.Duration, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, sessions: sessions, sessionTTL: sessionTTL, logger: logger, now: time.Now}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile changes the username and profile only.
func (s *UserService) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	if update.Username != nil {
		name := strings.TrimSpace(*update.Username)
		if name == "" {
			return nil, domain.ValidationErrorf("username must not be empty")
		}
		update.Username = &name
	}
	if update.Username == nil && update.Profile == nil {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.UpdateProfile(ctx, id, update)
}

// ToggleActive flips the target's active flag. An admin may not deactivate
// their own account.
func (s *UserService) ToggleActive(ctx context.Context, actorID, id string) (*domain.User, error) {
	if actorID == id {
		target, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if target.IsActive {
			return nil, domain.ErrSelfLockout
		}
	}

	user, err := s.repo.ToggleActive(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle user %s: %w", id, err)
	}

	if !user.IsActive && s.sessions != nil {
		if err := s.sessions.RevokeUser(ctx, user.ID, s.now(), s.sessionTTL); err != nil {
			s.logger.Error().Err(err).Str("user_id", user.ID).Msg("revoke sessions of deactivated user failed")
		}
	}

	s.logger.Info().
		Str("actor_id", actorID).
		Str("user_id", user.ID).
		Bool("is_active", user.IsActive).
		Msg("user status toggled")
	return user, nil
}

// ListClients lists role=user accounts newest first.
func (s *UserService) ListClients(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	filter.Role = domain.RoleUser
	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.List(ctx, filter)
}

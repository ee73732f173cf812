package ports

import (
	"context"
	"time"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	// ToggleActive flips the account state of id on behalf of actorID.
	ToggleActive(ctx context.Context, actorID, id string) (*domain.User, error)
	ListClients(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error)
}

// SessionRevoker ends every session issued to a user up to cutoff.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID string, cutoff time.Time, ttl time.Duration) error
}

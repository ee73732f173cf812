package ports

import (
	"context"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

// UserRepository defines persistence for the identity store.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	// ToggleActive flips is_active in a single atomic update and returns the result.
	ToggleActive(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

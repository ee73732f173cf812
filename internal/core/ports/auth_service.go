package ports

import (
	"context"
	"time"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

// Session is the signed token handed out on a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, *domain.User, error)
	// Logout revokes the token identified by tokenID until it would have expired anyway.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (token string, expiresAt time.Time, err error)
}

// TokenRevoker records revoked token ids for the remainder of their lifetime.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

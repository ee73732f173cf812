package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records revoked session tokens until they expire.
//
// Key formats:
//
//	recon:revoked:<jti>           single token (logout)
//	recon:revoked-user:<user id>  unix cutoff; every token of that user
//	                              issued at or before it is revoked
type TokenDenylist struct {
	client redis.Cmdable
}

func NewTokenDenylist(client redis.Cmdable) *TokenDenylist {
	return &TokenDenylist{client: client}
}

func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := d.client.Set(ctx, d.tokenKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// RevokeUser revokes every token issued to userID up to cutoff. ttl should be
// the session lifetime, after which no such token can still be valid.
func (d *TokenDenylist) RevokeUser(ctx context.Context, userID string, cutoff time.Time, ttl time.Duration) error {
	value := strconv.FormatInt(cutoff.Unix(), 10)
	if err := d.client.Set(ctx, d.userKey(userID), value, ttl).Err(); err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}
	return nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID, userID string, issuedAt time.Time) (bool, error) {
	vals, err := d.client.MGet(ctx, d.tokenKey(tokenID), d.userKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	if len(vals) != 2 {
		return false, fmt.Errorf("revocation check: unexpected reply length %d", len(vals))
	}
	if vals[0] != nil {
		return true, nil
	}
	raw, ok := vals[1].(string)
	if !ok {
		return false, nil
	}
	cutoff, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("revocation cutoff: %w", err)
	}
	return issuedAt.Unix() <= cutoff, nil
}

func (d *TokenDenylist) tokenKey(tokenID string) string {
	return keyPrefix + "revoked:" + tokenID
}

func (d *TokenDenylist) userKey(userID string) string {
	return keyPrefix + "revoked-user:" + userID
}

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LSiluvaiSiprin/ReCon/internal/infrastructure/token"
)

// Context keys set by Auth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextEmail  = "email"
	ContextClaims = "claims"
)

type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// RevocationChecker reports whether a token was revoked, either by its own id
// or through a cutoff recorded for its user.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID, userID string, issuedAt time.Time) (bool, error)
}

// Auth validates the bearer token, rejects revoked ones and injects the
// claims into the echo context. A nil checker skips the revocation lookup.
func Auth(parser TokenParser, revocations RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := parser.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if revocations != nil {
				var issuedAt time.Time
				if claims.IssuedAt != nil {
					issuedAt = claims.IssuedAt.Time
				}
				revoked, err := revocations.IsRevoked(c.Request().Context(), claims.ID, claims.Subject, issuedAt)
				if err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable").SetInternal(err)
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set(ContextUserID, claims.Subject)
			c.Set(ContextRole, claims.Role)
			c.Set(ContextEmail, claims.Email)
			c.Set(ContextClaims, claims)

			return next(c)
		}
	}
}

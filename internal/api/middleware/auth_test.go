package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/infrastructure/token"
)

type stubRevocations struct {
	revoked map[string]bool
	// users maps a user id to its revocation cutoff.
	users    map[string]time.Time
	err      error
	issuedAt time.Time
}

func (s *stubRevocations) IsRevoked(_ context.Context, id, userID string, issuedAt time.Time) (bool, error) {
	s.issuedAt = issuedAt
	if s.err != nil {
		return false, s.err
	}
	if s.revoked[id] {
		return true, nil
	}
	cutoff, ok := s.users[userID]
	return ok && !issuedAt.After(cutoff), nil
}

func issue(t *testing.T, m *token.Manager, user *domain.User) (string, *token.Claims) {
	t.Helper()
	raw, _, err := m.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	return raw, claims
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	m := token.NewManager("secret", time.Hour)
	raw, _ := issue(t, m, &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleAdmin})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(m, &stubRevocations{})(func(c echo.Context) error {
		called = true
		if c.Get(ContextUserID) != "u1" {
			t.Fatalf("user id not set")
		}
		if c.Get(ContextRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		if c.Get(ContextEmail) != "alice@example.com" {
			t.Fatalf("email not set")
		}
		if _, ok := c.Get(ContextClaims).(*token.Claims); !ok {
			t.Fatalf("claims not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	m := token.NewManager("secret", time.Hour)
	otherRaw, _ := issue(t, token.NewManager("other-secret", time.Hour), &domain.User{ID: "u1", Role: domain.RoleUser})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"garbage token", "Bearer not-a-token"},
		{"foreign signature", "Bearer " + otherRaw},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, called := runAuth(t, Auth(m, nil), tc.header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	m := token.NewManager("secret", time.Hour)
	raw, claims := issue(t, m, &domain.User{ID: "u1", Role: domain.RoleUser})

	rec, called := runAuth(t, Auth(m, &stubRevocations{revoked: map[string]bool{claims.ID: true}}), "Bearer "+raw)
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_DeactivatedUserToken(t *testing.T) {
	m := token.NewManager("secret", time.Hour)
	raw, claims := issue(t, m, &domain.User{ID: "u1", Role: domain.RoleUser})

	revocations := &stubRevocations{users: map[string]time.Time{"u1": time.Now().Add(time.Second)}}
	rec, called := runAuth(t, Auth(m, revocations), "Bearer "+raw)
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !revocations.issuedAt.Equal(claims.IssuedAt.Time) {
		t.Fatalf("expected issued-at %v passed to checker, got %v", claims.IssuedAt.Time, revocations.issuedAt)
	}

	// Another user's cutoff does not affect this token.
	rec, called = runAuth(t, Auth(m, &stubRevocations{users: map[string]time.Time{"u2": time.Now().Add(time.Second)}}), "Bearer "+raw)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RevocationStoreDown(t *testing.T) {
	m := token.NewManager("secret", time.Hour)
	raw, _ := issue(t, m, &domain.User{ID: "u1", Role: domain.RoleUser})

	rec, called := runAuth(t, Auth(m, &stubRevocations{err: errors.New("redis down")}), "Bearer "+raw)
	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LSiluvaiSiprin/ReCon/internal/api/middleware"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.Session, *domain.User, error)
	logoutFn   func(ctx context.Context, tokenID string, expiresAt time.Time) error
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.Session, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.logoutFn(ctx, tokenID, expiresAt)
}

type stubProjectService struct {
	createFn       func(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error)
	getFn          func(ctx context.Context, id string) (*domain.Project, error)
	listAllFn      func(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error)
	listByClientFn func(ctx context.Context, clientID string, filter domain.ProjectFilter) ([]*domain.Project, error)
	updateStatusFn func(ctx context.Context, in ports.UpdateStatusInput) (*domain.Project, error)
	deleteFn       func(ctx context.Context, id string) error
	statsFn        func(ctx context.Context) (*domain.Stats, error)
}

func (s *stubProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, in)
}

func (s *stubProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.getFn(ctx, id)
}

func (s *stubProjectService) ListAll(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
	return s.listAllFn(ctx, filter)
}

func (s *stubProjectService) ListByClient(ctx context.Context, clientID string, filter domain.ProjectFilter) ([]*domain.Project, error) {
	return s.listByClientFn(ctx, clientID, filter)
}

func (s *stubProjectService) UpdateStatus(ctx context.Context, in ports.UpdateStatusInput) (*domain.Project, error) {
	return s.updateStatusFn(ctx, in)
}

func (s *stubProjectService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubProjectService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.statsFn(ctx)
}

type stubUserService struct {
	getFn         func(ctx context.Context, id string) (*domain.User, error)
	updateFn      func(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
	toggleFn      func(ctx context.Context, actorID, id string) (*domain.User, error)
	listClientsFn func(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	return s.updateFn(ctx, id, update)
}

func (s *stubUserService) ToggleActive(ctx context.Context, actorID, id string) (*domain.User, error) {
	return s.toggleFn(ctx, actorID, id)
}

func (s *stubUserService) ListClients(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	return s.listClientsFn(ctx, filter)
}

// newTestContext builds an echo.Context with the validator installed and a
// JSON body when body is non-empty.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, userID, role string) {
	c.Set(middleware.ContextUserID, userID)
	c.Set(middleware.ContextRole, role)
}

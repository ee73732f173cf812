package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LSiluvaiSiprin/ReCon/internal/api/metrics"
	"github.com/LSiluvaiSiprin/ReCon/internal/api/middleware"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/ports"
	"github.com/LSiluvaiSiprin/ReCon/internal/infrastructure/token"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type signupResponse struct {
	Msg  string     `json:"msg"`
	User signupUser `json:"user"`
}

type loginUser struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	Username string          `json:"username"`
	Role     string          `json:"role"`
	Profile  *domain.Profile `json:"profile,omitempty"`
}

type loginResponse struct {
	Msg       string    `json:"msg"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      loginUser `json:"user"`
}

// Signup creates a new client account.
//
// @Summary      Register a new client account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return badRequest(c, "Email already registered")
		case errors.Is(err, domain.ErrValidation):
			return badRequest(c, err.Error())
		}
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusCreated, signupResponse{
		Msg:  "User registered successfully",
		User: signupUser{ID: user.ID, Email: user.Email},
	})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	session, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		result, msg := loginFailure(err)
		metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
		if msg == "" {
			return err
		}
		return badRequest(c, msg)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Msg:       "Login successful",
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User: loginUser{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
			Role:     user.Role,
			Profile:  user.Profile,
		},
	})
}

// loginFailure maps a login error to its metric label and client message.
// An empty message means the error is unexpected.
func loginFailure(err error) (result, msg string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found", "User not found"
	case errors.Is(err, domain.ErrAccountDeactivated):
		return "deactivated", "Account is deactivated. Please contact admin."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials", "Invalid password"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_request", "Email and password are required"
	default:
		return "error", ""
	}
}

// Logout revokes the presented token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := c.Get(middleware.ContextClaims).(*token.Claims)
	if !ok || claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := h.authService.Logout(c.Request().Context(), claims.ID, expiresAt); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Msg: "Logged out successfully"})
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/LSiluvaiSiprin/ReCon/internal/api/metrics"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/ports"
)

// UserHandler handles HTTP requests for account management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ListAll handles GET /api/users/all.
//
// @Summary      List client accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Case-insensitive match on username or email"
// @Param        active  query     bool    false  "Filter by active flag"
// @Success      200     {array}   domain.User
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/users/all [get]
func (h *UserHandler) ListAll(c echo.Context) error {
	filter := domain.UserFilter{Search: c.QueryParam("search")}
	if raw := strings.TrimSpace(c.QueryParam("active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(c, "active must be true or false")
		}
		filter.Active = &active
	}

	users, err := h.service.ListClients(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /api/users/:id.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Profile fields"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), c.Param("id"), req.toUpdate())
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return badRequest(c, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, userEnvelope{Msg: "Profile updated successfully", User: user})
}

// ToggleStatus handles PUT /api/users/:id/toggle-status.
//
// @Summary      Activate or deactivate an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  toggleResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/users/{id}/toggle-status [put]
func (h *UserHandler) ToggleStatus(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.ToggleActive(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return err
	}

	state := "deactivated"
	if user.IsActive {
		state = "activated"
	}
	metrics.UserStatusTogglesTotal.WithLabelValues(state).Inc()

	return c.JSON(http.StatusOK, toggleResponse{
		Msg:  "User " + state + " successfully",
		User: toggleUser{ID: user.ID, Email: user.Email, IsActive: user.IsActive},
	})
}

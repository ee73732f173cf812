package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LSiluvaiSiprin/ReCon/internal/api/middleware"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

// ctxIdentity extracts the caller injected by the Auth middleware. A missing
// user id or role means the middleware did not run.
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.ContextUserID).(string)
	role, _ = c.Get(middleware.ContextRole).(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// canAccess reports whether the caller may act on resources owned by ownerID.
func canAccess(userID, role, ownerID string) bool {
	return role == domain.RoleAdmin || userID == ownerID
}

type errorResponse struct {
	Msg string `json:"msg"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Msg: msg})
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Msg string `json:"msg"`
}

// RBAC enforces role-based access control.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, errorResponse{Msg: "forbidden"})
			}
			return next(c)
		}
	}
}

// SelfOrRole lets a request through when the path parameter param names the
// caller, or when the caller holds one of roles.
func SelfOrRole(param string, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(ContextUserID).(string)
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; ok {
				return next(c)
			}
			if userID != "" && c.Param(param) == userID {
				return next(c)
			}
			return c.JSON(http.StatusForbidden, errorResponse{Msg: "forbidden"})
		}
	}
}

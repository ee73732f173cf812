package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.ValidationErrorf("title is required"), http.StatusBadRequest, "validation failed: title is required"},
		{"user not found", fmt.Errorf("get: %w", domain.ErrUserNotFound), http.StatusNotFound, "User not found"},
		{"project not found", domain.ErrProjectNotFound, http.StatusNotFound, "Project not found"},
		{"self lockout", domain.ErrSelfLockout, http.StatusConflict, "You cannot deactivate your own account"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized, "invalid token"},
		{"unexpected", errors.New("mongo exploded"), http.StatusInternalServerError, "Server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["msg"] != tc.wantMsg {
				t.Fatalf("expected msg %q, got %q", tc.wantMsg, body["msg"])
			}
		})
	}
}

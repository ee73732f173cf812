package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/ports"
)

// AdminHandler serves the admin data export.
type AdminHandler struct {
	projects ports.ProjectService
	users    ports.UserService
}

func NewAdminHandler(projects ports.ProjectService, users ports.UserService) *AdminHandler {
	return &AdminHandler{projects: projects, users: users}
}

type exportResponse struct {
	Projects   []*domain.Project `json:"projects"`
	Users      []*domain.User    `json:"users"`
	Stats      *domain.Stats     `json:"stats"`
	ExportDate time.Time         `json:"exportDate"`
}

// Export handles GET /api/admin/export.
//
// @Summary      Export projects, clients and stats
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  exportResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/export [get]
func (h *AdminHandler) Export(c echo.Context) error {
	var resp exportResponse
	g, ctx := errgroup.WithContext(c.Request().Context())

	g.Go(func() error {
		var err error
		resp.Projects, err = h.projects.ListAll(ctx, domain.ProjectFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		resp.Users, err = h.users.ListClients(ctx, domain.UserFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		resp.Stats, err = h.projects.Stats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	resp.ExportDate = time.Now().UTC()
	return c.JSON(http.StatusOK, resp)
}

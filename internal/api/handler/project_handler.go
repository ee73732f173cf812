package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/LSiluvaiSiprin/ReCon/internal/api/metrics"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /api/projects/create. Clients may only create projects
// for themselves; an omitted clientId means the caller.
//
// @Summary      Submit a project request
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  projectEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/projects/create [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	clientID := req.ClientID
	if clientID == "" {
		clientID = userID
	}
	if !canAccess(userID, role, clientID) {
		return c.JSON(http.StatusForbidden, errorResponse{Msg: "cannot create projects for another client"})
	}

	input, err := toCreateProjectInput(req, clientID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	project, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return badRequest(c, err.Error())
		}
		return err
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(project.Service).Inc()
	return c.JSON(http.StatusCreated, projectEnvelope{Msg: "Project created successfully", Project: project})
}

// ListAll handles GET /api/projects/all.
//
// @Summary      List every project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        status   query     string  false  "Filter by status"
// @Param        service  query     string  false  "Filter by service"
// @Success      200      {array}   domain.Project
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /api/projects/all [get]
func (h *ProjectHandler) ListAll(c echo.Context) error {
	projects, err := h.service.ListAll(c.Request().Context(), projectFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// ListByClient handles GET /api/projects/user/:userId.
//
// @Summary      List a client's projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true   "Client user id"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {array}   domain.Project
// @Failure      403     {object}  errorResponse
// @Router       /api/projects/user/{userId} [get]
func (h *ProjectHandler) ListByClient(c echo.Context) error {
	projects, err := h.service.ListByClient(c.Request().Context(), c.Param("userId"), projectFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get handles GET /api/projects/:id for the owner or an admin.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	project, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !canAccess(userID, role, project.ClientID) {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, project)
}

// UpdateStatus handles PUT /api/projects/:id/status.
//
// @Summary      Update project status and progress
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Project id"
// @Param        body  body      updateStatusRequest  true  "Status update"
// @Success      200   {object}  projectEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/projects/{id}/status [put]
func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	project, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		ID:       c.Param("id"),
		Status:   req.Status,
		Progress: req.Progress,
		Note:     req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.ProjectStatusUpdatesTotal.WithLabelValues(string(project.Status)).Inc()
	return c.JSON(http.StatusOK, projectEnvelope{Msg: "Project updated successfully", Project: project})
}

// Delete handles DELETE /api/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ProjectsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Msg: "Project deleted successfully"})
}

// Stats handles GET /api/projects/stats.
//
// @Summary      Dashboard counts
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Stats
// @Failure      403  {object}  errorResponse
// @Router       /api/projects/stats [get]
func (h *ProjectHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

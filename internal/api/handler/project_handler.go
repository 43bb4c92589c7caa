package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i2i/project-management/internal/api/metrics"
	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project lifecycle and
// membership.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) GetByID(c echo.Context) error {
	project, err := h.service.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) GetAll(c echo.Context) error {
	projects, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Message: "project deleted successfully"})
}

// AddMember adds a user to the project's member set. Duplicates are
// rejected with 400.
func (h *ProjectHandler) AddMember(c echo.Context) error {
	project, err := h.service.AddMember(c.Request().Context(), c.Param("projectId"), c.Param("userId"))
	if err != nil {
		return err
	}
	metrics.MembershipChangesTotal.WithLabelValues(string(domain.AuditMemberAdded)).Inc()
	return c.JSON(http.StatusOK, project)
}

// RemoveMember removes a user from the project's member set. Removing a
// non-member is rejected with 400.
func (h *ProjectHandler) RemoveMember(c echo.Context) error {
	project, err := h.service.RemoveMember(c.Request().Context(), c.Param("projectId"), c.Param("userId"))
	if err != nil {
		return err
	}
	metrics.MembershipChangesTotal.WithLabelValues(string(domain.AuditMemberRemoved)).Inc()
	return c.JSON(http.StatusOK, project)
}

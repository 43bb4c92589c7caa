package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i2i/project-management/internal/api/metrics"
	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

// RoleHandler handles HTTP requests for role lifecycle and role
// assignment. All role routes are admin only.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

type roleRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type assignRolesRequest struct {
	RoleIDs []string `json:"role_ids" validate:"required,min=1"`
}

func (h *RoleHandler) Create(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.service.Create(c.Request().Context(), ports.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, role)
}

func (h *RoleHandler) Update(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	role, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) GetByID(c echo.Context) error {
	role, err := h.service.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) GetAll(c echo.Context) error {
	roles, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Message: "role deleted successfully"})
}

// AssignRoles unions the supplied role ids into the user's role set.
func (h *RoleHandler) AssignRoles(c echo.Context) error {
	var req assignRolesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.AssignRoles(c.Request().Context(), req.RoleIDs, c.Param("userId"))
	if err != nil {
		return err
	}
	metrics.MembershipChangesTotal.WithLabelValues(string(domain.AuditRolesAssigned)).Inc()
	return c.JSON(http.StatusOK, user)
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fotostream/identity-api/internal/core/ports"
)

// RoleHandler exposes the privileged role endpoints, behind Auth + RBAC(admin).
type RoleHandler struct {
	authService ports.AuthService
}

func NewRoleHandler(authService ports.AuthService) *RoleHandler {
	return &RoleHandler{authService: authService}
}

// List returns all roles.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listRolesResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.authService.ListRoles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listRolesResponse{Total: len(roles), TotalRoles: roles})
}

// Create registers a new role.
//
// @Summary      Create a role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoleRequest  true  "Role to create"
// @Success      201   {object}  createRoleResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	role, err := h.authService.CreateRole(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createRoleResponse{
		CreatedRole: *role,
		Message:     fmt.Sprintf("role %s created", role.Name),
	})
}

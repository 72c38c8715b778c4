package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fotostream/identity-api/internal/api/metrics"
	"github.com/fotostream/identity-api/internal/core/ports"
)

// UserHandler exposes the privileged user-administration endpoints. Both
// routes sit behind Auth + RBAC(admin) in the router.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// List returns the total user count and all sanitized user records.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	res, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Total: res.Total, Data: res.Users})
}

// AssignRole changes the target user's role. The role is resolved by id
// server-side; the request body never carries a role name.
//
// @Summary      Assign a role to a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Target user id"
// @Param        body  body      assignRoleRequest  true  "Role assignment"
// @Success      200   {object}  assignRoleResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id}/role [patch]
func (h *UserHandler) AssignRole(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.authService.AssignRole(c.Request().Context(), userID, req.RoleID)
	if err != nil {
		metrics.RoleAssignmentsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RoleAssignmentsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, assignRoleResponse{
		UserToUpdate: res.User,
		Message:      res.Message,
	})
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fotostream/identity-api/internal/api/metrics"
)

// RBAC allows the request through only when the authenticated caller's role
// is a member of allowedRoles. Matching is exact and case-sensitive. The set
// is fixed at route registration time; RBAC always runs after Auth and never
// inspects the token itself.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				metrics.AuthzDenialsTotal.WithLabelValues(role).Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

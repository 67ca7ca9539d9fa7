package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront-admin/internal/models"
)

// RequireSuperAdmin gates a route on the SUPER_ADMIN role. Must run after
// Authenticate, which puts the role into the context.
func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := c.Get("role").(models.Role)
		if !ok || role != models.RoleSuperAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{
				"success": false,
				"error":   "access denied! super admin access required",
			})
		}
		return next(c)
	}
}

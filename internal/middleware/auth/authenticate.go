package auth

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront-admin/internal/models"
	"github.com/Skotchmaster/storefront-admin/internal/service/token"
)

type Middleware struct {
	JWTSecret []byte
}

// Authenticate verifies the accessToken cookie and attaches the decoded
// identity to the request context. It never refreshes an expired token; the
// client has to call /api/auth/refresh and retry.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie("accessToken")
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"error":   "access token is not present",
			})
		}

		claims, err := token.ParseAccess(cookie.Value, m.JWTSecret)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"error":   "invalid or expired access token",
			})
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func setUserContext(c echo.Context, claims *token.AccessClaims) {
	userID, _ := strconv.ParseUint(claims.Subject, 10, 64)
	c.Set("userID", uint(userID))
	c.Set("email", claims.Email)
	c.Set("role", models.Role(claims.Role))
}

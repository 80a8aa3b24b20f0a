package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platformsec/identity-service/internal/api/metrics"
)

// RBAC enforces role-based access control: the request proceeds when the
// token's role set intersects requiredRoles. An authenticated token with no
// matching role gets 403, distinct from the 401 of a missing/invalid token.
func RBAC(requiredRoles ...string) echo.MiddlewareFunc {
	required := make(map[string]struct{}, len(requiredRoles))
	for _, r := range requiredRoles {
		required[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := c.Get("roles").([]string)
			if !ok {
				// Claims absent: the Auth middleware never ran on this route.
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			for _, r := range roles {
				if _, allowed := required[r]; allowed {
					return next(c)
				}
			}

			metrics.AccessDeniedTotal.Inc()
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}

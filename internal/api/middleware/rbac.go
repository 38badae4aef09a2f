package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pethero/pethero-api/internal/core/ports"
)

// RequireRole gates a route to the given roles. It runs after Auth and reads
// the principal it injected; resource-level checks still happen in the
// services, this only rejects requests that can never succeed.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get(PrincipalKey).(ports.Principal)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if _, ok := allowed[principal.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/pethero/pethero-api/internal/api/middleware"
	"github.com/pethero/pethero-api/internal/core/ports"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// performs a fast-fail check before any service call: a request reaching a
// protected handler without a principal means the middleware did not run,
// which is a wiring bug surfaced as 401 rather than a panic.
func ctxPrincipal(c echo.Context) (ports.Principal, error) {
	principal, ok := c.Get(apimiddleware.PrincipalKey).(ports.Principal)
	if !ok || principal.UserID == "" {
		return ports.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return principal, nil
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i2i/project-management/internal/api/metrics"
	"github.com/i2i/project-management/internal/core/domain"
)

// RequireAny enforces the any-of authority policy: the request proceeds
// when the caller holds at least one of the required authorities.
// Authenticated callers lacking every required authority get 403,
// distinct from the 401 issued by Auth.
func RequireAny(required ...domain.Authority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			held, _ := c.Get(CtxAuthorities).(domain.Authorities)
			if !held.ContainsAny(required...) {
				metrics.AuthzDeniedTotal.Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/i2i/project-management/internal/api/metrics"
	"github.com/i2i/project-management/internal/core/domain"
	"github.com/i2i/project-management/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxSubject     = "subject"
	CtxAuthorities = "authorities"
)

// Auth validates the bearer token and injects the subject and authority
// snapshot into the echo context. Any validation failure rejects the
// request as unauthenticated; there is no partial authentication.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenValidationsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()

			c.Set(CtxSubject, claims.Subject)
			c.Set(CtxAuthorities, claims.Authorities)

			return next(c)
		}
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i2i/project-management/internal/api/middleware"
)

// ctxSubject extracts the authenticated subject injected by the Auth
// middleware. Presence proves the middleware ran; a handler reached
// without it rejects the request outright.
func ctxSubject(c echo.Context) (string, error) {
	subject, _ := c.Get(middleware.CtxSubject).(string)
	if subject == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return subject, nil
}

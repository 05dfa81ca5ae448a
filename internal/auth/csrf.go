package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireCSRF validates the anti-forgery token on state-changing
// requests. The token is issued per session and returned to the client
// by the login and me endpoints; clients send it back in the
// X-CSRF-Token header or the _csrf form field. Must run after
// Bootstrap.
func RequireCSRF() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			// Login has no token yet; logout is idempotent and harmless
			path := c.Path()
			if strings.HasSuffix(path, "/auth/login") || strings.HasSuffix(path, "/auth/logout") {
				return next(c)
			}

			sess := GetSession(c)
			token := c.Request().Header.Get("X-CSRF-Token")
			if token == "" {
				token = c.FormValue("_csrf")
			}

			if sess == nil || token == "" ||
				subtle.ConstantTimeCompare([]byte(token), []byte(sess.CSRFToken)) != 1 {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "invalid or missing CSRF token",
				})
			}

			return next(c)
		}
	}
}

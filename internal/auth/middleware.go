package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dantetesta/estacionamento/internal/session"
)

// Context key for the bootstrapped session
const ContextKeySession = "session"

// Bootstrap ensures a session exists for the request and stores it in
// the echo context. Expiry and hijack terminations surface as a fresh
// anonymous session here; protected routes reject them in RequireAuth.
// Public routes (login itself) still get a usable session for the
// attempt counters.
func Bootstrap(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := svc.Sessions().Bootstrap(c)
			if err != nil {
				reason := ""
				switch {
				case errors.Is(err, session.ErrExpired):
					reason = "expired"
				case errors.Is(err, session.ErrSecurityViolation):
					reason = "security"
					svc.RecordSecurityViolation(c, "fingerprint mismatch on "+c.Path())
				}
				c.Set("session_termination", reason)

				// The terminated session is gone; continue anonymous
				sess, err = svc.Sessions().Bootstrap(c)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, map[string]string{
						"error": "session initialization failed",
					})
				}
			}
			c.Set(ContextKeySession, sess)
			return next(c)
		}
	}
}

// RequireAuth rejects requests whose session is not authenticated. Must
// run after Bootstrap. The reason field tells the client why: "expired",
// "security", or empty for never logged in.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := GetSession(c)
			if sess == nil || !sess.Authenticated() {
				reason, _ := c.Get("session_termination").(string)
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":  "authentication required",
					"reason": reason,
				})
			}
			return next(c)
		}
	}
}

// GetSession retrieves the bootstrapped session from the context
func GetSession(c echo.Context) *session.Data {
	sess, ok := c.Get(ContextKeySession).(*session.Data)
	if !ok {
		return nil
	}
	return sess
}

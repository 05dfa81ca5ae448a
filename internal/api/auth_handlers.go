package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dantetesta/estacionamento/internal/auth"
	"github.com/dantetesta/estacionamento/internal/models"
	"github.com/dantetesta/estacionamento/internal/parking"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginHandler handles POST /api/auth/login
func loginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "username and password are required")
	}

	sess := auth.GetSession(c)
	user, err := authService.Authenticate(c, sess, req.Username, req.Password)
	if err != nil {
		var rle *auth.RateLimitedError
		switch {
		case errors.As(err, &rle):
			c.Response().Header().Set("Retry-After", strconv.Itoa(rle.RetryAfter))
			return c.JSON(http.StatusTooManyRequests, map[string]any{
				"error":       "too many login attempts",
				"retry_after": rle.RetryAfter,
			})
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "invalid username or password",
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "authentication failed, please try again",
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user":       user,
		"csrf_token": sess.CSRFToken,
	})
}

// logoutHandler handles POST /api/auth/logout. Safe to call while
// anonymous.
func logoutHandler(c echo.Context) error {
	authService.Logout(c, auth.GetSession(c))
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// getCurrentUser handles GET /api/auth/me
func getCurrentUser(c echo.Context) error {
	sess := auth.GetSession(c)
	if sess == nil || !sess.Authenticated() {
		reason, _ := c.Get("session_termination").(string)
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error":  "not authenticated",
			"reason": reason,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"id":           sess.UserID,
		"username":     sess.UserName,
		"display_name": sess.UserFullName,
		"email":        sess.UserEmail,
		"login_time":   sess.LoginTime,
		"csrf_token":   sess.CSRFToken,
	})
}

// getProfileHandler handles GET /api/profile
func getProfileHandler(c echo.Context) error {
	sess := auth.GetSession(c)

	user, err := userRepo.GetByID(sess.UserID)
	if err != nil {
		return internalError(c, "profile lookup failed", err)
	}

	return c.JSON(http.StatusOK, user)
}

// updateProfileHandler handles PUT /api/profile: display name, email
// and, when the current password is supplied, the password itself.
func updateProfileHandler(c echo.Context) error {
	sess := auth.GetSession(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if len(req.DisplayName) < 3 {
		return badRequest(c, "display name must have at least 3 characters")
	}
	if req.Email != "" && !parking.ValidEmail(req.Email) {
		return badRequest(c, "invalid email")
	}

	user, err := userRepo.GetByID(sess.UserID)
	if err != nil {
		return internalError(c, "profile lookup failed", err)
	}

	if req.NewPassword != "" {
		if !auth.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
			return c.JSON(http.StatusForbidden, map[string]string{
				"error": "current password is incorrect",
			})
		}
		if violations := auth.CheckPasswordStrength(req.NewPassword); len(violations) > 0 {
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error":      "password too weak",
				"violations": violations,
			})
		}
		hash, err := auth.HashPassword(req.NewPassword, cfg.BcryptCost)
		if err != nil {
			return internalError(c, "password hash failed", err)
		}
		user.PasswordHash = hash
	}

	user.DisplayName = req.DisplayName
	user.Email = req.Email

	if err := userRepo.Update(user); err != nil {
		return internalError(c, "profile update failed", err)
	}

	sess.UserFullName = user.DisplayName
	sess.UserEmail = user.Email

	return c.JSON(http.StatusOK, user)
}

// listAuditLogsHandler handles GET /api/audit
func listAuditLogsHandler(c echo.Context) error {
	logs, err := auditRepo.List(pageSize, pageOffset(c))
	if err != nil {
		return internalError(c, "audit list failed", err)
	}
	return c.JSON(http.StatusOK, logs)
}

package auth

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dantetesta/estacionamento/internal/database"
	"github.com/dantetesta/estacionamento/internal/models"
	"github.com/dantetesta/estacionamento/internal/session"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password, so a failed login never reveals which one it was
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnavailable is returned when the credential store cannot be
	// reached; the underlying cause is logged, never surfaced
	ErrUnavailable = errors.New("authentication unavailable")
)

// RateLimitedError is returned while login attempts for a username are
// blocked
type RateLimitedError struct {
	RetryAfter int // seconds
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many login attempts, retry in %ds", e.RetryAfter)
}

// Service handles authentication logic
type Service struct {
	userRepo  *database.UserRepo
	auditRepo *database.AuditRepo
	sessions  *session.Manager
	gate      *Gate
	log       *zap.SugaredLogger
}

// NewService creates a new auth service
func NewService(sessions *session.Manager, gate *Gate, log *zap.SugaredLogger) *Service {
	return &Service{
		userRepo:  database.NewUserRepo(),
		auditRepo: database.NewAuditRepo(),
		sessions:  sessions,
		gate:      gate,
		log:       log,
	}
}

// Sessions exposes the session manager
func (s *Service) Sessions() *session.Manager { return s.sessions }

// Authenticate verifies a username/password pair and establishes an
// authenticated session, or reports a structured failure.
func (s *Service) Authenticate(c echo.Context, sess *session.Data, username, password string) (*models.User, error) {
	now := s.sessions.Clock().Now()

	if blocked, retryAfter := s.gate.Blocked(sess, username, now); blocked {
		return nil, &RateLimitedError{RetryAfter: retryAfter}
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			s.gate.RecordFailure(sess, username, now)
			return nil, ErrInvalidCredentials
		}
		s.log.Errorw("credential lookup failed", "error", err)
		return nil, ErrUnavailable
	}

	if !VerifyPassword(password, user.PasswordHash) {
		s.gate.RecordFailure(sess, username, now)
		return nil, ErrInvalidCredentials
	}

	s.gate.Clear(sess, username)

	// New identifier at privilege escalation (fixation prevention)
	s.sessions.Regenerate(c, sess)

	sess.UserID = user.ID
	sess.UserName = user.Username
	sess.UserFullName = user.DisplayName
	sess.UserEmail = user.Email
	sess.IPAddress = c.RealIP()
	sess.UserAgent = c.Request().UserAgent()
	sess.LoginTime = now
	sess.LastActivity = now

	// Fire-and-forget: a failed timestamp update must not fail the login
	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		s.log.Warnw("last login update failed", "user", user.Username, "error", err)
	}

	s.audit(user.ID, user.Username, models.AuditLogin, "", c.RealIP())

	return user, nil
}

// Logout terminates the session unconditionally. Idempotent: calling it
// on an anonymous session is a no-op apart from clearing the cookie.
func (s *Service) Logout(c echo.Context, sess *session.Data) {
	if sess != nil && sess.Authenticated() {
		s.audit(sess.UserID, sess.UserName, models.AuditLogout, "", c.RealIP())
	}
	s.sessions.Destroy(c, sess)
}

// RecordSecurityViolation audit-logs a fingerprint mismatch, the one
// failure treated as a potential hijack.
func (s *Service) RecordSecurityViolation(c echo.Context, details string) {
	s.audit(0, "", models.AuditSecurityViolation, details, c.RealIP())
}

func (s *Service) audit(userID int64, username, action, details, ip string) {
	if err := s.auditRepo.Record(userID, username, action, details, ip); err != nil {
		s.log.Warnw("audit write failed", "action", action, "error", err)
	}
}

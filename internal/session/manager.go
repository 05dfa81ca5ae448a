package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

var (
	// ErrExpired is returned when an authenticated session exceeded the
	// inactivity timeout and was terminated
	ErrExpired = errors.New("session expired")
	// ErrSecurityViolation is returned when the request fingerprint does
	// not match the one captured at login; the session is terminated
	ErrSecurityViolation = errors.New("session security violation")
)

// Manager owns the session lifecycle: creation, identifier rotation,
// inactivity expiry and hijack detection.
type Manager struct {
	store         Store
	clock         Clock
	cookieName    string
	lifetime      time.Duration
	regenInterval time.Duration
}

// NewManager creates a session manager
func NewManager(store Store, clock Clock, cookieName string, lifetime, regenInterval time.Duration) *Manager {
	return &Manager{
		store:         store,
		clock:         clock,
		cookieName:    cookieName,
		lifetime:      lifetime,
		regenInterval: regenInterval,
	}
}

// Bootstrap ensures exactly one well-formed session exists for the
// request. Any expiry or hijack condition has already terminated the
// session by the time this returns: callers never observe a stale
// authenticated session.
func (m *Manager) Bootstrap(c echo.Context) (*Data, error) {
	now := m.clock.Now()

	d := m.fromRequest(c)
	if d == nil {
		d = &Data{
			ID:               newToken(),
			CSRFToken:        newToken(),
			LastActivity:     now,
			LastRegeneration: now,
		}
		m.store.Put(d)
		m.setCookie(c, d.ID)
		return d, nil
	}

	// Periodic identifier rotation, independent of login state
	if d.LastRegeneration.IsZero() || now.Sub(d.LastRegeneration) > m.regenInterval {
		m.rotate(c, d)
		d.LastRegeneration = now
	}

	if d.Authenticated() {
		if !d.LastActivity.IsZero() && now.Sub(d.LastActivity) > m.lifetime {
			m.Destroy(c, d)
			return nil, ErrExpired
		}
		if d.IPAddress != c.RealIP() || d.UserAgent != c.Request().UserAgent() {
			m.Destroy(c, d)
			return nil, ErrSecurityViolation
		}
	}

	d.LastActivity = now
	return d, nil
}

// Regenerate issues a new session identifier while preserving state.
// Called at the moment of successful authentication to prevent
// session fixation.
func (m *Manager) Regenerate(c echo.Context, d *Data) {
	m.rotate(c, d)
	d.LastRegeneration = m.clock.Now()
}

// Destroy discards the server-side session record and instructs the
// client to drop its cookie. Safe to call on anonymous sessions.
func (m *Manager) Destroy(c echo.Context, d *Data) {
	if d != nil {
		m.store.Destroy(d.ID)
		d.ClearUser()
	}
	m.clearCookie(c)
}

// Clock exposes the injected clock
func (m *Manager) Clock() Clock { return m.clock }

func (m *Manager) rotate(c echo.Context, d *Data) {
	m.store.Destroy(d.ID)
	d.ID = newToken()
	m.store.Put(d)
	m.setCookie(c, d.ID)
}

func (m *Manager) fromRequest(c echo.Context) *Data {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	d, ok := m.store.Get(cookie.Value)
	if !ok {
		return nil
	}
	return d
}

func (m *Manager) setCookie(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(m.lifetime.Seconds()),
	})
}

func (m *Manager) clearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Attempt tracks failed logins for one username within a session
type Attempt struct {
	Count       int
	LastAttempt time.Time
}

// Data is the server-side state for one browser session
type Data struct {
	ID string

	// Anti-forgery token, issued once per session and sent back by the
	// client in the X-CSRF-Token header on state-changing requests
	CSRFToken string

	// Authenticated user; zero means anonymous
	UserID       int64
	UserName     string
	UserFullName string
	UserEmail    string

	// Security fingerprint captured at login
	IPAddress string
	UserAgent string

	LoginTime        time.Time
	LastActivity     time.Time
	LastRegeneration time.Time

	// Failed-login counters keyed by username, scoped to this session
	Attempts map[string]*Attempt
}

// Authenticated reports whether the session belongs to a logged-in user
func (d *Data) Authenticated() bool {
	return d.UserID != 0
}

// ClearUser resets every authenticated field, returning the session to
// the anonymous state
func (d *Data) ClearUser() {
	d.UserID = 0
	d.UserName = ""
	d.UserFullName = ""
	d.UserEmail = ""
	d.IPAddress = ""
	d.UserAgent = ""
	d.LoginTime = time.Time{}
	d.Attempts = nil
}

// Clock supplies the current time. Injected so tests can simulate the
// passage of time without sleeping.
type Clock interface {
	Now() time.Time
}

// RealClock is the wall clock
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// newToken generates an opaque random token, used for both session
// identifiers and anti-forgery tokens
func newToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

package auth

import (
	"time"

	"github.com/dantetesta/estacionamento/internal/session"
)

// Gate decides whether a login attempt for a username is currently
// allowed. Counters live inside the session, keyed per username, so
// throttling one username never blocks another.
type Gate struct {
	maxAttempts int
	blockWindow time.Duration
}

// NewGate creates a login attempt gate
func NewGate(maxAttempts int, blockWindow time.Duration) *Gate {
	return &Gate{maxAttempts: maxAttempts, blockWindow: blockWindow}
}

// Blocked reports whether attempts for username are currently rejected,
// and if so the remaining cool-down in seconds. Entries whose block
// window has elapsed are evicted, so a later failure restarts the count
// at one.
func (g *Gate) Blocked(sess *session.Data, username string, now time.Time) (bool, int) {
	g.evictStale(sess, now)

	a, ok := sess.Attempts[username]
	if !ok {
		return false, 0
	}
	if a.Count < g.maxAttempts {
		return false, 0
	}

	remaining := g.blockWindow - now.Sub(a.LastAttempt)
	if remaining <= 0 {
		delete(sess.Attempts, username)
		return false, 0
	}
	return true, int(remaining.Seconds())
}

// RecordFailure increments the failed-attempt counter for username
func (g *Gate) RecordFailure(sess *session.Data, username string, now time.Time) {
	if sess.Attempts == nil {
		sess.Attempts = make(map[string]*session.Attempt)
	}
	a, ok := sess.Attempts[username]
	if !ok {
		a = &session.Attempt{}
		sess.Attempts[username] = a
	}
	a.Count++
	a.LastAttempt = now
}

// Clear removes the counter for username
func (g *Gate) Clear(sess *session.Data, username string) {
	delete(sess.Attempts, username)
}

// evictStale drops entries whose block window has elapsed, keeping the
// map from growing without bound.
func (g *Gate) evictStale(sess *session.Data, now time.Time) {
	for name, a := range sess.Attempts {
		if now.Sub(a.LastAttempt) >= g.blockWindow {
			delete(sess.Attempts, name)
		}
	}
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dantetesta/estacionamento/internal/session"
)

const (
	gateMax    = 5
	gateWindow = 15 * time.Minute
)

func TestGateAllowsUpToLimit(t *testing.T) {
	g := NewGate(gateMax, gateWindow)
	sess := &session.Data{}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < gateMax-1; i++ {
		blocked, _ := g.Blocked(sess, "alice", now)
		require.False(t, blocked, "attempt %d should be allowed", i+1)
		g.RecordFailure(sess, "alice", now)
		now = now.Add(time.Second)
	}

	// One attempt left at the boundary
	blocked, _ := g.Blocked(sess, "alice", now)
	require.False(t, blocked)
	g.RecordFailure(sess, "alice", now)

	blocked, retryAfter := g.Blocked(sess, "alice", now)
	require.True(t, blocked, "attempt past the limit should be rejected")
	require.Equal(t, int(gateWindow.Seconds()), retryAfter)
}

func TestGateRetryAfterCountsDown(t *testing.T) {
	g := NewGate(gateMax, gateWindow)
	sess := &session.Data{}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < gateMax; i++ {
		g.RecordFailure(sess, "alice", now)
	}

	blocked, retryAfter := g.Blocked(sess, "alice", now.Add(5*time.Minute))
	require.True(t, blocked)
	require.Equal(t, int((10 * time.Minute).Seconds()), retryAfter)
}

func TestGateWindowElapsedClearsCounter(t *testing.T) {
	g := NewGate(gateMax, gateWindow)
	sess := &session.Data{}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < gateMax; i++ {
		g.RecordFailure(sess, "alice", now)
	}

	later := now.Add(gateWindow + time.Second)
	blocked, _ := g.Blocked(sess, "alice", later)
	require.False(t, blocked, "block should lift after the window")

	// Counter restarted, not resumed: one more failure is far from the limit
	g.RecordFailure(sess, "alice", later)
	require.Equal(t, 1, sess.Attempts["alice"].Count)
}

func TestGateScopedPerUsername(t *testing.T) {
	g := NewGate(gateMax, gateWindow)
	sess := &session.Data{}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < gateMax; i++ {
		g.RecordFailure(sess, "alice", now)
	}

	blocked, _ := g.Blocked(sess, "alice", now)
	require.True(t, blocked)
	blocked, _ = g.Blocked(sess, "bob", now)
	require.False(t, blocked, "throttling alice must not block bob")
}

func TestGateClear(t *testing.T) {
	g := NewGate(gateMax, gateWindow)
	sess := &session.Data{}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < gateMax; i++ {
		g.RecordFailure(sess, "alice", now)
	}
	g.Clear(sess, "alice")

	blocked, _ := g.Blocked(sess, "alice", now)
	require.False(t, blocked)
}

func TestGateEvictsStaleEntries(t *testing.T) {
	g := NewGate(gateMax, gateWindow)
	sess := &session.Data{}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	g.RecordFailure(sess, "alice", now)
	g.RecordFailure(sess, "bob", now.Add(10*time.Minute))

	// Any check past alice's window sweeps her entry, keeps bob's
	g.Blocked(sess, "carol", now.Add(gateWindow+time.Minute))
	require.NotContains(t, sess.Attempts, "alice")
	require.Contains(t, sess.Attempts, "bob")
}

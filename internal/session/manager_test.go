package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const (
	testCookie   = "test_session"
	testLifetime = 30 * time.Minute
	testRegen    = 30 * time.Minute
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestManager() (*Manager, *fakeClock, *MemoryStore) {
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	store := &MemoryStore{sessions: make(map[string]*Data), lifetime: testLifetime, clock: clock}
	return NewManager(store, clock, testCookie, testLifetime, testRegen), clock, store
}

func newContext(sessionID, ip, ua string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":54321"
	req.Header.Set("User-Agent", ua)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: sessionID})
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func sessionCookie(c echo.Context) *http.Cookie {
	rec := c.Response().Writer.(*httptest.ResponseRecorder)
	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == testCookie {
			found = ck // last write wins
		}
	}
	return found
}

func TestBootstrapCreatesAnonymousSession(t *testing.T) {
	m, _, _ := newTestManager()
	c := newContext("", "10.0.0.1", "agent")

	d, err := m.Bootstrap(c)
	require.NoError(t, err)
	require.NotEmpty(t, d.ID)
	require.NotEmpty(t, d.CSRFToken)
	require.NotEqual(t, d.ID, d.CSRFToken)
	require.False(t, d.Authenticated())

	ck := sessionCookie(c)
	require.NotNil(t, ck)
	require.Equal(t, d.ID, ck.Value)
	require.True(t, ck.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, ck.SameSite)
}

func TestBootstrapReusesSession(t *testing.T) {
	m, clock, _ := newTestManager()

	d, err := m.Bootstrap(newContext("", "10.0.0.1", "agent"))
	require.NoError(t, err)

	clock.Advance(time.Minute)
	d2, err := m.Bootstrap(newContext(d.ID, "10.0.0.1", "agent"))
	require.NoError(t, err)
	require.Equal(t, d.ID, d2.ID)
	require.Equal(t, clock.Now(), d2.LastActivity)
}

func TestBootstrapRotatesAfterInterval(t *testing.T) {
	m, clock, store := newTestManager()

	d, err := m.Bootstrap(newContext("", "10.0.0.1", "agent"))
	require.NoError(t, err)
	oldID := d.ID

	clock.Advance(testRegen + time.Second)
	d2, err := m.Bootstrap(newContext(oldID, "10.0.0.1", "agent"))
	require.NoError(t, err)
	require.NotEqual(t, oldID, d2.ID, "identifier should rotate after the interval")

	_, ok := store.Get(oldID)
	require.False(t, ok, "old identifier should be gone from the store")
	got, ok := store.Get(d2.ID)
	require.True(t, ok)
	require.Same(t, d2, got)
}

func TestBootstrapExpiresIdleAuthenticatedSession(t *testing.T) {
	m, clock, store := newTestManager()

	d, err := m.Bootstrap(newContext("", "10.0.0.1", "agent"))
	require.NoError(t, err)
	d.UserID = 1
	d.IPAddress = "10.0.0.1"
	d.UserAgent = "agent"

	clock.Advance(testLifetime + time.Second)
	_, err = m.Bootstrap(newContext(d.ID, "10.0.0.1", "agent"))
	require.ErrorIs(t, err, ErrExpired)

	_, ok := store.Get(d.ID)
	require.False(t, ok, "expired session should be destroyed")
	require.False(t, d.Authenticated(), "expired session should be cleared")
}

func TestBootstrapAnonymousSessionNeverExpires(t *testing.T) {
	m, clock, _ := newTestManager()

	d, err := m.Bootstrap(newContext("", "10.0.0.1", "agent"))
	require.NoError(t, err)

	// Regeneration interval disabled for this case so only expiry applies
	clock.Advance(testLifetime + time.Second)
	d.LastRegeneration = clock.Now()

	d2, err := m.Bootstrap(newContext(d.ID, "10.0.0.1", "agent"))
	require.NoError(t, err)
	require.Equal(t, d.ID, d2.ID)
}

func TestBootstrapDetectsFingerprintMismatch(t *testing.T) {
	m, clock, store := newTestManager()

	d, err := m.Bootstrap(newContext("", "10.0.0.1", "agent"))
	require.NoError(t, err)
	d.UserID = 1
	d.IPAddress = "10.0.0.1"
	d.UserAgent = "agent"

	clock.Advance(time.Minute)

	tests := []struct {
		name string
		ip   string
		ua   string
	}{
		{"different ip", "10.0.0.2", "agent"},
		{"different user agent", "10.0.0.1", "other-agent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := d.ID
			_, err := m.Bootstrap(newContext(id, tt.ip, tt.ua))
			require.ErrorIs(t, err, ErrSecurityViolation)
			_, ok := store.Get(id)
			require.False(t, ok, "hijacked session should be destroyed")

			// Re-establish for the next subcase
			d, err = m.Bootstrap(newContext("", "10.0.0.1", "agent"))
			require.NoError(t, err)
			d.UserID = 1
			d.IPAddress = "10.0.0.1"
			d.UserAgent = "agent"
		})
	}
}

func TestRegeneratePreservesState(t *testing.T) {
	m, _, store := newTestManager()
	c := newContext("", "10.0.0.1", "agent")

	d, err := m.Bootstrap(c)
	require.NoError(t, err)
	d.UserID = 7
	d.UserName = "carla"
	oldID := d.ID

	m.Regenerate(c, d)
	require.NotEqual(t, oldID, d.ID)
	require.Equal(t, int64(7), d.UserID)
	require.Equal(t, "carla", d.UserName)

	_, ok := store.Get(oldID)
	require.False(t, ok)
	_, ok = store.Get(d.ID)
	require.True(t, ok)

	ck := sessionCookie(c)
	require.NotNil(t, ck)
	require.Equal(t, d.ID, ck.Value)
}

func TestDestroyIsIdempotent(t *testing.T) {
	m, _, store := newTestManager()
	c := newContext("", "10.0.0.1", "agent")

	d, err := m.Bootstrap(c)
	require.NoError(t, err)
	d.UserID = 3

	m.Destroy(c, d)
	m.Destroy(c, d) // second call must not panic or error

	_, ok := store.Get(d.ID)
	require.False(t, ok)
	require.False(t, d.Authenticated())

	ck := sessionCookie(c)
	require.NotNil(t, ck)
	require.Equal(t, -1, ck.MaxAge)
	require.Empty(t, ck.Value)
}

func TestMemoryStore(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s := NewMemoryStore(testLifetime, clock)

	d := &Data{ID: "abc"}
	s.Put(d)

	got, ok := s.Get("abc")
	require.True(t, ok)
	require.Same(t, d, got)

	s.Destroy("abc")
	_, ok = s.Get("abc")
	require.False(t, ok)

	_, ok = s.Get("missing")
	require.False(t, ok)
}

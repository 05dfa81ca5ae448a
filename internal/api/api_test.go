package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dantetesta/estacionamento/internal/auth"
	"github.com/dantetesta/estacionamento/internal/config"
	"github.com/dantetesta/estacionamento/internal/database"
	"github.com/dantetesta/estacionamento/internal/models"
	"github.com/dantetesta/estacionamento/internal/session"
)

const testCookieName = "test_session"

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "api-test-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := database.Open(database.Config{Path: filepath.Join(dir, "test.db")}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := m.Run()

	database.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestServer() (*echo.Echo, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	store := session.NewMemoryStore(30*time.Minute, clock)
	manager := session.NewManager(store, clock, testCookieName, 30*time.Minute, 30*time.Minute)
	gate := auth.NewGate(5, 15*time.Minute)
	svc := auth.NewService(manager, gate, zap.NewNop().Sugar())

	e := echo.New()
	RegisterRoutes(e.Group("/api"), svc, config.Config{BcryptCost: bcrypt.MinCost}, zap.NewNop().Sugar())
	return e, clock
}

func createTestUser(t *testing.T, username, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, DisplayName: "Operator", PasswordHash: hash}
	require.NoError(t, database.NewUserRepo().Create(user))
	return user
}

// client holds the browser-side state of one session: the cookie and
// the anti-forgery token issued at login
type client struct {
	e      *echo.Echo
	cookie *http.Cookie
	csrf   string
	ua     string
}

func (cl *client) do(method, path string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.RemoteAddr = "10.1.1.1:40000"
	req.Header.Set("User-Agent", cl.ua)
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}
	if cl.csrf != "" {
		req.Header.Set("X-CSRF-Token", cl.csrf)
	}
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)

	// Track the latest cookie the server handed out
	if ck := responseCookie(rec); ck != nil && ck.MaxAge >= 0 {
		cl.cookie = ck
	}
	return rec
}

// responseCookie returns the last session cookie written by the server,
// which after a login is the regenerated identifier
func responseCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == testCookieName {
			found = ck
		}
	}
	return found
}

func newClient(e *echo.Echo) *client {
	return &client{e: e, ua: "agent"}
}

func login(t *testing.T, e *echo.Echo, username, password string) *client {
	t.Helper()
	cl := newClient(e)
	rec := cl.do(http.MethodPost, "/api/auth/login",
		map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	var body struct {
		CSRFToken string `json:"csrf_token"`
	}
	decode(t, rec, &body)
	require.NotEmpty(t, body.CSRFToken)
	cl.csrf = body.CSRFToken
	return cl
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealthCheckIsPublic(t *testing.T) {
	e, _ := newTestServer()
	rec := newClient(e).do(http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRouteRequiresLogin(t *testing.T) {
	e, _ := newTestServer()
	rec := newClient(e).do(http.MethodGet, "/api/vehicles", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	require.Equal(t, "authentication required", body["error"])
	require.Empty(t, body["reason"], "a never-logged-in session has no termination reason")
}

func TestLoginAndMe(t *testing.T) {
	e, _ := newTestServer()
	createTestUser(t, "apiana", "Secret123")

	cl := login(t, e, "apiana", "Secret123")

	rec := cl.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decode(t, rec, &body)
	require.Equal(t, "apiana", body["username"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e, _ := newTestServer()
	createTestUser(t, "apibruno", "Secret123")

	rec := newClient(e).do(http.MethodPost, "/api/auth/login",
		map[string]string{"username": "apibruno", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown username reads exactly the same
	rec2 := newClient(e).do(http.MethodPost, "/api/auth/login",
		map[string]string{"username": "ghost", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec2.Code)
	require.JSONEq(t, rec.Body.String(), rec2.Body.String())
}

func TestLoginRateLimit(t *testing.T) {
	e, _ := newTestServer()
	createTestUser(t, "apicarla", "Secret123")

	// Counters live in the session, so the failures must share a cookie
	cl := newClient(e)
	for i := 0; i < 5; i++ {
		rec := cl.do(http.MethodPost, "/api/auth/login",
			map[string]string{"username": "apicarla", "password": "wrong"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	// Even the right password is rejected now
	rec := cl.do(http.MethodPost, "/api/auth/login",
		map[string]string{"username": "apicarla", "password": "Secret123"})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body map[string]any
	decode(t, rec, &body)
	require.NotZero(t, body["retry_after"])

	// A fresh browser session is unaffected
	rec2 := newClient(e).do(http.MethodPost, "/api/auth/login",
		map[string]string{"username": "apicarla", "password": "Secret123"})
	require.Equal(t, http.StatusOK, rec2.Code)
}

func TestCSRFTokenRequired(t *testing.T) {
	e, _ := newTestServer()
	createTestUser(t, "apinora", "Secret123")
	cl := login(t, e, "apinora", "Secret123")

	// Without the token a state-changing request is refused
	bare := &client{e: e, cookie: cl.cookie, ua: cl.ua}
	rec := bare.do(http.MethodPost, "/api/vehicles/checkin",
		map[string]any{"plate": "SSS1234", "type": "small"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	forged := &client{e: e, cookie: cl.cookie, ua: cl.ua, csrf: "bogus"}
	rec = forged.do(http.MethodPost, "/api/vehicles/checkin",
		map[string]any{"plate": "SSS1234", "type": "small"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// With the issued token it goes through
	rec = cl.do(http.MethodPost, "/api/vehicles/checkin",
		map[string]any{"plate": "SSS1234", "type": "small"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestSessionExpiryReason(t *testing.T) {
	e, clock := newTestServer()
	createTestUser(t, "apidiego", "Secret123")
	cl := login(t, e, "apidiego", "Secret123")

	clock.Advance(31 * time.Minute)

	rec := cl.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	require.Equal(t, "expired", body["reason"])
}

func TestSessionHijackReason(t *testing.T) {
	e, _ := newTestServer()
	createTestUser(t, "apielena", "Secret123")
	cl := login(t, e, "apielena", "Secret123")

	// Same cookie, different browser fingerprint
	cl.ua = "other-agent"
	rec := cl.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	require.Equal(t, "security", body["reason"])
}

func TestLogoutInvalidatesSession(t *testing.T) {
	e, _ := newTestServer()
	createTestUser(t, "apifabio", "Secret123")
	cl := login(t, e, "apifabio", "Secret123")
	authenticated := cl.cookie

	rec := cl.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The destroyed cookie no longer authenticates
	stale := &client{e: e, cookie: authenticated, ua: "agent"}
	rec = stale.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckInCheckOutFlow(t *testing.T) {
	e, _ := newTestServer()
	createTestUser(t, "apigilda", "Secret123")
	cl := login(t, e, "apigilda", "Secret123")

	rec := cl.do(http.MethodPost, "/api/vehicles/checkin",
		map[string]any{"plate": "qqq-1234", "type": "small"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var v models.Vehicle
	decode(t, rec, &v)
	require.Equal(t, "QQQ1234", v.Plate, "plate should be stored normalized")
	require.NotEmpty(t, v.TicketCode)

	// Second entry for the same plate is rejected while the stay is open
	rec = cl.do(http.MethodPost, "/api/vehicles/checkin",
		map[string]any{"plate": "QQQ1234", "type": "small"})
	require.Equal(t, http.StatusConflict, rec.Code)

	// Fee preview for the open stay
	rec = cl.do(http.MethodGet, "/api/vehicles/open?plate=QQQ1234", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var preview struct {
		Vehicle models.Vehicle `json:"vehicle"`
		Fee     struct {
			Hours  int     `json:"hours"`
			Amount float64 `json:"amount"`
			Exempt bool    `json:"exempt"`
		} `json:"fee"`
	}
	decode(t, rec, &preview)
	require.Equal(t, v.ID, preview.Vehicle.ID)
	require.GreaterOrEqual(t, preview.Fee.Hours, 1)
	require.False(t, preview.Fee.Exempt)

	rec = cl.do(http.MethodPost, "/api/vehicles/checkout",
		map[string]any{"vehicle_id": v.ID, "amount": preview.Fee.Amount, "payment_method": "pix"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var closed models.Vehicle
	decode(t, rec, &closed)
	require.False(t, closed.Open())
	require.True(t, closed.Paid)

	// Closing the same stay again is a conflict
	rec = cl.do(http.MethodPost, "/api/vehicles/checkout",
		map[string]any{"vehicle_id": v.ID, "amount": 10, "payment_method": "pix"})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckInRecognizesSubscriberPlate(t *testing.T) {
	e, _ := newTestServer()
	createTestUser(t, "apihelio", "Secret123")
	cl := login(t, e, "apihelio", "Secret123")

	rec := cl.do(http.MethodPost, "/api/subscribers", map[string]any{
		"name": "Assinante Um", "plate": "RRR1234", "monthly_fee": 150.0, "due_day": 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = cl.do(http.MethodPost, "/api/vehicles/checkin",
		map[string]any{"plate": "RRR1234", "type": "small"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var v models.Vehicle
	decode(t, rec, &v)
	require.NotNil(t, v.SubscriberID, "entry should be linked to the subscriber automatically")

	// Subscriber stays are exempt in the fee preview
	rec = cl.do(http.MethodGet, "/api/vehicles/open?plate=RRR1234", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var preview struct {
		Fee struct {
			Amount float64 `json:"amount"`
			Exempt bool    `json:"exempt"`
		} `json:"fee"`
	}
	decode(t, rec, &preview)
	require.True(t, preview.Fee.Exempt)
	require.Zero(t, preview.Fee.Amount)
}

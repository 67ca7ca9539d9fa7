package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront-admin/internal/models"
	"github.com/Skotchmaster/storefront-admin/internal/service/token"
)

var testSecret = []byte("test_secret")

func signAccess(t *testing.T, secret []byte, email string, role models.Role, ttl time.Duration) string {
	t.Helper()
	claims := token.AccessClaims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return raw
}

func runGate(t *testing.T, mw echo.MiddlewareFunc, cookie *http.Cookie) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, called
}

func TestAuthenticateMissingCookie(t *testing.T) {
	m := &Middleware{JWTSecret: testSecret}
	rec, called := runGate(t, m.Authenticate, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	m := &Middleware{JWTSecret: testSecret}
	raw := signAccess(t, testSecret, "a@x.com", models.RoleUser, -time.Minute)

	rec, called := runGate(t, m.Authenticate, &http.Cookie{Name: "accessToken", Value: raw})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
}

func TestAuthenticateWrongSignature(t *testing.T) {
	m := &Middleware{JWTSecret: testSecret}
	raw := signAccess(t, []byte("other_secret"), "a@x.com", models.RoleUser, time.Minute)

	rec, called := runGate(t, m.Authenticate, &http.Cookie{Name: "accessToken", Value: raw})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
}

func TestAuthenticateSetsIdentity(t *testing.T) {
	m := &Middleware{JWTSecret: testSecret}
	raw := signAccess(t, testSecret, "a@x.com", models.RoleSuperAdmin, time.Minute)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: raw})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := m.Authenticate(func(c echo.Context) error {
		require.Equal(t, uint(1), c.Get("userID"))
		require.Equal(t, "a@x.com", c.Get("email"))
		require.Equal(t, models.RoleSuperAdmin, c.Get("role"))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSuperAdminForbidsUser(t *testing.T) {
	m := &Middleware{JWTSecret: testSecret}
	raw := signAccess(t, testSecret, "a@x.com", models.RoleUser, time.Minute)

	gate := func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.Authenticate(RequireSuperAdmin(next))
	}
	rec, called := runGate(t, gate, &http.Cookie{Name: "accessToken", Value: raw})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, called)
}

func TestRequireSuperAdminAllowsSuperAdmin(t *testing.T) {
	m := &Middleware{JWTSecret: testSecret}
	raw := signAccess(t, testSecret, "admin@x.com", models.RoleSuperAdmin, time.Minute)

	gate := func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.Authenticate(RequireSuperAdmin(next))
	}
	rec, called := runGate(t, gate, &http.Cookie{Name: "accessToken", Value: raw})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
}

func TestRequireSuperAdminWithoutAuthenticate(t *testing.T) {
	// role never reached the context, so the gate must refuse
	rec, called := runGate(t, RequireSuperAdmin, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, called)
}

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testKey = []byte("test-signing-key")

func signToken(t *testing.T, sub string, roles []string, key []byte) string {
	t.Helper()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runJWT(t *testing.T, authorization string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return rec, h(c)
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, "user-1", []string{"doctor"}, testKey)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTMiddleware(JWTConfig{SigningKey: testKey})
	h := mw(func(c echo.Context) error {
		if got := UserIDFromContext(c.Request().Context()); got != "user-1" {
			t.Errorf("user id = %q, want user-1", got)
		}
		roles := RolesFromContext(c.Request().Context())
		if len(roles) != 1 || roles[0] != "doctor" {
			t.Errorf("roles = %v, want [doctor]", roles)
		}
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	_, err := runJWT(t, "")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_WrongKey(t *testing.T) {
	token := signToken(t, "user-1", []string{"doctor"}, []byte("other-key"))
	_, err := runJWT(t, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	_, err := runJWT(t, "Token abc")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func requireRoleRequest(t *testing.T, userRoles []string, required ...string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), "u", userRoles))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireRole(required...)
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return h(c)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	if err := requireRoleRequest(t, []string{"doctor"}, "doctor"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_AdminPassesEveryGuard(t *testing.T) {
	if err := requireRoleRequest(t, []string{"admin"}, "lab"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_RejectsMissingRole(t *testing.T) {
	err := requireRoleRequest(t, []string{"patient"}, "doctor")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestDevAuthMiddleware_GrantsAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := DevAuthMiddleware()
	h := mw(func(c echo.Context) error {
		roles := RolesFromContext(c.Request().Context())
		if len(roles) != 1 || roles[0] != "admin" {
			t.Errorf("roles = %v, want [admin]", roles)
		}
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

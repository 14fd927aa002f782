package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	return token
}

func adminClaims(expiry time.Time) Claims {
	return Claims{
		Roles: []string{"ADMIN"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
}

func TestValidate_AcceptsSignedToken(t *testing.T) {
	validator := NewJWTValidator(testSecret)
	token := signToken(t, testSecret, adminClaims(time.Now().Add(time.Hour)))

	claims, err := validator.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.RegisteredClaims.Subject != "admin-1" {
		t.Fatalf("subject = %q", claims.RegisteredClaims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "ADMIN" {
		t.Fatalf("roles = %v", claims.Roles)
	}
}

func TestValidate_Rejections(t *testing.T) {
	validator := NewJWTValidator(testSecret)

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"empty token", "", ErrMissingToken},
		{"garbage token", "not-a-jwt", ErrInvalidToken},
		{"wrong secret", signToken(t, "other-secret", adminClaims(time.Now().Add(time.Hour))), ErrInvalidToken},
		{"expired", signToken(t, testSecret, adminClaims(time.Now().Add(-time.Hour))), ErrInvalidToken},
		{"missing subject", signToken(t, testSecret, Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}), ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := validator.Validate(tc.token); !errors.Is(err, tc.want) {
				t.Fatalf("Validate() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMiddleware_GatesRoutes(t *testing.T) {
	e := echo.New()
	e.GET("/guarded", func(c echo.Context) error {
		claims, _ := c.Get("claims").(*Claims)
		if claims == nil {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, claims.RegisteredClaims.Subject)
	}, Middleware(NewJWTValidator(testSecret)))

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", rec.Code)
	}

	token := signToken(t, testSecret, adminClaims(time.Now().Add(time.Hour)))
	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "admin-1" {
		t.Fatalf("authenticated status = %d body = %q", rec.Code, rec.Body.String())
	}
}

func TestMiddleware_NilValidatorPassesThrough(t *testing.T) {
	e := echo.New()
	e.GET("/open", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, Middleware(nil))

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

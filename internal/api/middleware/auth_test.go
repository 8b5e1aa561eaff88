package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/travelblog/auth-service/internal/core/token"
)

func signedToken(t *testing.T, codec *token.Codec, ttl time.Duration) string {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	signed, err := codec.Encode(token.Claims{
		SubjectID: "user-1",
		Role:      "admin",
		IssuedAt:  now.Add(-ttl),
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	codec := token.NewCodec("secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, codec, time.Hour))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(codec, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(ContextSubjectID) != "user-1" {
			t.Fatalf("subject id not set")
		}
		if c.Get(ContextRole) != "admin" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func rejectCase(t *testing.T, header string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(token.NewCodec("secret"), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rejectCase(t, "")
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	rejectCase(t, "Token abc")
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	rejectCase(t, "Bearer not-a-token")
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	foreign := signedToken(t, token.NewCodec("other-secret"), time.Hour)
	rejectCase(t, "Bearer "+foreign)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	codec := token.NewCodec("secret")
	now := time.Now().UTC().Truncate(time.Second)
	expired, err := codec.Encode(token.Claims{
		SubjectID: "user-1",
		Role:      "user",
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(codec, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

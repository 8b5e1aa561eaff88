package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/travelblog/auth-service/internal/core/domain"
	"github.com/travelblog/auth-service/internal/core/token"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp["message"]
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{domain.ErrMissingField, http.StatusBadRequest, "missing fields"},
		{domain.ErrConflict, http.StatusConflict, "username or email already exists"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{token.ErrExpired, http.StatusUnauthorized, "invalid token"},
		{token.ErrSignatureInvalid, http.StatusUnauthorized, "invalid token"},
		{token.ErrMalformed, http.StatusUnauthorized, "invalid token"},
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "service temporarily unavailable"},
	}

	for _, tc := range cases {
		status, msg := renderError(t, tc.err)
		if status != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, status)
		}
		if msg != tc.message {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.message, msg)
		}
	}
}

func TestErrorHandler_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("register: persist identity: %w", domain.ErrConflict)
	status, _ := renderError(t, wrapped)
	if status != http.StatusConflict {
		t.Fatalf("expected wrapped error to resolve to 409, got %d", status)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	status, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if msg != "missing authorization header" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	status, msg := renderError(t, errors.New("pq: connection reset by peer"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail must not leak, got %q", msg)
	}
}

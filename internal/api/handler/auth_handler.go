package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/travelblog/auth-service/internal/api/metrics"
	"github.com/travelblog/auth-service/internal/core/domain"
	"github.com/travelblog/auth-service/internal/core/ports"
	"github.com/travelblog/auth-service/internal/core/token"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new identity.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("missing_field").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "user created successfully"})
}

// Login authenticates a user and returns a signed session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  messageResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	signed, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidCredentials) {
			result = "rejected"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: signed, Message: "login successful"})
}

// Verify validates a token on behalf of another service and returns the
// decoded claims. Stateless: only the shared secret is consulted.
//
// @Summary      Verify a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyRequest  true  "Token to verify"
// @Success      200   {object}  verifyResponse
// @Failure      401   {object}  verifyResponse
// @Router       /verify [post]
func (h *AuthHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" {
		metrics.VerificationsTotal.WithLabelValues("missing").Inc()
		return c.JSON(http.StatusUnauthorized, verifyResponse{Valid: false, Error: "token missing"})
	}

	claims, err := h.authService.Verify(req.Token)
	if err != nil {
		metrics.VerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
		return c.JSON(http.StatusUnauthorized, verifyResponse{Valid: false, Error: verifyMessage(err)})
	}

	metrics.VerificationsTotal.WithLabelValues("valid").Inc()
	return c.JSON(http.StatusOK, verifyResponse{
		Valid: true,
		User: &claimsResponse{
			SubjectID: claims.SubjectID,
			Role:      claims.Role,
			IssuedAt:  claims.IssuedAt,
			ExpiresAt: claims.ExpiresAt,
		},
	})
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrMissingField):
		return "missing_field"
	default:
		return "error"
	}
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrSignatureInvalid):
		return "bad_signature"
	default:
		return "malformed"
	}
}

// verifyMessage collapses the verification error kinds into the two messages
// clients may see. Expiry is distinguishable (a client can re-login); the
// signature/structure kinds are not.
func verifyMessage(err error) string {
	if errors.Is(err, token.ErrExpired) {
		return "token expired"
	}
	return "invalid token"
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/travelblog/auth-service/internal/core/token"
)

// Context keys under which the guard exposes the authenticated identity to
// downstream handlers.
const (
	ContextSubjectID = "subject_id"
	ContextRole      = "role"
)

// Auth guards a route with token verification. A request without a
// well-formed `Authorization: Bearer <token>` header, or with a token the
// codec rejects, is answered 401 before the wrapped handler runs. The
// distinct verification error kinds are logged, never returned to the
// client. On success the subject id and role are injected into the echo
// context and the wrapped handler trusts them as authenticated.
func Auth(codec *token.Codec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Decode(parts[1])
			if err != nil {
				log.Debug().Err(err).
					Str("path", c.Path()).
					Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextSubjectID, claims.SubjectID)
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}

package ports

import (
	"context"

	"github.com/travelblog/auth-service/internal/core/token"
)

// AuthService orchestrates registration, login, and token verification.
type AuthService interface {
	// Register creates a new identity with the default role and returns
	// its id.
	Register(ctx context.Context, username, email, password string) (string, error)

	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, username, password string) (string, error)

	// Verify validates a token and returns its claims. Pure computation:
	// no store access, no I/O.
	Verify(tokenString string) (token.Claims, error)
}

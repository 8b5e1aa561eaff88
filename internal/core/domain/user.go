package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	// DefaultRole is assigned to every identity created through registration.
	DefaultRole = RoleUser
)

var (
	// ErrMissingField signals an incomplete registration payload.
	ErrMissingField = errors.New("missing required field")

	// ErrConflict signals a username or email that is already taken. The
	// reason is deliberately not split into username-vs-email.
	ErrConflict = errors.New("username or email already exists")

	// ErrInvalidCredentials is returned for both unknown usernames and
	// wrong passwords so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is a repository-level error; the auth service
	// collapses it into ErrInvalidCredentials before it leaves the core.
	ErrUserNotFound = errors.New("user not found")

	// ErrStoreUnavailable signals that the credential store could not be
	// reached. Mapped to 503 at the HTTP boundary, never retried here.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// User models a registered identity. The password digest never leaves the
// service in any response.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordDigest string    `json:"-"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

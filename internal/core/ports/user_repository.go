package ports

import (
	"context"

	"github.com/travelblog/auth-service/internal/core/domain"
)

// UserRepository defines the persistence contract for identities. The store
// itself enforces uniqueness of username and email; Create reports a
// constraint violation as domain.ErrConflict so two racing registrations can
// never both commit.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

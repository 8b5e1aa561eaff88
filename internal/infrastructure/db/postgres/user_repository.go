package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/travelblog/auth-service/internal/core/domain"
	"github.com/travelblog/auth-service/internal/infrastructure/db/postgres/models"
)

// UserRepository persists identities in the users table.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new identity row. The insert is a single statement, so a
// request aborted mid-flight either committed the row or left nothing
// behind. A unique-constraint violation (two registrations racing on the
// same username or email) maps to domain.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := models.User{
		ID:             uuid.NewString(),
		Username:       user.Username,
		Email:          user.Email,
		PasswordDigest: user.PasswordDigest,
		Role:           user.Role,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert user: %w", translateInfra(err))
	}

	return toDomain(&row), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).First(&row, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", translateInfra(err))
	}
	return toDomain(&row), nil
}

// ExistsByUsernameOrEmail reports whether either value is already taken, in
// one query. This is the registration fast path; the unique constraints
// remain the arbiter under concurrency.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("uniqueness check: %w", translateInfra(err))
	}
	return count > 0, nil
}

func toDomain(row *models.User) *domain.User {
	return &domain.User{
		ID:             row.ID,
		Username:       row.Username,
		Email:          row.Email,
		PasswordDigest: row.PasswordDigest,
		Role:           row.Role,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

// translateInfra folds connection-level failures into the store-unavailable
// kind so the HTTP layer can answer 503 instead of a generic 500.
func translateInfra(err error) error {
	if errors.Is(err, gorm.ErrInvalidDB) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return err
}

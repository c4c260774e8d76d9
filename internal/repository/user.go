// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Jins0l/ai-board-project/internal/database"
	"github.com/Jins0l/ai-board-project/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type userRepository struct {
	handle *database.Handle
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(handle *database.Handle) UserRepository {
	return &userRepository{handle: handle}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	db := r.handle.DB()
	if db == nil {
		return models.NewStoreUnavailableError()
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Username or email already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// GetByUsername returns the user with the given username, or (nil, nil) when
// no such user exists.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	db := r.handle.DB()
	if db == nil {
		return nil, models.NewStoreUnavailableError()
	}
	var user models.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	db := r.handle.DB()
	if db == nil {
		return nil, models.NewStoreUnavailableError()
	}
	var user models.User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505; SQLite phrasing covered for tests.
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

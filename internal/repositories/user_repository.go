package repositories

import (
	"errors"

	"pustaka/internal/models"
)

// Sentinel errors shared by all repository implementations. Services match
// on these instead of on store-specific error types.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

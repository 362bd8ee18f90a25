package repositories

import (
	"context"

	"github.com/devtrails/bootcamp-directory/internal/domain/entities"
)

// UserRepository defines the interface for user account operations
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// Update persists the full user row in a single statement
	Update(ctx context.Context, user *entities.User) error

	// Delete removes a user
	Delete(ctx context.Context, id string) error

	// List retrieves users
	List(ctx context.Context, limit, offset int) ([]*entities.User, error)
}

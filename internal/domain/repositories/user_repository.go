package repositories

import (
	"context"

	"github.com/carecost/predictor/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// List retrieves registered users (credentials excluded by callers)
	List(ctx context.Context, limit, offset int) ([]*entities.User, error)
}

package repository

import (
	"context"

	"journeys/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByEmailAndRole retrieves a user by the (email, role) tuple.
	GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)

	// GetByRole retrieves all users with the given role.
	GetByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)

	// Update persists changes to an existing user, including profile fields.
	Update(ctx context.Context, user *domain.User) error
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create creates a new user in the database.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsernameOrEmail retrieves a user matching either the name or the email.
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*entity.User, error)

	// ExistsByEmail checks whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *entity.User) error
}

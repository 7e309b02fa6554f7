package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByLogin finds a user by login
	FindByLogin(ctx context.Context, login string) (*User, error)

	// ExistsByID checks whether a user with the given ID exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}

package store

import (
	"context"

	"github.com/OPpuolitaival/tasklist/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry
	// a hashed password; plaintext never reaches the store layer.
	// Returns ErrUsernameExists if the username is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// This is the lookup the credential validator performs on every
	// authenticated request.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Update modifies an existing user's details. The caller provides a
	// complete user object including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUsernameExists if updating to a taken username.
	Update(ctx context.Context, user *domain.User) error

	// Deactivate clears the user's active flag. A deactivated user can
	// no longer authenticate; their rows are kept.
	// Returns ErrUserNotFound if the user does not exist.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// Delete removes a user from the store by their ID. The schema
	// cascades the delete to all tasks owned by the user.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

package store

import (
	"context"

	"github.com/OPpuolitaival/tasklist/internal/domain"
	"github.com/google/uuid"
)

// TaskStore defines the interface for task data persistence.
//
// Every read and mutation is scoped to an owning user ID, and
// implementations must compile that predicate into the same statement
// that touches the row. A task owned by someone else behaves exactly
// like a task that does not exist.
type TaskStore interface {
	// List returns all tasks owned by the given user, newest first
	// (descending creation timestamp).
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// Create saves a new task to the store. The task's UserID is the
	// owner stamped by the caller from the authenticated principal.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the task with the given ID if it is owned by
	// ownerID. Returns ErrTaskNotFound if the task is absent or owned
	// by a different user.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)

	// Update applies a partial update to the task with the given ID if
	// it is owned by ownerID, and returns the updated task. UpdatedAt
	// advances on every successful call, including an empty update.
	// Returns ErrTaskNotFound under the same ownership rule as GetByID.
	// Returns validation errors from the TaskUpdate if data is invalid.
	Update(ctx context.Context, ownerID, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)

	// Delete removes the task with the given ID if it is owned by
	// ownerID. Returns ErrTaskNotFound under the same ownership rule.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

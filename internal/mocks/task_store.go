package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/OPpuolitaival/tasklist/internal/domain"
	"github.com/OPpuolitaival/tasklist/internal/store"
	"github.com/google/uuid"
)

// MockTaskStore implements store.TaskStore for testing. The default
// implementation keeps tasks in a map and enforces the same ownership
// rule as the real store: someone else's task reads as not found.
type MockTaskStore struct {
	ListFn   func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)
	CreateFn func(ctx context.Context, task *domain.Task) error
	GetFn    func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	UpdateFn func(ctx context.Context, ownerID, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)
	DeleteFn func(ctx context.Context, ownerID, id uuid.UUID) error

	Tasks       map[uuid.UUID]*domain.Task
	CreateError error
	ListError   error
}

// NewMockTaskStore creates a new mock store with an empty task map.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

func (m *MockTaskStore) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}
	tasks := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.UserID == ownerID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.CreateError != nil {
		return m.CreateError
	}
	if err := task.Validate(); err != nil {
		return err
	}
	m.Tasks[task.ID] = task
	return nil
}

func (m *MockTaskStore) GetByID(
	ctx context.Context,
	ownerID, id uuid.UUID,
) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, ownerID, id)
	}
	task, exists := m.Tasks[id]
	if !exists || task.UserID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

func (m *MockTaskStore) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, id, update)
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	task, exists := m.Tasks[id]
	if !exists || task.UserID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	task.UpdatedAt = time.Now().UTC()
	return task, nil
}

func (m *MockTaskStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}
	task, exists := m.Tasks[id]
	if !exists || task.UserID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Task validation errors
var (
	ErrEmptyTaskID      = errors.New("task ID cannot be empty")
	ErrTaskNoOwner      = errors.New("task must have an owner")
	ErrEmptyTaskTitle   = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong = errors.New("task title must be at most 200 characters long")
)

// MaxTaskTitleLength is the upper bound on task title length, matching
// the varchar(200) column in the tasks table.
const MaxTaskTitleLength = 200

// Task represents a single to-do item owned by exactly one user.
// The owner is set at creation time and never changes afterwards;
// CreatedAt and UpdatedAt are server-assigned and read-only for clients.
type Task struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"-"` // Owner; never exposed or client-settable
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user.
// Description defaults to the empty string and Completed to false when
// the zero values are passed. Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, description string, completed bool) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrTaskNoOwner
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(t.Title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}
	return nil
}

// TaskUpdate carries the mutable fields of a partial task update.
// Nil pointers mean "leave unchanged". Owner and timestamps are not
// representable here: clients cannot modify them.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Validate checks the fields that are present.
func (u TaskUpdate) Validate() error {
	if u.Title != nil {
		if *u.Title == "" {
			return ErrEmptyTaskTitle
		}
		if utf8.RuneCountInString(*u.Title) > MaxTaskTitleLength {
			return ErrTaskTitleTooLong
		}
	}
	return nil
}

// IsEmpty reports whether the update carries no field changes.
// An empty update is still a valid mutation; it only advances UpdatedAt.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}

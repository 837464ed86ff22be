package task

import (
	"context"
)

// MaxTitleLength is the longest title, in characters, a stored task may have.
const MaxTitleLength = 100

// Task is a to-do item. An ID of zero or less means the task has not been
// persisted.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Store is the contract for task persistence.
type Store interface {
	// EnsureTable creates the tasks table if it doesn't exist.
	EnsureTable(ctx context.Context) error

	// Add inserts t, ignoring t.ID, and returns the assigned id.
	Add(ctx context.Context, t *Task) (int64, error)

	// Update overwrites the row matching t.ID. A missing row is reported
	// as a not-found error.
	Update(ctx context.Context, t *Task) (bool, error)

	// Delete removes the row with the given id. A missing row is reported
	// as a not-found error.
	Delete(ctx context.Context, id int64) (bool, error)

	Get(ctx context.Context, id int64) (*Task, error)
	List(ctx context.Context) ([]Task, error)
}

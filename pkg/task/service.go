package task

import (
	"context"
	"unicode/utf8"
)

// Service enforces the business rules for tasks and is the only layer that
// decides whether input is acceptable.
type Service struct {
	store Store
}

// NewService creates a Service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates title and stores a new, incomplete task. It returns the
// id assigned by the store.
func (s *Service) Create(ctx context.Context, title, description string) (int64, error) {
	if err := validateTitle(title); err != nil {
		return 0, err
	}
	t := &Task{Title: title, Description: description}
	return s.store.Add(ctx, t)
}

// Update overwrites title, description and completed of an existing task.
// It returns false, without error, when the task does not exist.
func (s *Service) Update(ctx context.Context, id int64, title, description string, completed bool) (bool, error) {
	if id <= 0 {
		return false, validationError("Invalid task ID")
	}
	if err := validateTitle(title); err != nil {
		return false, err
	}

	existing, err := s.store.Get(ctx, id)
	if IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	updated := *existing
	updated.Title = title
	updated.Description = description
	updated.Completed = completed

	ok, err := s.store.Update(ctx, &updated)
	if IsNotFound(err) {
		// deleted between the read and the write
		return false, nil
	}
	return ok, err
}

// Delete removes a task. It returns false, without error, when the task does
// not exist.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, validationError("Invalid task ID")
	}
	ok, err := s.store.Delete(ctx, id)
	if IsNotFound(err) {
		return false, nil
	}
	return ok, err
}

// Get returns the task with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*Task, error) {
	if id <= 0 {
		return nil, validationError("Invalid task ID")
	}
	t, err := s.store.Get(ctx, id)
	if IsNotFound(err) {
		return nil, &Error{Kind: KindNotFound, Err: ErrNotFound}
	}
	if err != nil {
		return nil, err
	}
	if t == nil || t.ID <= 0 {
		return nil, &Error{Kind: KindNotFound, Err: ErrNotFound}
	}
	return t, nil
}

// List returns every task.
func (s *Service) List(ctx context.Context) ([]Task, error) {
	return s.store.List(ctx)
}

func validateTitle(title string) error {
	if title == "" {
		return validationError("Task title cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return validationError("Task title too long (max 100 chars)")
	}
	return nil
}

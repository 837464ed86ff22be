package task

import (
	"errors"
	"fmt"
)

// Kind classifies a task error.
type Kind uint8

const (
	KindUnknown    Kind = iota
	KindValidation // caller input breaks a business rule
	KindNotFound   // the task does not exist
	KindStore      // persistence failure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	}
	return "unknown"
}

// ErrNotFound is wrapped by every not-found error the store returns.
var ErrNotFound = errors.New("Task not found")

// Error is a classified failure from the service or the store.
type Error struct {
	Kind Kind
	Op   string // operation, may be empty
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnknown
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether err means the task does not exist.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Err: errors.New(msg)}
}

func notFoundError(id int64) error {
	return &Error{Kind: KindNotFound, Err: fmt.Errorf("%w with id: %d", ErrNotFound, id)}
}

func storeError(op string, err error) error {
	return &Error{Kind: KindStore, Op: op, Err: err}
}

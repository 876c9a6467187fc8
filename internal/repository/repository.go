// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres).
package repository

import (
	"context"
	"fmt"

	"cardsapi/internal/model"
)

// VisitRepository defines data access for the enterence table.
// Strictly persistence operations, no business logic.
type VisitRepository interface {
	// First returns the first row in storage order. No ordering is applied,
	// so which row comes back is up to the database. ok is false when the table is empty.
	First(ctx context.Context) (v model.Visit, ok bool, err error)

	// Create inserts a new row and returns it with its assigned ID.
	Create(ctx context.Context, v *model.Visit) (*model.Visit, error)

	// List returns all rows in unspecified order. The slice is never nil.
	List(ctx context.Context) ([]model.Visit, error)

	// InTx runs fn against a repository bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(VisitRepository) error) error
}

// ReviewRepository defines data access for the reviews table.
type ReviewRepository interface {
	// Create inserts a new review and returns it with its assigned ID.
	Create(ctx context.Context, r *model.Review) (*model.Review, error)

	// List returns all reviews, most recent first.
	List(ctx context.Context) ([]model.Review, error)
}

// StorageError reports a failed database operation.
// Err is the driver error, unchanged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Wrap returns nil for a nil err, otherwise a *StorageError for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

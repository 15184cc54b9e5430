package repository

import (
	"context"
	"errors"

	"github.com/taskflow/taskflow-api/internal/domain/entity"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write violates a uniqueness constraint,
// e.g. two concurrent registrations racing on the same email.
var ErrConflict = errors.New("conflict")

// ListRepository persists TodoList aggregates. Create and Replace write the
// list row and its full task set in a single transaction; Replace swaps the
// stored task collection for the one on the given aggregate.
type ListRepository interface {
	Create(ctx context.Context, l *entity.TodoList) error
	GetByID(ctx context.Context, id string) (*entity.TodoList, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.TodoList, error)
	Replace(ctx context.Context, l *entity.TodoList) error
	Delete(ctx context.Context, id string) error
}

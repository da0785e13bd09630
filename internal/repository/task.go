package repository

import (
	"context"

	"legalapi/internal/model"
)

// TaskRepository is the append-only store behind the task register.
type TaskRepository interface {
	// Append inserts a new todo item.
	Append(ctx context.Context, item *model.TodoItem) error

	// ListAll returns every registered item, newest first.
	ListAll(ctx context.Context) ([]model.TodoItem, error)
}

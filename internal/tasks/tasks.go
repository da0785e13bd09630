// Package tasks is the append-only todo register the assistant writes
// follow-up items into.
package tasks

import (
	"context"
	"fmt"
	"time"

	"legalapi/internal/model"
	"legalapi/internal/repository"
)

// Fallbacks applied when the caller omits a field.
const (
	DefaultEmailAddress  = "none provided"
	DefaultDescription   = "No description provided"
	DefaultContext       = "No context provided"
	DefaultDocumentTitle = "No document specified"
	DefaultStatus        = "pending"
)

// AddRequest carries the caller-supplied fields of a new todo item. Every
// field is optional; absent fields take the defaults above.
type AddRequest struct {
	EmailAddress    string
	TaskDescription string
	EmailContext    string
	DocumentTitle   string
	Status          string
}

// Register defines the task register use cases.
type Register interface {
	// Add appends a new item, filling defaults for omitted fields.
	Add(ctx context.Context, req AddRequest) (*model.TodoItem, error)

	// List returns all registered items, newest first.
	List(ctx context.Context) ([]model.TodoItem, error)
}

type register struct {
	repo repository.TaskRepository
}

// NewRegister constructs a Register backed by the given repository.
func NewRegister(repo repository.TaskRepository) Register {
	return &register{repo: repo}
}

func (r *register) Add(ctx context.Context, req AddRequest) (*model.TodoItem, error) {
	item := &model.TodoItem{
		EmailAddress:    orDefault(req.EmailAddress, DefaultEmailAddress),
		TaskDescription: orDefault(req.TaskDescription, DefaultDescription),
		EmailContext:    orDefault(req.EmailContext, DefaultContext),
		DocumentTitle:   orDefault(req.DocumentTitle, DefaultDocumentTitle),
		Status:          orDefault(req.Status, DefaultStatus),
		CreatedAt:       time.Now().UTC(),
	}

	if err := r.repo.Append(ctx, item); err != nil {
		return nil, fmt.Errorf("registering task: %w", err)
	}
	return item, nil
}

func (r *register) List(ctx context.Context) ([]model.TodoItem, error) {
	items, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return items, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

package postgres

import (
	"context"
	"database/sql"

	"legalapi/internal/model"
	"legalapi/internal/repository"
)

// TaskPostgres is a PostgreSQL implementation of repository.TaskRepository.
type TaskPostgres struct {
	db *sql.DB
}

// NewTaskPostgres creates a new TaskPostgres repository.
func NewTaskPostgres(db *sql.DB) *TaskPostgres {
	return &TaskPostgres{db: db}
}

var _ repository.TaskRepository = (*TaskPostgres)(nil)

// Append inserts a new todo item row.
func (r *TaskPostgres) Append(ctx context.Context, item *model.TodoItem) error {
	const q = `
		INSERT INTO todo_items (email_address, task_description, email_context, document_title, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, q,
		item.EmailAddress,
		item.TaskDescription,
		item.EmailContext,
		item.DocumentTitle,
		item.Status,
		item.CreatedAt,
	)
	return err
}

// ListAll returns every todo item, newest first.
func (r *TaskPostgres) ListAll(ctx context.Context) ([]model.TodoItem, error) {
	const q = `
		SELECT id, email_address, task_description, email_context, document_title, status, created_at
		FROM todo_items
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TodoItem, 0)
	for rows.Next() {
		var it model.TodoItem
		if err := rows.Scan(
			&it.ID,
			&it.EmailAddress,
			&it.TaskDescription,
			&it.EmailContext,
			&it.DocumentTitle,
			&it.Status,
			&it.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

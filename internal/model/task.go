package model

import "time"

// TodoItem is one entry in the append-only task register.
type TodoItem struct {
	ID              int64     `json:"id"`
	EmailAddress    string    `json:"email_address"`
	TaskDescription string    `json:"task_description"`
	EmailContext    string    `json:"email_context"`
	DocumentTitle   string    `json:"document_title"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

package repository

import (
	"context"

	"legalapi/internal/model"
)

// DocumentRepository defines data access for document metadata records using
// SQL queries only. No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document metadata record.
	// The caller provides all fields including ID and timestamps.
	Create(ctx context.Context, doc *model.Document) error

	// FindByID returns a document by its ID, or sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindByName returns the most recently uploaded active document whose name
	// matches (case-insensitive), or sql.ErrNoRows when absent.
	FindByName(ctx context.Context, name string) (*model.Document, error)

	// ListActive returns all records with status=active, optionally narrowed
	// to the given document type, ordered by upload date descending.
	ListActive(ctx context.Context, typeFilter string) ([]model.Document, error)
}

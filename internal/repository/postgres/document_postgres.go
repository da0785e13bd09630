package postgres

import (
	"context"
	"database/sql"

	"legalapi/internal/model"
	"legalapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `document_id, document_name, document_type, document_content,
		file_path, blob_key, content_size, upload_date, last_modified, analysis_results, status`

// Create inserts a new document metadata row.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) error {
	const q = `
		INSERT INTO documents (document_id, document_name, document_type, document_content,
			file_path, blob_key, content_size, upload_date, last_modified, analysis_results, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, q,
		doc.ID,
		doc.Name,
		doc.Type,
		doc.Content,
		doc.FilePath,
		doc.BlobKey,
		doc.ContentSize,
		doc.UploadDate,
		doc.LastModified,
		doc.AnalysisResults,
		doc.Status,
	)
	return err
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE document_id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// FindByName fetches the most recently uploaded active document matching the
// given name, case-insensitively.
func (r *DocumentPostgres) FindByName(ctx context.Context, name string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE lower(document_name) = lower($1) AND status = $2
		ORDER BY upload_date DESC
		LIMIT 1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, name, model.StatusActive))
}

// ListActive returns all active documents, optionally filtered by type,
// newest first.
func (r *DocumentPostgres) ListActive(ctx context.Context, typeFilter string) ([]model.Document, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if typeFilter != "" {
		const q = `
			SELECT ` + documentColumns + `
			FROM documents
			WHERE status = $1 AND document_type = $2
			ORDER BY upload_date DESC, document_id DESC
		`
		rows, err = r.db.QueryContext(ctx, q, model.StatusActive, typeFilter)
	} else {
		const q = `
			SELECT ` + documentColumns + `
			FROM documents
			WHERE status = $1
			ORDER BY upload_date DESC, document_id DESC
		`
		rows, err = r.db.QueryContext(ctx, q, model.StatusActive)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Type,
			&d.Content,
			&d.FilePath,
			&d.BlobKey,
			&d.ContentSize,
			&d.UploadDate,
			&d.LastModified,
			&d.AnalysisResults,
			&d.Status,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Type,
		&d.Content,
		&d.FilePath,
		&d.BlobKey,
		&d.ContentSize,
		&d.UploadDate,
		&d.LastModified,
		&d.AnalysisResults,
		&d.Status,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

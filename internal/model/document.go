package model

import "time"

// Document status values. Only StatusActive is produced today; StatusDeleted is
// reserved for a future soft-delete operation.
const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Defaults applied when the caller omits the optional save parameters.
const (
	DefaultDocumentType    = "legal_document"
	DefaultAnalysisResults = "No analysis performed"
)

// Document is the persisted metadata record for a stored document.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, docstore, repository) without coupling to persistence.
//
// Exactly one content locator is populated, matching the configured backend:
// Content (inline), FilePath (filesystem), or BlobKey (object store).
// ContentSize always equals the exact stored byte length, post-truncation if
// truncation occurred.
type Document struct {
	ID              string    `json:"document_id"`
	Name            string    `json:"document_name"`
	Type            string    `json:"document_type"`
	Content         string    `json:"document_content,omitempty"`
	FilePath        string    `json:"file_path,omitempty"`
	BlobKey         string    `json:"blob_key,omitempty"`
	ContentSize     int64     `json:"content_size"`
	UploadDate      time.Time `json:"upload_date"`
	LastModified    time.Time `json:"last_modified"`
	AnalysisResults string    `json:"analysis_results"`
	Status          string    `json:"status"`
}

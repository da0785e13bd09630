// Package docstore implements the document persistence core: one Store
// interface over three interchangeable content backends (inline, filesystem,
// object store) sharing a single metadata schema and size/preview policies.
package docstore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"legalapi/internal/action"
	"legalapi/internal/config"
	"legalapi/internal/model"
	"legalapi/internal/repository"
	"legalapi/internal/storage"
)

const (
	// MaxInlineContentBytes is the hard ceiling for content stored inline in
	// the metadata row. Oversized content is truncated, never rejected.
	MaxInlineContentBytes = 350000

	// TruncationMarker is appended to inline content cut at the ceiling.
	TruncationMarker = "\n\n[CONTENT TRUNCATED - Document exceeds DynamoDB size limit]"

	// BinaryPreview replaces the content preview when the stored bytes do not
	// decode as UTF-8 text.
	BinaryPreview = "[Binary file - cannot preview]"

	// previewLimit is the number of bytes shown by Get.
	previewLimit = 200

	// maxListEntries caps how many documents List returns for display. The
	// reported total is always the full filtered count.
	maxListEntries = 10
)

// ErrNotFound reports that no metadata record exists for the requested ID.
// Callers surface it as a successful "not found" response, not a failure.
var ErrNotFound = errors.New("document not found")

// SaveRequest carries the parameters of a save operation. Name and Content
// are required; Type and Analysis are defaulted when empty.
type SaveRequest struct {
	Name     string
	Content  string
	Type     string
	Analysis string
}

// GetResult is the outcome of a successful metadata lookup.
type GetResult struct {
	Doc         *model.Document
	Preview     string
	Truncated   bool // stored content extends past the preview
	FileMissing bool // filesystem backend: metadata present but file gone
}

// ListEntry is one row of a list result. FileExists is set only by the
// filesystem backend.
type ListEntry struct {
	Doc        model.Document
	FileExists *bool
}

// ListResult is the outcome of a list operation. Entries holds at most ten
// documents; Total is the full filtered count.
type ListResult struct {
	Entries []ListEntry
	Total   int
}

// Store is the document persistence interface shared by all backends.
type Store interface {
	// Save persists content and its metadata record, returning the new record.
	Save(ctx context.Context, req SaveRequest) (*model.Document, error)

	// Get looks up a record by ID and reads a content preview.
	// Returns ErrNotFound when no record exists.
	Get(ctx context.Context, id string) (*GetResult, error)

	// List returns active records, optionally filtered by document type,
	// newest first.
	List(ctx context.Context, typeFilter string) (*ListResult, error)

	// Fetch returns a record together with its full stored content.
	// Returns ErrNotFound when no record exists.
	Fetch(ctx context.Context, id string) (*model.Document, []byte, error)
}

// New selects the configured backend implementation.
func New(cfg config.DocumentsConfig, repo repository.DocumentRepository, objStore storage.Storage) (Store, error) {
	switch cfg.Backend {
	case config.BackendInline:
		return NewInlineStore(repo), nil
	case config.BackendFilesystem:
		return NewFilesystemStore(cfg.Root, repo)
	case config.BackendBlob:
		if objStore == nil {
			return nil, fmt.Errorf("blob backend requires object storage")
		}
		return NewBlobStore(objStore, repo), nil
	default:
		return nil, fmt.Errorf("unknown document backend: %s", cfg.Backend)
	}
}

// validateSave enforces the required save parameters before any side effect.
func validateSave(req SaveRequest) error {
	if req.Name == "" {
		return action.Validationf("document name is required")
	}
	if req.Content == "" {
		return action.Validationf("document content is required")
	}
	return nil
}

// newRecord builds a metadata record with a fresh ID, UTC timestamps and the
// shared defaults applied.
func newRecord(req SaveRequest) *model.Document {
	now := time.Now().UTC()

	docType := req.Type
	if docType == "" {
		docType = model.DefaultDocumentType
	}
	analysis := req.Analysis
	if analysis == "" {
		analysis = model.DefaultAnalysisResults
	}

	return &model.Document{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Type:            docType,
		UploadDate:      now,
		LastModified:    now,
		AnalysisResults: analysis,
		Status:          model.StatusActive,
	}
}

// decodeContent interprets the content parameter: valid base64 is decoded to
// raw bytes (binary uploads), anything else is taken as UTF-8 text. Short
// strings are never treated as base64 to limit false positives.
func decodeContent(content string) []byte {
	if len(content) >= 8 && len(content)%4 == 0 {
		if b, err := base64.StdEncoding.DecodeString(content); err == nil {
			return b
		}
	}
	return []byte(content)
}

// truncateUTF8 cuts s to at most limit bytes without splitting a multi-byte
// character.
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}

// preview returns up to previewLimit bytes of content as text, whether more
// content follows, and whether the bytes decode as UTF-8 at all.
func preview(content []byte) (text string, truncated, binary bool) {
	truncated = len(content) > previewLimit
	head := content
	if truncated {
		head = content[:previewLimit]
		// Drop a trailing partial rune introduced by the byte cut.
		for i := 0; i < utf8.UTFMax-1 && len(head) > 0 && !utf8.Valid(head); i++ {
			head = head[:len(head)-1]
		}
	}
	if !utf8.Valid(head) {
		return "", truncated, true
	}
	return string(head), truncated, false
}

// capEntries wraps documents into list entries, limiting display to
// maxListEntries while preserving the full count.
func capEntries(docs []model.Document) *ListResult {
	total := len(docs)
	shown := docs
	if len(shown) > maxListEntries {
		shown = shown[:maxListEntries]
	}
	entries := make([]ListEntry, 0, len(shown))
	for _, d := range shown {
		entries = append(entries, ListEntry{Doc: d})
	}
	return &ListResult{Entries: entries, Total: total}
}

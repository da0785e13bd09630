package docstore

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"legalapi/internal/model"
	"legalapi/internal/repository"
	"legalapi/internal/storage"
)

// BlobStore keeps document bytes in S3-compatible object storage under
// documents/<documentId>/<documentName> and metadata in the repository.
type BlobStore struct {
	store storage.Storage
	repo  repository.DocumentRepository
}

// NewBlobStore creates the object storage backend.
func NewBlobStore(store storage.Storage, repo repository.DocumentRepository) *BlobStore {
	return &BlobStore{store: store, repo: repo}
}

var _ Store = (*BlobStore)(nil)

func (s *BlobStore) Save(ctx context.Context, req SaveRequest) (*model.Document, error) {
	if err := validateSave(req); err != nil {
		return nil, err
	}

	doc := newRecord(req)
	key := path.Join("documents", doc.ID, req.Name)
	data := decodeContent(req.Content)

	_, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "application/octet-stream",
		Metadata: map[string]string{
			"document-id":      doc.ID,
			"document-type":    doc.Type,
			"upload-date":      doc.UploadDate.Format(time.RFC3339),
			"analysis-results": doc.AnalysisResults,
			"status":           doc.Status,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("uploading document content: %w", err)
	}

	doc.BlobKey = key
	doc.ContentSize = int64(len(data))

	// Metadata write happens after the content write; on failure the
	// just-written object must not be left orphaned.
	if err := s.repo.Create(ctx, doc); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("saving document metadata: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("saving document metadata: %w", err)
	}
	return doc, nil
}

func (s *BlobStore) Get(ctx context.Context, id string) (*GetResult, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("retrieving document: %w", err)
	}

	rc, _, err := s.store.Get(ctx, doc.BlobKey)
	if err != nil {
		return nil, fmt.Errorf("fetching document content: %w", err)
	}
	defer rc.Close()

	head := make([]byte, previewLimit)
	n, err := io.ReadFull(rc, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading document content: %w", err)
	}

	text, _, binary := preview(head[:n])
	if binary {
		text = BinaryPreview
	}
	return &GetResult{
		Doc:       doc,
		Preview:   text,
		Truncated: doc.ContentSize > previewLimit,
	}, nil
}

func (s *BlobStore) List(ctx context.Context, typeFilter string) (*ListResult, error) {
	docs, err := s.repo.ListActive(ctx, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return capEntries(docs), nil
}

func (s *BlobStore) Fetch(ctx context.Context, id string) (*model.Document, []byte, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("retrieving document: %w", err)
	}

	rc, _, err := s.store.Get(ctx, doc.BlobKey)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching document content: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("reading document content: %w", err)
	}
	return doc, data, nil
}

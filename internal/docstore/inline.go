package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"legalapi/internal/model"
	"legalapi/internal/repository"
)

// InlineStore keeps document content inside the metadata record itself.
// Content larger than MaxInlineContentBytes is truncated on a rune boundary
// and marked; the stored size reflects the truncated length.
type InlineStore struct {
	repo repository.DocumentRepository
}

// NewInlineStore creates the inline-content backend.
func NewInlineStore(repo repository.DocumentRepository) *InlineStore {
	return &InlineStore{repo: repo}
}

var _ Store = (*InlineStore)(nil)

func (s *InlineStore) Save(ctx context.Context, req SaveRequest) (*model.Document, error) {
	if err := validateSave(req); err != nil {
		return nil, err
	}

	content := req.Content
	if len(content) > MaxInlineContentBytes {
		content = truncateUTF8(content, MaxInlineContentBytes) + TruncationMarker
	}

	doc := newRecord(req)
	doc.Content = content
	doc.ContentSize = int64(len(content))

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("saving document: %w", err)
	}
	return doc, nil
}

func (s *InlineStore) Get(ctx context.Context, id string) (*GetResult, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("retrieving document: %w", err)
	}

	text, truncated, _ := preview([]byte(doc.Content))
	return &GetResult{Doc: doc, Preview: text, Truncated: truncated}, nil
}

func (s *InlineStore) List(ctx context.Context, typeFilter string) (*ListResult, error) {
	docs, err := s.repo.ListActive(ctx, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return capEntries(docs), nil
}

func (s *InlineStore) Fetch(ctx context.Context, id string) (*model.Document, []byte, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("retrieving document: %w", err)
	}
	return doc, []byte(doc.Content), nil
}

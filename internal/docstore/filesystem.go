package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"legalapi/internal/model"
	"legalapi/internal/repository"
)

// FilesystemStore writes document bytes to a mounted directory, one
// subdirectory per document ID, and keeps metadata in the repository.
// Layout: <root>/<documentId>/<documentName>
type FilesystemStore struct {
	root string
	repo repository.DocumentRepository
}

// NewFilesystemStore creates the filesystem backend rooted at the given path,
// creating the root directory if missing.
func NewFilesystemStore(root string, repo repository.DocumentRepository) (*FilesystemStore, error) {
	if root == "" {
		return nil, fmt.Errorf("filesystem backend requires a documents root")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create documents root: %w", err)
	}
	return &FilesystemStore{root: root, repo: repo}, nil
}

var _ Store = (*FilesystemStore)(nil)

func (s *FilesystemStore) Save(ctx context.Context, req SaveRequest) (*model.Document, error) {
	if err := validateSave(req); err != nil {
		return nil, err
	}

	doc := newRecord(req)
	dir := filepath.Join(s.root, doc.ID)
	path := filepath.Join(dir, filepath.Base(req.Name))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create document directory: %w", err)
	}

	data := decodeContent(req.Content)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.cleanup(path, dir)
		return nil, fmt.Errorf("writing document file: %w", err)
	}

	doc.FilePath = path
	doc.ContentSize = int64(len(data))

	// Metadata write happens after the content write; on failure the
	// just-written file must not be left orphaned.
	if err := s.repo.Create(ctx, doc); err != nil {
		s.cleanup(path, dir)
		return nil, fmt.Errorf("saving document metadata: %w", err)
	}
	return doc, nil
}

// cleanup removes the content file and its per-document directory,
// best-effort.
func (s *FilesystemStore) cleanup(path, dir string) {
	_ = os.Remove(path)
	_ = os.Remove(dir)
}

func (s *FilesystemStore) Get(ctx context.Context, id string) (*GetResult, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("retrieving document: %w", err)
	}

	f, err := os.Open(doc.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &GetResult{Doc: doc, FileMissing: true}, nil
		}
		return nil, fmt.Errorf("opening document file: %w", err)
	}
	defer f.Close()

	head := make([]byte, previewLimit)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading document file: %w", err)
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

func (s *FilesystemStore) List(ctx context.Context, typeFilter string) (*ListResult, error) {
	docs, err := s.repo.ListActive(ctx, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	res := capEntries(docs)
	for i := range res.Entries {
		_, statErr := os.Stat(res.Entries[i].Doc.FilePath)
		exists := statErr == nil
		res.Entries[i].FileExists = &exists
	}
	return res, nil
}

func (s *FilesystemStore) Fetch(ctx context.Context, id string) (*model.Document, []byte, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("retrieving document: %w", err)
	}

	data, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading document file: %w", err)
	}
	return doc, data, nil
}

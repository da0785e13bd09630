package docstore

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"legalapi/internal/model"
	repoMocks "legalapi/internal/repository/mocks"
	"legalapi/internal/storage"
	storeMocks "legalapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBlobSave(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads then records metadata", func(t *testing.T) {
		objStore := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockDocumentRepository)

		objStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, "/contract.txt")
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.Metadata["document-type"] == model.DefaultDocumentType &&
				opt.Metadata["status"] == model.StatusActive &&
				opt.Metadata["document-id"] != ""
		})).Return(storage.ObjectInfo{}, nil)

		repo.On("Create", ctx, mock.MatchedBy(func(d *model.Document) bool {
			return d.BlobKey != "" && d.ContentSize == int64(len("Parties agree..."))
		})).Return(nil)

		doc, err := NewBlobStore(objStore, repo).Save(ctx, SaveRequest{
			Name:    "contract.txt",
			Content: "Parties agree...",
		})

		require.NoError(t, err)
		assert.Contains(t, doc.BlobKey, doc.ID)
		objStore.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("metadata failure rolls back the object", func(t *testing.T) {
		objStore := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockDocumentRepository)

		objStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))
		objStore.On("Delete", ctx, mock.Anything).Return(nil)

		_, err := NewBlobStore(objStore, repo).Save(ctx, SaveRequest{Name: "a.txt", Content: "x"})

		assert.ErrorContains(t, err, "saving document metadata")
		objStore.AssertCalled(t, "Delete", ctx, mock.Anything)
	})

	t.Run("rollback failure is reported alongside the cause", func(t *testing.T) {
		objStore := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockDocumentRepository)

		objStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))
		objStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete failed"))

		_, err := NewBlobStore(objStore, repo).Save(ctx, SaveRequest{Name: "a.txt", Content: "x"})

		assert.ErrorContains(t, err, "rollback delete failed")
	})

	t.Run("upload failure stops before metadata", func(t *testing.T) {
		objStore := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockDocumentRepository)

		objStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("bucket gone"))

		_, err := NewBlobStore(objStore, repo).Save(ctx, SaveRequest{Name: "a.txt", Content: "x"})

		assert.ErrorContains(t, err, "uploading document content")
		repo.AssertNotCalled(t, "Create")
	})
}

func TestBlobGet(t *testing.T) {
	ctx := context.Background()

	t.Run("reads preview from object store", func(t *testing.T) {
		objStore := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockDocumentRepository)

		repo.On("FindByID", ctx, "doc-1").Return(&model.Document{
			ID: "doc-1", Name: "a.txt", BlobKey: "documents/doc-1/a.txt", ContentSize: 5,
		}, nil)
		objStore.On("Get", ctx, "documents/doc-1/a.txt").
			Return(io.NopCloser(strings.NewReader("hello")), storage.ObjectInfo{Size: 5}, nil)

		res, err := NewBlobStore(objStore, repo).Get(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "hello", res.Preview)
		assert.False(t, res.Truncated)
	})

	t.Run("absent record yields ErrNotFound", func(t *testing.T) {
		objStore := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockDocumentRepository)
		repo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := NewBlobStore(objStore, repo).Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("object fetch failure is wrapped", func(t *testing.T) {
		objStore := new(storeMocks.MockStorage)
		repo := new(repoMocks.MockDocumentRepository)

		repo.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1", BlobKey: "k"}, nil)
		objStore.On("Get", ctx, "k").Return(nil, storage.ObjectInfo{}, errors.New("object gone"))

		_, err := NewBlobStore(objStore, repo).Get(ctx, "doc-1")
		assert.ErrorContains(t, err, "fetching document content")
	})
}

func TestBlobFetch(t *testing.T) {
	ctx := context.Background()
	objStore := new(storeMocks.MockStorage)
	repo := new(repoMocks.MockDocumentRepository)

	repo.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1", BlobKey: "k"}, nil)
	objStore.On("Get", ctx, "k").
		Return(io.NopCloser(strings.NewReader("full content")), storage.ObjectInfo{Size: 12}, nil)

	doc, data, err := NewBlobStore(objStore, repo).Fetch(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "full content", string(data))
}

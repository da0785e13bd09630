package docstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"legalapi/internal/action"
	"legalapi/internal/config"
	"legalapi/internal/model"
	repoMocks "legalapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsBackend(t *testing.T) {
	repo := new(repoMocks.MockDocumentRepository)

	t.Run("inline", func(t *testing.T) {
		s, err := New(config.DocumentsConfig{Backend: config.BackendInline}, repo, nil)
		require.NoError(t, err)
		assert.IsType(t, &InlineStore{}, s)
	})

	t.Run("filesystem", func(t *testing.T) {
		s, err := New(config.DocumentsConfig{Backend: config.BackendFilesystem, Root: t.TempDir()}, repo, nil)
		require.NoError(t, err)
		assert.IsType(t, &FilesystemStore{}, s)
	})

	t.Run("blob without storage", func(t *testing.T) {
		_, err := New(config.DocumentsConfig{Backend: config.BackendBlob}, repo, nil)
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(config.DocumentsConfig{Backend: "tape"}, repo, nil)
		assert.Error(t, err)
	})
}

func TestInlineSave(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path applies defaults", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(d *model.Document) bool {
			return d.Name == "contract.txt" &&
				d.Type == model.DefaultDocumentType &&
				d.AnalysisResults == model.DefaultAnalysisResults &&
				d.Status == model.StatusActive &&
				d.Content == "Parties agree..." &&
				d.ContentSize == int64(len("Parties agree...")) &&
				d.ID != ""
		})).Return(nil)

		doc, err := NewInlineStore(repo).Save(ctx, SaveRequest{
			Name:    "contract.txt",
			Content: "Parties agree...",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, doc.ID)
		assert.Equal(t, doc.UploadDate, doc.LastModified)
		repo.AssertExpectations(t)
	})

	t.Run("validation - empty name", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		_, err := NewInlineStore(repo).Save(ctx, SaveRequest{Content: "x"})
		assert.True(t, action.IsValidation(err))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("validation - empty content", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		_, err := NewInlineStore(repo).Save(ctx, SaveRequest{Name: "x"})
		assert.True(t, action.IsValidation(err))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("oversized content is truncated with marker", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		var stored *model.Document
		repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			stored = args.Get(1).(*model.Document)
		}).Return(nil)

		content := strings.Repeat("a", MaxInlineContentBytes+5000)
		_, err := NewInlineStore(repo).Save(ctx, SaveRequest{Name: "big.txt", Content: content})
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(stored.Content, TruncationMarker))
		assert.LessOrEqual(t, stored.ContentSize, int64(MaxInlineContentBytes+len(TruncationMarker)))
		assert.Equal(t, int64(len(stored.Content)), stored.ContentSize)
	})

	t.Run("truncation does not split a multi-byte character", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		var stored *model.Document
		repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
			stored = args.Get(1).(*model.Document)
		}).Return(nil)

		// 3-byte runes: the 350000-byte limit falls mid-rune, so the cut
		// must back up to the previous boundary.
		content := strings.Repeat("日", 150000)
		_, err := NewInlineStore(repo).Save(ctx, SaveRequest{Name: "utf8.txt", Content: content})
		require.NoError(t, err)

		body := strings.TrimSuffix(stored.Content, TruncationMarker)
		assert.True(t, strings.HasSuffix(body, "日"))
		assert.LessOrEqual(t, len(body), MaxInlineContentBytes)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := NewInlineStore(repo).Save(ctx, SaveRequest{Name: "a", Content: "b"})
		assert.ErrorContains(t, err, "saving document")
	})
}

func TestInlineSaveUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockDocumentRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	store := NewInlineStore(repo)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		doc, err := store.Save(ctx, SaveRequest{Name: "n", Content: "c"})
		require.NoError(t, err)
		assert.False(t, seen[doc.ID], "duplicate document id %s", doc.ID)
		seen[doc.ID] = true
	}
}

func TestInlineGet(t *testing.T) {
	ctx := context.Background()

	t.Run("preview is a prefix capped at 200 bytes", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		content := strings.Repeat("x", 300)
		repo.On("FindByID", ctx, "doc-1").Return(&model.Document{
			ID: "doc-1", Name: "a.txt", Content: content, ContentSize: 300,
		}, nil)

		res, err := NewInlineStore(repo).Get(ctx, "doc-1")
		require.NoError(t, err)
		assert.Len(t, res.Preview, 200)
		assert.True(t, strings.HasPrefix(content, res.Preview))
		assert.True(t, res.Truncated)
	})

	t.Run("short content is not marked truncated", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		repo.On("FindByID", ctx, "doc-2").Return(&model.Document{
			ID: "doc-2", Content: "short", ContentSize: 5,
		}, nil)

		res, err := NewInlineStore(repo).Get(ctx, "doc-2")
		require.NoError(t, err)
		assert.Equal(t, "short", res.Preview)
		assert.False(t, res.Truncated)
	})

	t.Run("absent record yields ErrNotFound", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		repo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := NewInlineStore(repo).Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("lookup failure is wrapped", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		repo.On("FindByID", ctx, "doc-3").Return(nil, errors.New("timeout"))

		_, err := NewInlineStore(repo).Get(ctx, "doc-3")
		assert.ErrorContains(t, err, "retrieving document")
	})
}

func TestInlineList(t *testing.T) {
	ctx := context.Background()

	t.Run("display capped at 10 with full count", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		docs := make([]model.Document, 14)
		for i := range docs {
			docs[i] = model.Document{ID: string(rune('a' + i)), Type: "contract"}
		}
		repo.On("ListActive", ctx, "contract").Return(docs, nil)

		res, err := NewInlineStore(repo).List(ctx, "contract")
		require.NoError(t, err)
		assert.Len(t, res.Entries, 10)
		assert.Equal(t, 14, res.Total)
	})

	t.Run("empty result", func(t *testing.T) {
		repo := new(repoMocks.MockDocumentRepository)
		repo.On("ListActive", ctx, "").Return([]model.Document{}, nil)

		res, err := NewInlineStore(repo).List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, res.Entries)
		assert.Zero(t, res.Total)
	})
}

func TestPreview(t *testing.T) {
	t.Run("binary content", func(t *testing.T) {
		_, _, binary := preview([]byte{0xff, 0xfe, 0x00, 0x01})
		assert.True(t, binary)
	})

	t.Run("cut does not split a rune", func(t *testing.T) {
		content := []byte(strings.Repeat("日", 100)) // 3 bytes each; 200 splits one
		text, truncated, binary := preview(content)
		assert.False(t, binary)
		assert.True(t, truncated)
		assert.True(t, strings.HasSuffix(text, "日"))
	})
}

func TestDecodeContent(t *testing.T) {
	t.Run("plain text passes through", func(t *testing.T) {
		assert.Equal(t, []byte("Parties agree..."), decodeContent("Parties agree..."))
	})

	t.Run("base64 payload is decoded", func(t *testing.T) {
		assert.Equal(t, []byte("binary data!"), decodeContent("YmluYXJ5IGRhdGEh"))
	})

	t.Run("short strings are never decoded", func(t *testing.T) {
		assert.Equal(t, []byte("abcd"), decodeContent("abcd"))
	})
}

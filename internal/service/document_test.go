package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"esignapi/internal/model"
	repoMocks "esignapi/internal/repository/mocks"
	"esignapi/internal/storage"
	storeMocks "esignapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testLinkBase = "https://sign.example.com"

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		filename   string
		size       int64
		setupMocks func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader
		wantErr    error
		wantErrMsg string
	}{
		{
			name:     "happy path",
			filename: "lease.pdf",
			size:     11,
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello world")
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "lease.pdf"},
				}).Return(storage.ObjectInfo{Key: "documents/uuid.pdf"}, nil)

				mDocs.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.Title == "Lease" &&
						doc.StoragePath == "documents/uuid.pdf" &&
						doc.Status == model.StatusDraft &&
						doc.PageCount == 3
				})).Return(&model.Document{ID: "gen-id", Status: model.StatusDraft}, nil)

				return r
			},
		},
		{
			name:     "validation error - nil reader",
			filename: "lease.pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:     "storage error",
			filename: "lease.pdf",
			size:     5,
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:     "repository error with successful rollback",
			filename: "lease.pdf",
			size:     5,
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mDocs.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:     "repository error with failed rollback",
			filename: "lease.pdf",
			size:     5,
			setupMocks: func(mStore *storeMocks.MockStorage, mDocs *repoMocks.MockDocumentRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
						return storage.ObjectInfo{Key: key}
					}, nil)
				mDocs.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mDocs := new(repoMocks.MockDocumentRepository)
			mRecipients := new(repoMocks.MockRecipientRepository)
			svc := NewDocumentService(mStore, mDocs, mRecipients, testLinkBase)

			r := tt.setupMocks(mStore, mDocs)

			doc, err := svc.Upload(ctx, r, "Lease", tt.filename, "application/pdf", tt.size, 3, nil)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			} else if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.Nil(t, doc)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, doc)
				assert.Equal(t, "gen-id", doc.ID)
			}
			mStore.AssertExpectations(t)
			mDocs.AssertExpectations(t)
		})
	}
}

func TestDocumentService_AddRecipients(t *testing.T) {
	ctx := context.Background()

	t.Run("creates recipients with signing links", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockDocumentRepository)
		mRecipients := new(repoMocks.MockRecipientRepository)
		svc := NewDocumentService(mStore, mDocs, mRecipients, testLinkBase)

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", Status: model.StatusDraft}, nil)
		mRecipients.On("CreateBatch", ctx, mock.MatchedBy(func(rcs []model.Recipient) bool {
			return len(rcs) == 2 &&
				rcs[0].Token != "" && rcs[1].Token != "" &&
				rcs[0].Token != rcs[1].Token &&
				rcs[0].Role == model.RoleSigner &&
				rcs[1].Role == model.RoleViewer
		})).Return(nil)

		out, err := svc.AddRecipients(ctx, "doc-1", []RecipientInput{
			{Name: "Alice", Email: "alice@example.com", Role: model.RoleSigner},
			{Name: "Bob", Email: "bob@example.com", Role: model.RoleViewer},
		})

		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Contains(t, out[0].SigningLink, "https://sign.example.com/sign/doc-1?token=")
		assert.Contains(t, out[0].SigningLink, out[0].Token)
		mRecipients.AssertExpectations(t)
	})

	t.Run("rejects non-draft documents", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mDocs := new(repoMocks.MockDocumentRepository)
		mRecipients := new(repoMocks.MockRecipientRepository)
		svc := NewDocumentService(mStore, mDocs, mRecipients, testLinkBase)

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", Status: model.StatusPending}, nil)

		_, err := svc.AddRecipients(ctx, "doc-1", []RecipientInput{
			{Name: "Alice", Email: "alice@example.com"},
		})
		assert.ErrorIs(t, err, ErrNotDraft)
	})

	t.Run("requires at least one recipient", func(t *testing.T) {
		svc := NewDocumentService(new(storeMocks.MockStorage), new(repoMocks.MockDocumentRepository), new(repoMocks.MockRecipientRepository), testLinkBase)
		_, err := svc.AddRecipients(ctx, "doc-1", nil)
		assert.ErrorIs(t, err, ErrNoRecipients)
	})
}

func TestDocumentService_Void(t *testing.T) {
	ctx := context.Background()

	t.Run("voids with a reason", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(new(storeMocks.MockStorage), mDocs, new(repoMocks.MockRecipientRepository), testLinkBase)

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", Status: model.StatusPending}, nil)
		reason := "terms changed"
		mDocs.On("UpdateStatus", ctx, "doc-1", model.StatusVoided, (*time.Time)(nil), &reason).
			Return(nil)

		assert.NoError(t, svc.Void(ctx, "doc-1", reason))
		mDocs.AssertExpectations(t)
	})

	t.Run("requires a reason", func(t *testing.T) {
		svc := NewDocumentService(new(storeMocks.MockStorage), new(repoMocks.MockDocumentRepository), new(repoMocks.MockRecipientRepository), testLinkBase)
		assert.ErrorIs(t, svc.Void(ctx, "doc-1", ""), ErrReasonRequired)
	})

	t.Run("rejects voiding a completed document", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(new(storeMocks.MockStorage), mDocs, new(repoMocks.MockRecipientRepository), testLinkBase)

		mDocs.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", Status: model.StatusCompleted}, nil)

		assert.ErrorIs(t, svc.Void(ctx, "doc-1", "too late"), ErrDocumentClosed)
	})

	t.Run("not found", func(t *testing.T) {
		mDocs := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(new(storeMocks.MockStorage), mDocs, new(repoMocks.MockRecipientRepository), testLinkBase)

		mDocs.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Void(ctx, "missing", "why"), ErrNotFound)
	})
}

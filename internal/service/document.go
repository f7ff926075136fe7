package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"esignapi/internal/model"
	"esignapi/internal/repository"
	"esignapi/internal/storage"
	"esignapi/internal/token"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("document not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrNotDraft        = errors.New("document is not in draft")
	ErrReasonRequired  = errors.New("a reason is required to void a document")
	ErrNoRecipients    = errors.New("at least one recipient is required")
	ErrDocumentClosed  = repository.ErrDocumentClosed
	ErrAlreadyComplete = repository.ErrAlreadyComplete
)

// RecipientInput is the request shape for adding a recipient at
// document setup time.
type RecipientInput struct {
	Name  string              `json:"name"`
	Email string              `json:"email"`
	Role  model.RecipientRole `json:"role"`
}

// RecipientWithLink pairs a created recipient with its signing link.
// The link (documentId + opaque token) is the recipient's sole
// credential; it is returned once here for delivery.
type RecipientWithLink struct {
	model.Recipient
	SigningLink string `json:"signing_link"`
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the document lifecycle use cases outside of
// field editing and signing.
type DocumentService interface {
	// Upload stores the file in object storage, saves the metadata row,
	// and rolls back storage if the DB save fails. The stored object key
	// is UUID + original extension under documents/.
	Upload(ctx context.Context, r io.Reader, title, originalFilename, contentType string, size int64, pageCount int, dealID *string) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// AddRecipients creates recipients on a draft document, each with a
	// freshly generated unguessable signing token.
	AddRecipients(ctx context.Context, documentID string, inputs []RecipientInput) ([]RecipientWithLink, error)

	// Void cancels a non-terminal document. Requires a reason; the row
	// is never physically deleted.
	Void(ctx context.Context, id, reason string) error

	// DownloadURL returns a presigned URL for the source file.
	DownloadURL(ctx context.Context, id string) (string, error)
}

type documentService struct {
	store       storage.Storage
	docs        repository.DocumentRepository
	recipients  repository.RecipientRepository
	linkBaseURL string
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, recipients repository.RecipientRepository, linkBaseURL string) DocumentService {
	return &documentService{
		store:       store,
		docs:        docs,
		recipients:  recipients,
		linkBaseURL: linkBaseURL,
	}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, title, originalFilename, contentType string, size int64, pageCount int, dealID *string) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if title == "" {
		title = originalFilename
	}
	if pageCount < 1 {
		pageCount = 1
	}

	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("documents", uuid.NewString()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.NewString(),
		Title:       title,
		StoragePath: objInfo.Key,
		PageCount:   pageCount,
		Status:      model.StatusDraft,
		DealID:      dealID,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.docs.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) AddRecipients(ctx context.Context, documentID string, inputs []RecipientInput) ([]RecipientWithLink, error) {
	if len(inputs) == 0 {
		return nil, ErrNoRecipients
	}
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != model.StatusDraft {
		return nil, ErrNotDraft
	}

	recipients := make([]model.Recipient, 0, len(inputs))
	for _, in := range inputs {
		if in.Name == "" || in.Email == "" {
			return nil, fmt.Errorf("recipient name and email are required")
		}
		role := in.Role
		if role == "" {
			role = model.RoleSigner
		}
		if role != model.RoleSigner && role != model.RoleViewer {
			return nil, fmt.Errorf("unknown recipient role %q", in.Role)
		}
		tok, err := token.New()
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, model.Recipient{
			ID:         uuid.NewString(),
			DocumentID: documentID,
			Name:       in.Name,
			Email:      in.Email,
			Role:       role,
			Status:     model.RecipientPending,
			Token:      tok,
		})
	}

	if err := s.recipients.CreateBatch(ctx, recipients); err != nil {
		return nil, fmt.Errorf("create recipients: %w", err)
	}

	out := make([]RecipientWithLink, 0, len(recipients))
	for _, rc := range recipients {
		out = append(out, RecipientWithLink{
			Recipient:   rc,
			SigningLink: token.SigningLink(s.linkBaseURL, documentID, rc.Token),
		})
	}
	return out, nil
}

func (s *documentService) Void(ctx context.Context, id, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !doc.Status.CanTransition(model.StatusVoided) {
		return ErrDocumentClosed
	}
	return s.docs.UpdateStatus(ctx, id, model.StatusVoided, nil, &reason)
}

func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, doc.StoragePath, 15*time.Minute)
}

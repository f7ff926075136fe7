package repository

import (
	"context"

	"esignapi/internal/model"
)

// RecipientRepository defines data access for recipients. Recipient
// identity is immutable after creation; only status advances.
type RecipientRepository interface {
	// CreateBatch inserts all recipients for a document in one transaction.
	CreateBatch(ctx context.Context, recipients []model.Recipient) error

	// ListByDocument returns every recipient of a document.
	ListByDocument(ctx context.Context, documentID string) ([]model.Recipient, error)

	// FindByDocumentAndToken resolves a signing token to its recipient.
	// Returns sql.ErrNoRows when no recipient carries the token.
	FindByDocumentAndToken(ctx context.Context, documentID, tok string) (*model.Recipient, error)

	// MarkDeclined records a recipient's explicit refusal.
	MarkDeclined(ctx context.Context, id string) error
}

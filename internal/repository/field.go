package repository

import (
	"context"

	"esignapi/internal/model"
)

// FieldRepository defines data access for placed fields.
type FieldRepository interface {
	// ListByDocument returns every field on a document.
	ListByDocument(ctx context.Context, documentID string) ([]model.Field, error)

	// ListByRecipient returns only one recipient's fields, for the
	// signing session view.
	ListByRecipient(ctx context.Context, documentID, recipientID string) ([]model.Field, error)

	// BatchApply applies a three-set batch (creates, updates, deletes)
	// against the document's fields in one transaction: all or nothing.
	BatchApply(ctx context.Context, documentID string, batch model.FieldBatch) error
}

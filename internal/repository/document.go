package repository

import (
	"context"
	"time"

	"esignapi/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a paginated list of documents and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// UpdateStatus sets the document status; sentAt is written when the
	// transition is draft->pending, reason when voiding/declining.
	UpdateStatus(ctx context.Context, id string, status model.DocumentStatus, sentAt *time.Time, reason *string) error

	// SetSignerCount records the number of signer recipients, fixed at
	// send time.
	SetSignerCount(ctx context.Context, id string, n int) error
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"esignapi/internal/model"
	"esignapi/internal/repository"
)

// ErrValidation marks recoverable placement/input problems on the
// sender's side; handlers surface these inline without side effects.
var ErrValidation = errors.New("invalid field placement")

// SignersWithoutFieldsError rejects a send while naming every signer
// that has no field assigned, so the sender can fix each one.
type SignersWithoutFieldsError struct {
	Names []string
}

func (e *SignersWithoutFieldsError) Error() string {
	return fmt.Sprintf("signers without fields: %s", strings.Join(e.Names, ", "))
}

// EditorService covers the sender-side composition flow: persisting the
// editor's batch diff and gating the transition to pending.
type EditorService interface {
	// ListFields returns the persisted field set, the editor's baseline
	// snapshot.
	ListFields(ctx context.Context, documentID string) ([]model.Field, error)

	// SaveFields applies a three-set batch against a draft document.
	// Creates are validated against the document's page bounds; the
	// store applies the batch atomically, so a failure leaves the
	// persisted set unchanged and the caller retries with local state
	// intact.
	SaveFields(ctx context.Context, documentID string, batch model.FieldBatch) error

	// Send transitions draft->pending once every signer has at least one
	// field. The caller saves first; Send checks persisted state only.
	Send(ctx context.Context, documentID string) (*model.Document, error)
}

type editorService struct {
	docs       repository.DocumentRepository
	recipients repository.RecipientRepository
	fields     repository.FieldRepository
	now        func() time.Time
}

// NewEditorService constructs a new EditorService.
func NewEditorService(docs repository.DocumentRepository, recipients repository.RecipientRepository, fields repository.FieldRepository) EditorService {
	return &editorService{
		docs:       docs,
		recipients: recipients,
		fields:     fields,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *editorService) ListFields(ctx context.Context, documentID string) ([]model.Field, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	return s.fields.ListByDocument(ctx, documentID)
}

func (s *editorService) SaveFields(ctx context.Context, documentID string, batch model.FieldBatch) error {
	doc, err := s.getDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.Status != model.StatusDraft {
		return ErrNotDraft
	}
	if batch.Empty() {
		return nil
	}

	recipients, err := s.recipients.ListByDocument(ctx, documentID)
	if err != nil {
		return err
	}
	signers := make(map[string]bool, len(recipients))
	for _, rc := range recipients {
		signers[rc.ID] = rc.Role == model.RoleSigner
	}

	for i := range batch.Creates {
		f := &batch.Creates[i]
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		f.DocumentID = documentID
		if err := f.ValidatePlacement(doc.PageCount); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		// Every field belongs to exactly one recipient who is a signer.
		isSigner, known := signers[f.RecipientID]
		if !known {
			return fmt.Errorf("%w: field %s assigned to unknown recipient %s", ErrValidation, f.ID, f.RecipientID)
		}
		if !isSigner {
			return fmt.Errorf("%w: field %s assigned to non-signer recipient %s", ErrValidation, f.ID, f.RecipientID)
		}
	}
	for _, u := range batch.Updates {
		if u.Page < 1 || u.Page > doc.PageCount {
			return fmt.Errorf("%w: page %d out of range 1..%d", ErrValidation, u.Page, doc.PageCount)
		}
		if u.X < 0 || u.Y < 0 || u.W < 0 || u.H < 0 {
			return fmt.Errorf("%w: negative geometry for field %s", ErrValidation, u.ID)
		}
	}

	if err := s.fields.BatchApply(ctx, documentID, batch); err != nil {
		return fmt.Errorf("batch save: %w", err)
	}
	return nil
}

func (s *editorService) Send(ctx context.Context, documentID string) (*model.Document, error) {
	doc, err := s.getDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != model.StatusDraft {
		return nil, ErrNotDraft
	}

	recipients, err := s.recipients.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	fields, err := s.fields.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	assigned := make(map[string]int, len(recipients))
	for _, f := range fields {
		assigned[f.RecipientID]++
	}

	var missing []string
	signerCount := 0
	for _, rc := range recipients {
		if rc.Role != model.RoleSigner {
			continue
		}
		signerCount++
		if assigned[rc.ID] == 0 {
			missing = append(missing, rc.Name)
		}
	}
	if signerCount == 0 {
		return nil, ErrNoRecipients
	}
	if len(missing) > 0 {
		return nil, &SignersWithoutFieldsError{Names: missing}
	}

	sentAt := s.now()
	if err := s.docs.SetSignerCount(ctx, documentID, signerCount); err != nil {
		return nil, err
	}
	if err := s.docs.UpdateStatus(ctx, documentID, model.StatusPending, &sentAt, nil); err != nil {
		return nil, err
	}

	doc.Status = model.StatusPending
	doc.SignerCount = signerCount
	doc.SentAt = &sentAt
	return doc, nil
}

func (s *editorService) getDocument(ctx context.Context, documentID string) (*model.Document, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

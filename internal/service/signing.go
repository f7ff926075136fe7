package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"esignapi/internal/model"
	"esignapi/internal/repository"
	"esignapi/internal/storage"
	"esignapi/internal/token"
)

// ErrInvalidToken covers every authorization failure on a signing link:
// unknown document, unknown token, recipient mismatch. Callers get no
// hint which one it was and no document or field data.
var ErrInvalidToken = errors.New("invalid signing token")

// SessionView is what a signing-link resolution returns. When the
// recipient (or the whole document) is already complete, IsComplete is
// set and Fields stays empty; fields are never re-exposed after
// completion.
type SessionView struct {
	Document   model.Document  `json:"document"`
	Recipient  model.Recipient `json:"recipient"`
	Fields     []model.Field   `json:"fields,omitempty"`
	IsComplete bool            `json:"isComplete"`
}

// MissingRequired counts the required fields of the view that have no
// non-empty value in the given map. Clients use this to gate submission
// before calling Submit; the server re-checks against persisted rows
// either way.
func (v *SessionView) MissingRequired(values map[string]string) int {
	n := 0
	for _, f := range v.Fields {
		if f.Required && values[f.ID] == "" {
			n++
		}
	}
	return n
}

// SubmitOutcome reports what the authoritative submission wrote.
type SubmitOutcome struct {
	Recipient      model.Recipient      `json:"recipient"`
	DocumentStatus model.DocumentStatus `json:"document_status"`
	SignedCount    int                  `json:"signed_count"`
	SignerCount    int                  `json:"signer_count"`
}

// SigningService is the recipient-side, token-authenticated flow: a
// session is reconstructed per request from document + recipient +
// token, never persisted on its own.
type SigningService interface {
	// Resolve validates the token and returns the recipient-scoped view:
	// document metadata, the recipient, and only that recipient's
	// fields. Already-complete sessions return IsComplete with no field
	// data, both times, every time.
	Resolve(ctx context.Context, documentID, tok string) (*SessionView, error)

	// Submit performs the authoritative validation and write. Signature
	// and initials values arriving as image data URLs are stored as
	// blobs and replaced by their object keys before the transactional
	// write.
	Submit(ctx context.Context, documentID, tok string, values map[string]string) (*SubmitOutcome, error)

	// Decline records a recipient's explicit refusal and moves the
	// document to declined.
	Decline(ctx context.Context, documentID, tok, reason string) error
}

type signingService struct {
	store      storage.Storage
	docs       repository.DocumentRepository
	recipients repository.RecipientRepository
	fields     repository.FieldRepository
	signing    repository.SigningRepository
	now        func() time.Time
}

// NewSigningService constructs a new SigningService.
func NewSigningService(store storage.Storage, docs repository.DocumentRepository, recipients repository.RecipientRepository, fields repository.FieldRepository, signing repository.SigningRepository) SigningService {
	return &signingService{
		store:      store,
		docs:       docs,
		recipients: recipients,
		fields:     fields,
		signing:    signing,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// authorize resolves documentID+token to the document and recipient, or
// ErrInvalidToken with nothing else.
func (s *signingService) authorize(ctx context.Context, documentID, tok string) (*model.Document, *model.Recipient, error) {
	if documentID == "" || tok == "" {
		return nil, nil, ErrInvalidToken
	}
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, err
	}
	rc, err := s.recipients.FindByDocumentAndToken(ctx, documentID, tok)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, err
	}
	if !token.Match(tok, rc.Token) {
		return nil, nil, ErrInvalidToken
	}
	// Drafts are not visible to recipients yet.
	if doc.Status == model.StatusDraft {
		return nil, nil, ErrInvalidToken
	}
	return doc, rc, nil
}

func (s *signingService) Resolve(ctx context.Context, documentID, tok string) (*SessionView, error) {
	doc, rc, err := s.authorize(ctx, documentID, tok)
	if err != nil {
		return nil, err
	}

	if rc.Status == model.RecipientCompleted || doc.Status == model.StatusCompleted {
		return &SessionView{Document: *doc, Recipient: *rc, IsComplete: true}, nil
	}
	if doc.Status.Terminal() {
		return nil, ErrDocumentClosed
	}

	fields, err := s.fields.ListByRecipient(ctx, documentID, rc.ID)
	if err != nil {
		return nil, err
	}
	return &SessionView{Document: *doc, Recipient: *rc, Fields: fields}, nil
}

func (s *signingService) Submit(ctx context.Context, documentID, tok string, values map[string]string) (*SubmitOutcome, error) {
	doc, rc, err := s.authorize(ctx, documentID, tok)
	if err != nil {
		return nil, err
	}
	if rc.Status == model.RecipientCompleted {
		return nil, ErrAlreadyComplete
	}
	if doc.Status.Terminal() {
		return nil, ErrDocumentClosed
	}

	fields, err := s.fields.ListByRecipient(ctx, documentID, rc.ID)
	if err != nil {
		return nil, err
	}
	values, err = s.storeSignatureBlobs(ctx, documentID, fields, values)
	if err != nil {
		return nil, err
	}

	res, err := s.signing.Submit(ctx, documentID, rc.ID, values, s.now())
	if err != nil {
		return nil, err
	}
	return &SubmitOutcome{
		Recipient:      res.Recipient,
		DocumentStatus: res.DocumentStatus,
		SignedCount:    res.SignedCount,
		SignerCount:    res.SignerCount,
	}, nil
}

func (s *signingService) Decline(ctx context.Context, documentID, tok, reason string) error {
	doc, rc, err := s.authorize(ctx, documentID, tok)
	if err != nil {
		return err
	}
	if rc.Status == model.RecipientCompleted {
		return ErrAlreadyComplete
	}
	if !doc.Status.CanTransition(model.StatusDeclined) {
		return ErrDocumentClosed
	}
	if err := s.recipients.MarkDeclined(ctx, rc.ID); err != nil {
		return err
	}
	var r *string
	if reason != "" {
		r = &reason
	}
	return s.docs.UpdateStatus(ctx, documentID, model.StatusDeclined, nil, r)
}

// storeSignatureBlobs uploads drawn/typed signature captures that arrive
// as image data URLs and swaps the value for the stored object key. All
// other values pass through untouched.
func (s *signingService) storeSignatureBlobs(ctx context.Context, documentID string, fields []model.Field, values map[string]string) (map[string]string, error) {
	captureTypes := make(map[string]model.FieldType, len(fields))
	for _, f := range fields {
		if f.Type == model.FieldSignature || f.Type == model.FieldInitials {
			captureTypes[f.ID] = f.Type
		}
	}

	out := make(map[string]string, len(values))
	for id, v := range values {
		if _, ok := captureTypes[id]; !ok || !strings.HasPrefix(v, "data:image/") {
			out[id] = v
			continue
		}
		blob, ext, err := decodeImageDataURL(v)
		if err != nil {
			return nil, fmt.Errorf("signature capture for field %s: %w", id, err)
		}
		key := path.Join("signatures", documentID, id+ext)
		if _, err := s.store.Put(ctx, key, bytes.NewReader(blob), storage.PutObjectOptions{
			Size:        int64(len(blob)),
			ContentType: "image/" + strings.TrimPrefix(ext, "."),
		}); err != nil {
			return nil, fmt.Errorf("store signature image: %w", err)
		}
		out[id] = key
	}
	return out, nil
}

func decodeImageDataURL(v string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(v, "data:image/")
	if !ok {
		return nil, "", errors.New("not an image data URL")
	}
	mediatype, data, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil, "", errors.New("expected base64 image data")
	}
	blob, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return blob, "." + mediatype, nil
}

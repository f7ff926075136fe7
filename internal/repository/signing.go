package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"esignapi/internal/model"
)

var (
	// ErrDocumentClosed means the document reached a terminal status and
	// no longer accepts signatures. Reported distinctly so callers can
	// show "no longer accepting signatures" instead of a retry prompt.
	ErrDocumentClosed = errors.New("document is no longer accepting signatures")

	// ErrAlreadyComplete means this recipient already submitted.
	ErrAlreadyComplete = errors.New("recipient already completed signing")
)

// MissingRequiredError reports how many required fields have no value.
type MissingRequiredError struct {
	Count int
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("%d required field(s) missing a value", e.Count)
}

// SubmitResult describes the persisted outcome of a recipient submission.
type SubmitResult struct {
	Recipient      model.Recipient
	SignedCount    int
	SignerCount    int
	DocumentStatus model.DocumentStatus
}

// SigningRepository performs the authoritative submission write. The
// whole sequence (re-validate required fields against persisted rows,
// write values, mark the recipient complete, recompute the signed count,
// maybe transition the document) runs in one transaction holding a lock
// on the document row, so two near-simultaneous last signers cannot both
// complete the document.
type SigningRepository interface {
	Submit(ctx context.Context, documentID, recipientID string, values map[string]string, now time.Time) (*SubmitResult, error)
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"esignapi/internal/model"
	"esignapi/internal/repository"
)

// SigningPostgres performs the authoritative submission write for a
// recipient. The whole sequence runs in one transaction holding a row
// lock on the document, which serializes concurrent submissions: the
// signed count is recomputed from committed recipient rows, so the
// transition to completed happens exactly once no matter the ordering.
type SigningPostgres struct {
	db *sql.DB
}

// NewSigningPostgres creates a new SigningPostgres repository.
func NewSigningPostgres(db *sql.DB) *SigningPostgres {
	return &SigningPostgres{db: db}
}

var _ repository.SigningRepository = (*SigningPostgres)(nil)

// Submit validates against current persisted state (never the client's
// stale view), writes field values, marks the recipient complete and
// advances the document status.
func (r *SigningPostgres) Submit(ctx context.Context, documentID, recipientID string, values map[string]string, now time.Time) (*repository.SubmitResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock the document row for the duration of the submission.
	const qDoc = `SELECT status FROM documents WHERE id = $1 FOR UPDATE`
	var status model.DocumentStatus
	if err := tx.QueryRowContext(ctx, qDoc, documentID).Scan(&status); err != nil {
		return nil, err
	}
	if status.Terminal() {
		return nil, repository.ErrDocumentClosed
	}

	const qRecipient = `
		SELECT id, document_id, name, email, role, status, token, completed_at
		FROM recipients
		WHERE id = $1 AND document_id = $2
	`
	var rc model.Recipient
	if err := tx.QueryRowContext(ctx, qRecipient, recipientID, documentID).Scan(
		&rc.ID,
		&rc.DocumentID,
		&rc.Name,
		&rc.Email,
		&rc.Role,
		&rc.Status,
		&rc.Token,
		&rc.CompletedAt,
	); err != nil {
		return nil, err
	}
	if rc.Status == model.RecipientCompleted {
		return nil, repository.ErrAlreadyComplete
	}

	// Re-validate required-field completeness against persisted rows;
	// the client-side check is a latency optimization only.
	const qFields = `
		SELECT id, required
		FROM fields
		WHERE document_id = $1 AND recipient_id = $2
	`
	rows, err := tx.QueryContext(ctx, qFields, documentID, recipientID)
	if err != nil {
		return nil, err
	}
	type fieldRow struct {
		id       string
		required bool
	}
	var fields []fieldRow
	for rows.Next() {
		var fr fieldRow
		if err := rows.Scan(&fr.id, &fr.required); err != nil {
			rows.Close()
			return nil, err
		}
		fields = append(fields, fr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	missing := 0
	for _, fr := range fields {
		if fr.required && values[fr.id] == "" {
			missing++
		}
	}
	if missing > 0 {
		return nil, &repository.MissingRequiredError{Count: missing}
	}

	const qWriteValue = `
		UPDATE fields SET value = $3
		WHERE id = $1 AND document_id = $2 AND recipient_id = $4
	`
	for _, fr := range fields {
		v, ok := values[fr.id]
		if !ok || v == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, qWriteValue, fr.id, documentID, v, recipientID); err != nil {
			return nil, err
		}
	}

	const qComplete = `
		UPDATE recipients SET status = 'completed', completed_at = $2
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, qComplete, recipientID, now); err != nil {
		return nil, err
	}
	rc.Status = model.RecipientCompleted
	rc.CompletedAt = &now

	// Recompute the aggregate from committed rows, not the client view.
	const qCounts = `
		SELECT
			COUNT(*) FILTER (WHERE role = 'signer'),
			COUNT(*) FILTER (WHERE role = 'signer' AND status = 'completed')
		FROM recipients
		WHERE document_id = $1
	`
	var signerCount, signedCount int
	if err := tx.QueryRowContext(ctx, qCounts, documentID).Scan(&signerCount, &signedCount); err != nil {
		return nil, err
	}

	next := status
	var completedAt *time.Time
	switch {
	case signedCount >= signerCount && signerCount > 0:
		next = model.StatusCompleted
		completedAt = &now
	case signedCount > 0:
		next = model.StatusInProgress
	}
	if next != status && !status.CanTransition(next) {
		return nil, errors.New("illegal document status transition")
	}

	const qDocUpdate = `
		UPDATE documents
		SET signed_count = $2, status = $3, completed_at = COALESCE($4, completed_at)
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, qDocUpdate, documentID, signedCount, next, completedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &repository.SubmitResult{
		Recipient:      rc,
		SignedCount:    signedCount,
		SignerCount:    signerCount,
		DocumentStatus: next,
	}, nil
}

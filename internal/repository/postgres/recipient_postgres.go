package postgres

import (
	"context"
	"database/sql"

	"esignapi/internal/model"
	"esignapi/internal/repository"
)

// RecipientPostgres is a PostgreSQL implementation of repository.RecipientRepository.
type RecipientPostgres struct {
	db *sql.DB
}

// NewRecipientPostgres creates a new RecipientPostgres repository.
func NewRecipientPostgres(db *sql.DB) *RecipientPostgres {
	return &RecipientPostgres{db: db}
}

var _ repository.RecipientRepository = (*RecipientPostgres)(nil)

const recipientColumns = `id, document_id, name, email, role, status, token, completed_at`

// CreateBatch inserts all recipients in one transaction; a failure rolls
// every row back.
func (r *RecipientPostgres) CreateBatch(ctx context.Context, recipients []model.Recipient) error {
	if len(recipients) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO recipients (id, document_id, name, email, role, status, token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, rc := range recipients {
		if _, err := tx.ExecContext(ctx, q,
			rc.ID,
			rc.DocumentID,
			rc.Name,
			rc.Email,
			rc.Role,
			rc.Status,
			rc.Token,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListByDocument returns every recipient of a document.
func (r *RecipientPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Recipient, error) {
	const q = `
		SELECT ` + recipientColumns + `
		FROM recipients
		WHERE document_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Recipient, 0)
	for rows.Next() {
		var rc model.Recipient
		if err := rows.Scan(
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
		out = append(out, rc)
	}
	return out, rows.Err()
}

// FindByDocumentAndToken resolves a signing token within one document.
func (r *RecipientPostgres) FindByDocumentAndToken(ctx context.Context, documentID, tok string) (*model.Recipient, error) {
	const q = `
		SELECT ` + recipientColumns + `
		FROM recipients
		WHERE document_id = $1 AND token = $2
	`
	var rc model.Recipient
	if err := r.db.QueryRowContext(ctx, q, documentID, tok).Scan(
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
	return &rc, nil
}

// MarkDeclined records an explicit refusal.
func (r *RecipientPostgres) MarkDeclined(ctx context.Context, id string) error {
	const q = `UPDATE recipients SET status = 'declined' WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"

	"esignapi/internal/model"
	"esignapi/internal/repository"
)

// FieldPostgres is a PostgreSQL implementation of repository.FieldRepository.
type FieldPostgres struct {
	db *sql.DB
}

// NewFieldPostgres creates a new FieldPostgres repository.
func NewFieldPostgres(db *sql.DB) *FieldPostgres {
	return &FieldPostgres{db: db}
}

var _ repository.FieldRepository = (*FieldPostgres)(nil)

const fieldColumns = `id, document_id, recipient_id, type, page, x, y, w, h, required, label, value`

func scanField(row interface{ Scan(...any) error }) (*model.Field, error) {
	var (
		f     model.Field
		label sql.NullString
		value sql.NullString
	)
	if err := row.Scan(
		&f.ID,
		&f.DocumentID,
		&f.RecipientID,
		&f.Type,
		&f.Page,
		&f.X,
		&f.Y,
		&f.W,
		&f.H,
		&f.Required,
		&label,
		&value,
	); err != nil {
		return nil, err
	}
	f.Label = label.String
	f.Value = value.String
	return &f, nil
}

// ListByDocument returns every field on a document.
func (r *FieldPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Field, error) {
	const q = `
		SELECT ` + fieldColumns + `
		FROM fields
		WHERE document_id = $1
		ORDER BY page, id
	`
	return r.queryFields(ctx, q, documentID)
}

// ListByRecipient returns only one recipient's fields.
func (r *FieldPostgres) ListByRecipient(ctx context.Context, documentID, recipientID string) ([]model.Field, error) {
	const q = `
		SELECT ` + fieldColumns + `
		FROM fields
		WHERE document_id = $1 AND recipient_id = $2
		ORDER BY page, id
	`
	return r.queryFields(ctx, q, documentID, recipientID)
}

func (r *FieldPostgres) queryFields(ctx context.Context, q string, args ...any) ([]model.Field, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Field, 0)
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

// BatchApply applies creates, updates and deletes in one transaction.
// Any failure rolls the whole batch back, so the stored field set either
// matches the editor's local set or is left untouched.
func (r *FieldPostgres) BatchApply(ctx context.Context, documentID string, batch model.FieldBatch) error {
	if batch.Empty() {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const qInsert = `
		INSERT INTO fields (id, document_id, recipient_id, type, page, x, y, w, h, required, label)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, f := range batch.Creates {
		if _, err := tx.ExecContext(ctx, qInsert,
			f.ID,
			documentID,
			f.RecipientID,
			f.Type,
			f.Page,
			f.X,
			f.Y,
			f.W,
			f.H,
			f.Required,
			nullable(f.Label),
		); err != nil {
			return err
		}
	}

	const qUpdate = `
		UPDATE fields
		SET page = $3, x = $4, y = $5, w = $6, h = $7, required = $8, label = $9
		WHERE id = $1 AND document_id = $2
	`
	for _, u := range batch.Updates {
		res, err := tx.ExecContext(ctx, qUpdate,
			u.ID,
			documentID,
			u.Page,
			u.X,
			u.Y,
			u.W,
			u.H,
			u.Required,
			nullable(u.Label),
		)
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
	}

	const qDelete = `DELETE FROM fields WHERE id = $1 AND document_id = $2`
	for _, id := range batch.Deletes {
		if _, err := tx.ExecContext(ctx, qDelete, id, documentID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

package postgres

import (
	"context"
	"testing"
	"time"

	"esignapi/internal/model"
	"esignapi/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectSubmitPreamble(mock sqlmock.Sqlmock, docStatus string, recipientStatus string) {
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM documents WHERE id = (.+) FOR UPDATE").
		WithArgs("doc-1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(docStatus))
	if docStatus == "completed" || docStatus == "voided" || docStatus == "declined" {
		return
	}
	mock.ExpectQuery("SELECT (.+) FROM recipients WHERE id = (.+) AND document_id =").
		WithArgs("r1", "doc-1").
		WillReturnRows(sqlmock.NewRows(recipientColumnNames).
			AddRow("r1", "doc-1", "Alice", "alice@example.com", "signer", recipientStatus, "tok-a", nil))
}

func TestSigningPostgres_Submit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	values := map[string]string{"f1": "signatures/doc-1/f1.png", "f2": "Alice A."}

	t.Run("last signer completes the document", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expectSubmitPreamble(mock, "in_progress", "pending")
		mock.ExpectQuery("SELECT id, required FROM fields").
			WithArgs("doc-1", "r1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "required"}).
				AddRow("f1", true).
				AddRow("f2", true))
		mock.ExpectExec("UPDATE fields SET value").
			WithArgs("f1", "doc-1", "signatures/doc-1/f1.png", "r1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE fields SET value").
			WithArgs("f2", "doc-1", "Alice A.", "r1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE recipients SET status = 'completed'").
			WithArgs("r1", now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT(.+)FROM recipients WHERE document_id =").
			WithArgs("doc-1").
			WillReturnRows(sqlmock.NewRows([]string{"signers", "signed"}).AddRow(2, 2))
		mock.ExpectExec("UPDATE documents").
			WithArgs("doc-1", 2, model.StatusCompleted, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		res, err := NewSigningPostgres(db).Submit(ctx, "doc-1", "r1", values, now)

		assert.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, model.StatusCompleted, res.DocumentStatus)
		assert.Equal(t, 2, res.SignedCount)
		assert.Equal(t, 2, res.SignerCount)
		assert.Equal(t, model.RecipientCompleted, res.Recipient.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first of two signers moves pending to in_progress", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expectSubmitPreamble(mock, "pending", "pending")
		mock.ExpectQuery("SELECT id, required FROM fields").
			WithArgs("doc-1", "r1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "required"}).AddRow("f1", true))
		mock.ExpectExec("UPDATE fields SET value").
			WithArgs("f1", "doc-1", "signatures/doc-1/f1.png", "r1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE recipients SET status = 'completed'").
			WithArgs("r1", now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT(.+)FROM recipients WHERE document_id =").
			WithArgs("doc-1").
			WillReturnRows(sqlmock.NewRows([]string{"signers", "signed"}).AddRow(2, 1))
		mock.ExpectExec("UPDATE documents").
			WithArgs("doc-1", 1, model.StatusInProgress, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		res, err := NewSigningPostgres(db).Submit(ctx, "doc-1", "r1", map[string]string{"f1": "signatures/doc-1/f1.png"}, now)

		assert.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, model.StatusInProgress, res.DocumentStatus)
		assert.Equal(t, 1, res.SignedCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("terminal document rejects with a distinct error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expectSubmitPreamble(mock, "voided", "")
		mock.ExpectRollback()

		res, err := NewSigningPostgres(db).Submit(ctx, "doc-1", "r1", values, now)

		assert.ErrorIs(t, err, repository.ErrDocumentClosed)
		assert.Nil(t, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat submission is rejected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expectSubmitPreamble(mock, "in_progress", "completed")
		mock.ExpectRollback()

		res, err := NewSigningPostgres(db).Submit(ctx, "doc-1", "r1", values, now)

		assert.ErrorIs(t, err, repository.ErrAlreadyComplete)
		assert.Nil(t, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing required values counted against persisted rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expectSubmitPreamble(mock, "pending", "pending")
		mock.ExpectQuery("SELECT id, required FROM fields").
			WithArgs("doc-1", "r1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "required"}).
				AddRow("f1", true).
				AddRow("f2", true).
				AddRow("f3", false))
		mock.ExpectRollback()

		res, err := NewSigningPostgres(db).Submit(ctx, "doc-1", "r1", map[string]string{"f1": "x"}, now)

		var missing *repository.MissingRequiredError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, 1, missing.Count)
		assert.Nil(t, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

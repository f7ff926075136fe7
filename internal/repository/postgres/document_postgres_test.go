package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"esignapi/internal/model"
	"esignapi/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var docColumns = []string{
	"id", "title", "storage_path", "page_count", "status",
	"signer_count", "signed_count", "deal_id", "voided_reason",
	"created_at", "sent_at", "completed_at",
}

func docRow(d *model.Document) *sqlmock.Rows {
	return sqlmock.NewRows(docColumns).
		AddRow(d.ID, d.Title, d.StoragePath, d.PageCount, d.Status,
			d.SignerCount, d.SignedCount, d.DealID, d.VoidedReason,
			d.CreatedAt, d.SentAt, d.CompletedAt)
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	doc := &model.Document{
		ID:          "doc-uuid",
		Title:       "Purchase Agreement",
		StoragePath: "documents/doc-uuid.pdf",
		PageCount:   4,
		Status:      model.StatusDraft,
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Title, doc.StoragePath, doc.PageCount, doc.Status, doc.DealID, doc.CreatedAt).
		WillReturnRows(docRow(doc))

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, model.StatusDraft, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		doc := &model.Document{ID: "doc-1", Title: "Lease", StoragePath: "documents/a.pdf", PageCount: 2, Status: model.StatusPending, CreatedAt: time.Now()}
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id =").
			WithArgs("doc-1").
			WillReturnRows(docRow(doc))

		got, err := repo.FindByID(ctx, "doc-1")

		assert.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "doc-1", got.ID)
		assert.Equal(t, model.StatusPending, got.Status)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id =").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	d1 := &model.Document{ID: "doc-1", Title: "A", StoragePath: "documents/a.pdf", PageCount: 1, Status: model.StatusDraft, CreatedAt: time.Now()}
	d2 := &model.Document{ID: "doc-2", Title: "B", StoragePath: "documents/b.pdf", PageCount: 1, Status: model.StatusCompleted, CreatedAt: time.Now()}
	rows := docRow(d1)
	rows.AddRow(d2.ID, d2.Title, d2.StoragePath, d2.PageCount, d2.Status,
		d2.SignerCount, d2.SignedCount, d2.DealID, d2.VoidedReason,
		d2.CreatedAt, d2.SentAt, d2.CompletedAt)

	mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY").
		WithArgs(2, 0).
		WillReturnRows(rows)

	res, err := repo.List(ctx, repository.PageQuery{Limit: 2, Offset: 0})

	assert.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 7, res.Total)
	assert.Len(t, res.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("send stamps sent_at", func(t *testing.T) {
		sentAt := time.Now().UTC()
		mock.ExpectExec("UPDATE documents").
			WithArgs("doc-1", model.StatusPending, &sentAt, (*string)(nil)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, "doc-1", model.StatusPending, &sentAt, nil))
	})

	t.Run("void carries a reason", func(t *testing.T) {
		reason := "deal fell through"
		mock.ExpectExec("UPDATE documents").
			WithArgs("doc-1", model.StatusVoided, (*time.Time)(nil), &reason).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, "doc-1", model.StatusVoided, nil, &reason))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents").
			WithArgs("missing", model.StatusPending, (*time.Time)(nil), (*string)(nil)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", model.StatusPending, nil, nil), sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

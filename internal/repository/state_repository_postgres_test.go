package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

func newPostgresStateStoreMock(t *testing.T) (*PostgresStateStore, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS publish_state").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store, err := NewPostgresStateStore(sqlxDB, nil)
	require.NoError(t, err)

	return store, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestPostgresStateStoreLoadMissingRow(t *testing.T) {
	store, mock, cleanup := newPostgresStateStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT document FROM publish_state").
		WithArgs(stateDocumentID).
		WillReturnRows(sqlmock.NewRows([]string{"document"}))

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.LastPosts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStateStoreLoadDocument(t *testing.T) {
	store, mock, cleanup := newPostgresStateStoreMock(t)
	defer cleanup()

	doc := `{"lastPosts":{"daily:2025-11-11":{"postedAtIso":"2025-11-12T02:00:00Z","messageHash":"abc"}}}`
	mock.ExpectQuery("SELECT document FROM publish_state").
		WithArgs(stateDocumentID).
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte(doc)))

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, state.LastPosts, "daily:2025-11-11")
	assert.Equal(t, "abc", state.LastPosts["daily:2025-11-11"].Fingerprint)
}

func TestPostgresStateStoreLoadCorruptDocumentIsEmpty(t *testing.T) {
	store, mock, cleanup := newPostgresStateStoreMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT document FROM publish_state").
		WithArgs(stateDocumentID).
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte("{broken")))

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.LastPosts)
}

func TestPostgresStateStoreSaveUpserts(t *testing.T) {
	store, mock, cleanup := newPostgresStateStoreMock(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO publish_state").
		WithArgs(stateDocumentID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	state := models.NewPublishState()
	state.LastPosts["monthly:2025-10"] = models.PostRecord{PostedAt: "2025-11-01T02:00:00Z", Fingerprint: "fff"}
	require.NoError(t, store.Save(context.Background(), state))
	assert.NoError(t, mock.ExpectationsWereMet())
}

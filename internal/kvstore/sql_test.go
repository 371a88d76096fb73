package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/deliverydash/internal/database"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPostgreSQLStore_Get(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT entry_value FROM kv_entries WHERE entry_key = $1`)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("user_admin").
			WillReturnRows(sqlmock.NewRows([]string{"entry_value"}).AddRow([]byte(`{"a":1}`)))

		value, err := NewPostgreSQLStore(db).Get(ctx, "user_admin")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := NewPostgreSQLStore(db).Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("k").WillReturnError(errors.New("connection reset"))

		_, err := NewPostgreSQLStore(db).Get(ctx, "k")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestPostgreSQLStore_Put(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`INSERT INTO kv_entries .* ON CONFLICT \(entry_key\) DO UPDATE`).
		WithArgs("global", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewPostgreSQLStore(db).Put(context.Background(), "global", []byte("v"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_PutInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO kv_entries`).
		WithArgs("user_admin", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	store := NewPostgreSQLStore(db)
	txManager := database.NewTxManager(db)

	err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
		return store.Put(ctx, "user_admin", []byte("v"))
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_entries WHERE entry_key = $1`)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewPostgreSQLStore(db).Delete(context.Background(), "k")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_Get(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("global").
			WillReturnRows(sqlmock.NewRows([]string{"entry_value"}).AddRow([]byte("v")))

		value, err := NewMySQLStore(db).Get(ctx, "global")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := NewMySQLStore(db).Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMySQLStore_Put(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`INSERT INTO kv_entries .* ON DUPLICATE KEY UPDATE`).
		WithArgs("global", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewMySQLStore(db).Put(context.Background(), "global", []byte("v"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_entries WHERE entry_key = ?`)).
		WithArgs("k").
		WillReturnError(errors.New("lock wait timeout"))

	err := NewMySQLStore(db).Delete(context.Background(), "k")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

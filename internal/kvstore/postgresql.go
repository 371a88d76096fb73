package kvstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/deliverydash/internal/database"
)

// PostgreSQLStore persists entries in the kv_entries table.
type PostgreSQLStore struct {
	db *sql.DB
}

// NewPostgreSQLStore creates a PostgreSQLStore on an open pool.
func NewPostgreSQLStore(db *sql.DB) *PostgreSQLStore {
	return &PostgreSQLStore{db: db}
}

func (s *PostgreSQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT entry_value FROM kv_entries WHERE entry_key = $1`

	var value []byte
	err := querier.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *PostgreSQLStore) Put(ctx context.Context, key string, value []byte) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES ($1, $2, NOW())
			  ON CONFLICT (entry_key) DO UPDATE SET entry_value = EXCLUDED.entry_value, updated_at = NOW()`

	_, err := querier.ExecContext(ctx, query, key, value)
	return err
}

func (s *PostgreSQLStore) Delete(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, s.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM kv_entries WHERE entry_key = $1`, key)
	return err
}

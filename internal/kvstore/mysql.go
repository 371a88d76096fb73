package kvstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/deliverydash/internal/database"
)

// MySQLStore persists entries in the kv_entries table.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore creates a MySQLStore on an open pool.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT entry_value FROM kv_entries WHERE entry_key = ?`

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

func (s *MySQLStore) Put(ctx context.Context, key string, value []byte) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, NOW(6))
			  ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value), updated_at = NOW(6)`

	_, err := querier.ExecContext(ctx, query, key, value)
	return err
}

func (s *MySQLStore) Delete(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, s.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM kv_entries WHERE entry_key = ?`, key)
	return err
}

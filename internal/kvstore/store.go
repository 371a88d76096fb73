// Package kvstore provides the key-value storage shared by the dashboard endpoints and
// the CLI session. Writes are last-writer-wins; there are no cross-key transactions
// outside of database.TxManager.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/allisson/deliverydash/internal/errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = apperrors.Wrap(apperrors.ErrNotFound, "key not found")

// Store is a flat byte-oriented key-value store.
type Store interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put creates or replaces the value under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// GetJSON decodes the JSON value under key into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode value for %q: %w", key, err)
	}
	return nil
}

// PutJSON stores v encoded as JSON under key.
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}

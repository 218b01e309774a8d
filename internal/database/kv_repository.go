package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// KVRepository stores JSON documents under string keys
type KVRepository struct {
	store *Store
}

// NewKVRepository creates a new repository instance
func NewKVRepository(store *Store) *KVRepository {
	return &KVRepository{store: store}
}

// Get returns the raw value stored under key and whether it exists
func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := r.store.db.Rebind(`SELECT value FROM kv_store WHERE name = ?`)
	err := r.store.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, true, nil
}

// Put overwrites the raw value stored under key
func (r *KVRepository) Put(ctx context.Context, key, value string) error {
	query := r.store.db.Rebind(`
		INSERT INTO kv_store (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := r.store.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to put %q: %w", key, err)
	}
	return nil
}

// Save serializes v as JSON and stores it under key
func (r *KVRepository) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return r.Put(ctx, key, string(data))
}

// Load decodes the value stored under key. When the key is missing or its
// value does not decode, def is stored in its place and returned.
// A failing query returns def together with the error and writes nothing.
func Load[T any](ctx context.Context, r *KVRepository, key string, def T) (T, error) {
	raw, ok, err := r.Get(ctx, key)
	if err != nil {
		return def, err
	}

	if ok {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return v, nil
		}
		log.Printf("Stored value of %q is unreadable, replacing it with the default", key)
	}

	if err := r.Save(ctx, key, def); err != nil {
		return def, err
	}
	return def, nil
}

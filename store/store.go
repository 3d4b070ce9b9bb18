// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Store is string key -> string value storage that survives restarts.
type Store interface {
	// Load returns the stored value and whether the key exists.
	Load(ctx context.Context, key string) (string, bool, error)
	// Save creates or replaces the value for key.
	Save(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// SQLStore keeps values in the kv table created by the db package.
type SQLStore struct {
	conn *sqlx.DB
}

func NewSQLStore(conn *sqlx.DB) *SQLStore {
	return &SQLStore{conn: conn}
}

// Close terminates the underlying database connection.
func (s *SQLStore) Close() error {
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := s.conn.Rebind(`SELECT store_value FROM kv WHERE store_key = ?`)
	err := s.conn.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Save(ctx context.Context, key, value string) error {
	query := s.conn.Rebind(`
		INSERT INTO kv (store_key, store_value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (store_key) DO UPDATE
		SET store_value = excluded.store_value, updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := s.conn.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := s.conn.Rebind(`DELETE FROM kv WHERE store_key = ?`)
	if _, err := s.conn.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// MemoryStore is an in-process Store, used by tests and as a fallback.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Get retrieves the value stored under key and JSON-unmarshals it into dest.
// It returns the row version alongside, or ErrNotFound if the key does not
// exist.
func (s *Store) Get(ctx context.Context, key string, dest any) (int64, error) {
	var (
		raw     string
		version int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, version FROM kv WHERE key = ?`, key,
	).Scan(&raw, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("getting key %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return 0, fmt.Errorf("unmarshaling key %q: %w", key, err)
	}
	return version, nil
}

// Set JSON-marshals value and stores it under the given key regardless of the
// current version. If the key already exists, its value is overwritten and
// its version incremented.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling key %q: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, version, updated_at)
		 VALUES (?, ?, 1, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			version    = kv.version + 1,
			updated_at = excluded.updated_at`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("setting key %q: %w", key, err)
	}
	return nil
}

// CompareAndSwap stores value under key only if the stored version equals
// expected. An expected version of 0 means the key must not exist yet. It
// returns the new version, or ErrConflict if another writer got there first.
func (s *Store) CompareAndSwap(ctx context.Context, key string, expected int64, value any) (int64, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("marshaling key %q: %w", key, err)
	}

	var res sql.Result
	if expected == 0 {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO kv (key, value, version, updated_at)
			 VALUES (?, ?, 1, datetime('now'))
			 ON CONFLICT(key) DO NOTHING`,
			key, string(data),
		)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE kv SET value = ?, version = version + 1, updated_at = datetime('now')
			 WHERE key = ? AND version = ?`,
			string(data), key, expected,
		)
	}
	if err != nil {
		return 0, fmt.Errorf("swapping key %q: %w", key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("swapping key %q: %w", key, err)
	}
	if n == 0 {
		return 0, ErrConflict
	}
	return expected + 1, nil
}

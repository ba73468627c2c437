package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/repository"
)

type kvStore struct {
	db *sql.DB
}

// NewKeyValueStore creates a KeyValueStore backed by the progress_store table
func NewKeyValueStore(db *sql.DB) repository.KeyValueStore {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_store")
	log.Debug("get: key=%s", key)

	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM progress_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		log.Error("failed to read key %s: %v", key, err)
		return nil, false, err
	}
	return value, true, nil
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx).WithPrefix("kv_store")
	log.Debug("set: key=%s, bytes=%d", key, len(value))

	_, err := s.db.ExecContext(ctx, `
INSERT INTO progress_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`, key, value)
	if err != nil {
		log.Error("failed to write key %s: %v", key, err)
	}
	return err
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_store")
	log.Debug("delete: key=%s", key)

	_, err := s.db.ExecContext(ctx, `DELETE FROM progress_store WHERE key = ?`, key)
	if err != nil {
		log.Error("failed to delete key %s: %v", key, err)
	}
	return err
}

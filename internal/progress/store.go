package progress

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/repository"
)

// Store reads and writes progress documents as JSON over a key-value store.
// Missing keys and malformed documents both read as nil.
type Store struct {
	kv repository.KeyValueStore
}

func NewStore(kv repository.KeyValueStore) *Store {
	return &Store{kv: kv}
}

func (s *Store) LoadProgress(ctx context.Context, sessionID string) (*models.ProgressRecord, error) {
	var rec models.ProgressRecord
	found, err := s.get(ctx, ProgressKey(sessionID), &rec)
	if err != nil || !found {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) SaveProgress(ctx context.Context, sessionID string, rec models.ProgressRecord) error {
	return s.put(ctx, ProgressKey(sessionID), rec)
}

func (s *Store) DeleteProgress(ctx context.Context, sessionID string) error {
	return s.kv.Delete(ctx, ProgressKey(sessionID))
}

// LoadSummary reads a set or quick-practice summary stored under key.
func (s *Store) LoadSummary(ctx context.Context, key string) (*models.SetProgress, error) {
	var summary models.SetProgress
	found, err := s.get(ctx, key, &summary)
	if err != nil || !found {
		return nil, err
	}
	return &summary, nil
}

func (s *Store) SaveSummary(ctx context.Context, key string, summary models.SetProgress) error {
	return s.put(ctx, key, summary)
}

func (s *Store) get(ctx context.Context, key string, v any) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")

	data, found, err := s.kv.Get(ctx, key)
	if err != nil {
		log.Error("failed to read %s: %v", key, err)
		return false, err
	}
	if !found || len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn("ignoring malformed document at %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, data)
}

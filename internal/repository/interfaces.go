package repository

import (
	"context"

	"github.com/vytor/examprep/internal/models"
)

// QuestionRepository handles question bank data access
type QuestionRepository interface {
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Count(ctx context.Context, filter models.QuestionFilter) (int, error)
	UpsertBatch(ctx context.Context, questions []models.Question) (int, error)
}

// KeyValueStore persists opaque blobs under string keys. Get reports
// found=false for a missing key rather than an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ActivityRepository handles the append-only activity history
type ActivityRepository interface {
	Append(ctx context.Context, entry models.ActivityEntry) error
	List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityEntry, error)
	Count(ctx context.Context, filter models.ActivityFilter) (int, error)
}

// MasteryRepository handles vocabulary mastery data access
type MasteryRepository interface {
	Get(ctx context.Context, wordID string) (*models.WordMastery, error)
	Upsert(ctx context.Context, m models.WordMastery) error
	NeedsReview(ctx context.Context, threshold, limit int) ([]models.WordMastery, error)
}

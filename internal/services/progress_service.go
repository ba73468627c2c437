package services

import (
	"context"

	"github.com/vytor/examprep/internal/errors"
	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/progress"
)

// ProgressReader reads stored progress documents.
type ProgressReader interface {
	LoadProgress(ctx context.Context, sessionID string) (*models.ProgressRecord, error)
	LoadSummary(ctx context.Context, key string) (*models.SetProgress, error)
}

// ProgressService handles reads of stored session progress and summaries
type ProgressService interface {
	SessionProgress(ctx context.Context, sessionID string) (*models.ProgressRecord, error)
	SetProgress(ctx context.Context, qType models.QuestionType, difficulty models.Difficulty, setNumber int) (*models.SetProgress, error)
	QuickProgress(ctx context.Context, qType models.QuestionType) (*models.SetProgress, error)
}

type progressService struct {
	store ProgressReader
}

// NewProgressService creates a new ProgressService
func NewProgressService(store ProgressReader) ProgressService {
	return &progressService{store: store}
}

func (s *progressService) SessionProgress(ctx context.Context, sessionID string) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting session progress: session_id=%s", sessionID)

	if sessionID == "" {
		return nil, errors.NewValidationError("session_id", "cannot be empty")
	}
	rec, err := s.store.LoadProgress(ctx, sessionID)
	if err != nil {
		log.Error("failed to load progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if rec == nil {
		return nil, errors.NewNotFoundError("progress", sessionID)
	}
	return rec, nil
}

// SetProgress returns the summary of a numbered set. A set never started
// reads as an empty summary.
func (s *progressService) SetProgress(ctx context.Context, qType models.QuestionType, difficulty models.Difficulty, setNumber int) (*models.SetProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting set progress: type=%s, difficulty=%s, set=%d", qType, difficulty, setNumber)

	if !qType.Valid() {
		return nil, errors.NewValidationError("type", "unknown question type")
	}
	if !difficulty.Valid() {
		return nil, errors.NewValidationError("difficulty", "must be 'easy', 'medium', or 'hard'")
	}
	if setNumber < 1 {
		return nil, errors.NewValidationError("set", "must be at least 1")
	}
	return s.summary(ctx, progress.SetProgressKey(qType, difficulty, setNumber))
}

func (s *progressService) QuickProgress(ctx context.Context, qType models.QuestionType) (*models.SetProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting quick practice progress: type=%s", qType)

	if !qType.Valid() {
		return nil, errors.NewValidationError("type", "unknown question type")
	}
	return s.summary(ctx, progress.QuickPracticeKey(qType))
}

func (s *progressService) summary(ctx context.Context, key string) (*models.SetProgress, error) {
	sp, err := s.store.LoadSummary(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load summary %s: %v", key, err)
		return nil, errors.NewInternalError(err)
	}
	if sp == nil {
		return &models.SetProgress{}, nil
	}
	return sp, nil
}

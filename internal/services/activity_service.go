package services

import (
	"context"
	"time"

	"github.com/vytor/examprep/internal/errors"
	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/repository"
)

const maxActivityPage = 500

// ActivityPage is one page of activity history plus the total match count.
type ActivityPage struct {
	Entries []models.ActivityEntry `json:"entries"`
	Total   int                    `json:"total"`
}

// ActivityService handles activity history queries
type ActivityService interface {
	List(ctx context.Context, filter models.ActivityFilter) (*ActivityPage, error)
	Recent(ctx context.Context, since time.Duration) ([]models.ActivityEntry, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
	now          func() time.Time
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo, now: time.Now}
}

func (s *activityService) List(ctx context.Context, filter models.ActivityFilter) (*ActivityPage, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing activity: topic=%s, status=%s, limit=%d, offset=%d", filter.Topic, filter.Status, filter.Limit, filter.Offset)

	switch filter.Status {
	case "", models.ActivityCorrect, models.ActivityWrong:
	default:
		return nil, errors.NewValidationError("status", "must be 'correct' or 'wrong'")
	}
	if filter.Limit < 0 || filter.Limit > maxActivityPage {
		return nil, errors.NewValidationError("limit", "must be between 0 and 500")
	}
	if filter.Offset < 0 {
		return nil, errors.NewValidationError("offset", "cannot be negative")
	}

	entries, err := s.activityRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list activity: %v", err)
		return nil, errors.NewInternalError(err)
	}
	total, err := s.activityRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count activity: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if entries == nil {
		entries = []models.ActivityEntry{}
	}
	return &ActivityPage{Entries: entries, Total: total}, nil
}

// Recent lists every entry recorded within the last since.
func (s *activityService) Recent(ctx context.Context, since time.Duration) ([]models.ActivityEntry, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing recent activity: since=%s", since)

	if since <= 0 {
		return nil, errors.NewValidationError("since", "must be positive")
	}
	from := s.now().Add(-since)
	entries, err := s.activityRepo.List(ctx, models.ActivityFilter{Since: &from, Limit: maxActivityPage})
	if err != nil {
		log.Error("failed to list recent activity: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if entries == nil {
		entries = []models.ActivityEntry{}
	}
	return entries, nil
}

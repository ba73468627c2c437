package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vytor/examprep/internal/errors"
	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/mastery"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/repository"
)

// VocabularyService handles vocabulary mastery checks
type VocabularyService interface {
	Check(ctx context.Context, wordID, source string, correct bool) (*models.WordMastery, error)
	Get(ctx context.Context, wordID string) (*models.WordMastery, error)
	MarkKnown(ctx context.Context, wordID string, known bool) (*models.WordMastery, error)
	Review(ctx context.Context, limit int) ([]models.WordMastery, error)
}

type vocabularyService struct {
	masteryRepo     repository.MasteryRepository
	reviewThreshold int
	now             func() time.Time
	locks           wordLocks
}

// wordLocks serialises read-modify-write cycles on one word.
type wordLocks struct {
	mu   sync.Mutex
	held map[string]*wordLock
}

type wordLock struct {
	sync.Mutex
	refs int
}

func (l *wordLocks) lock(wordID string) func() {
	l.mu.Lock()
	if l.held == nil {
		l.held = make(map[string]*wordLock)
	}
	wl, ok := l.held[wordID]
	if !ok {
		wl = &wordLock{}
		l.held[wordID] = wl
	}
	wl.refs++
	l.mu.Unlock()

	wl.Lock()
	return func() {
		wl.Unlock()
		l.mu.Lock()
		wl.refs--
		if wl.refs == 0 {
			delete(l.held, wordID)
		}
		l.mu.Unlock()
	}
}

// NewVocabularyService creates a new VocabularyService. Known words whose
// level stays below reviewThreshold are listed for review.
func NewVocabularyService(masteryRepo repository.MasteryRepository, reviewThreshold int) VocabularyService {
	return &vocabularyService{
		masteryRepo:     masteryRepo,
		reviewThreshold: reviewThreshold,
		now:             time.Now,
	}
}

func (s *vocabularyService) Check(ctx context.Context, wordID, source string, correct bool) (*models.WordMastery, error) {
	log := logger.FromContext(ctx)
	log.Debug("checking word: word_id=%s, source=%s, correct=%t", wordID, source, correct)

	wordID = strings.TrimSpace(wordID)
	if wordID == "" {
		return nil, errors.NewValidationError("word_id", "cannot be empty")
	}
	switch source {
	case models.CheckFlashcard, models.CheckSpelling:
	default:
		return nil, errors.NewValidationError("source", "must be 'flashcard' or 'spelling'")
	}

	unlock := s.locks.lock(wordID)
	defer unlock()

	current, err := s.masteryRepo.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to get mastery: %v", err)
		return nil, errors.NewInternalError(err)
	}
	m := models.WordMastery{WordID: wordID}
	if current != nil {
		m = *current
	}

	m.Level = mastery.UpdateMastery(wordID, correct, m.Level)
	m.TimesChecked++
	if correct {
		m.TimesCorrect++
	}
	m.LastCheckedBy = source
	m.UpdatedAt = s.now()

	if err := s.masteryRepo.Upsert(ctx, m); err != nil {
		log.Error("failed to save mastery: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("word %s now at level %d", wordID, m.Level)
	return &m, nil
}

// MarkKnown records whether the learner considers the word known. Only
// known words are listed for review.
func (s *vocabularyService) MarkKnown(ctx context.Context, wordID string, known bool) (*models.WordMastery, error) {
	log := logger.FromContext(ctx)
	log.Debug("marking word: word_id=%s, known=%t", wordID, known)

	wordID = strings.TrimSpace(wordID)
	if wordID == "" {
		return nil, errors.NewValidationError("word_id", "cannot be empty")
	}
	unlock := s.locks.lock(wordID)
	defer unlock()

	current, err := s.masteryRepo.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to get mastery: %v", err)
		return nil, errors.NewInternalError(err)
	}
	m := models.WordMastery{WordID: wordID}
	if current != nil {
		m = *current
	}
	m.Known = known
	m.UpdatedAt = s.now()

	if err := s.masteryRepo.Upsert(ctx, m); err != nil {
		log.Error("failed to save mastery: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &m, nil
}

func (s *vocabularyService) Get(ctx context.Context, wordID string) (*models.WordMastery, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting mastery: word_id=%s", wordID)

	m, err := s.masteryRepo.Get(ctx, wordID)
	if err != nil {
		log.Error("failed to get mastery: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if m == nil {
		return nil, errors.NewNotFoundError("word", wordID)
	}
	return m, nil
}

func (s *vocabularyService) Review(ctx context.Context, limit int) ([]models.WordMastery, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing review words: threshold=%d, limit=%d", s.reviewThreshold, limit)

	if limit < 0 {
		return nil, errors.NewValidationError("limit", "cannot be negative")
	}
	words, err := s.masteryRepo.NeedsReview(ctx, s.reviewThreshold, limit)
	if err != nil {
		log.Error("failed to list review words: %v", err)
		return nil, errors.NewInternalError(err)
	}

	due := make([]models.WordMastery, 0, len(words))
	for _, w := range words {
		if mastery.NeedsReview(w.Known, w.Level, s.reviewThreshold) {
			due = append(due, w)
		}
	}
	return due, nil
}

package questions

import (
	"context"
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/repository"
)

// DefaultFullExamSize is the number of questions in an assembled full exam.
const DefaultFullExamSize = 80

// Bank is a Source backed by the question repository.
type Bank struct {
	repo         repository.QuestionRepository
	fullExamSize int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewBank(repo repository.QuestionRepository, fullExamSize int, r *rand.Rand) *Bank {
	if fullExamSize <= 0 {
		fullExamSize = DefaultFullExamSize
	}
	if r == nil {
		r = NewRand()
	}
	return &Bank{repo: repo, fullExamSize: fullExamSize, rng: r}
}

func (b *Bank) FetchByTypeAndDifficulty(ctx context.Context, difficulty models.Difficulty, qType models.QuestionType) ([]models.Question, error) {
	return b.repo.List(ctx, models.QuestionFilter{Type: qType, Difficulty: difficulty})
}

func (b *Bank) FetchSentenceCompletion(ctx context.Context) ([]models.Question, error) {
	return b.repo.List(ctx, models.QuestionFilter{Type: models.TypeSentenceCompletion})
}

func (b *Bank) FetchRestatement(ctx context.Context) ([]models.Question, error) {
	return b.repo.List(ctx, models.QuestionFilter{Type: models.TypeRestatement})
}

func (b *Bank) FetchVocabulary(ctx context.Context) ([]models.Question, error) {
	return b.repo.List(ctx, models.QuestionFilter{Type: models.TypeVocabulary})
}

func (b *Bank) FetchReadingComprehension(ctx context.Context) ([]models.Question, error) {
	return b.repo.List(ctx, models.QuestionFilter{Type: models.TypeReadingComprehension})
}

// FetchFullExam assembles a mixed exam: an equal random share of every
// question type, grouped by type in exam order. Earlier sections absorb
// any remainder. A type with too few questions contributes what it has.
func (b *Bank) FetchFullExam(ctx context.Context) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_bank")

	pools := make([][]models.Question, len(models.QuestionTypes))
	g, gctx := errgroup.WithContext(ctx)
	for i, qType := range models.QuestionTypes {
		i, qType := i, qType
		g.Go(func() error {
			qs, err := b.repo.List(gctx, models.QuestionFilter{Type: qType})
			if err != nil {
				return err
			}
			pools[i] = qs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("failed to fetch exam pools: %v", err)
		return nil, err
	}

	quota := b.fullExamSize / len(pools)
	extra := b.fullExamSize % len(pools)

	b.mu.Lock()
	defer b.mu.Unlock()

	exam := make([]models.Question, 0, b.fullExamSize)
	for i, pool := range pools {
		n := quota
		if i < extra {
			n++
		}
		if n == 0 {
			continue
		}
		picked := ShuffleWithLimit(pool, n, b.rng)
		if len(picked) < n {
			log.Warn("only %d %s questions available for a quota of %d", len(picked), models.QuestionTypes[i], n)
		}
		exam = append(exam, picked...)
	}
	log.Info("assembled full exam with %d questions", len(exam))
	return exam, nil
}

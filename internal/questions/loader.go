package questions

import (
	"context"
	"math/rand"
	"sync"

	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
)

// DefaultPageSize is the number of questions in a numbered set.
const DefaultPageSize = 10

// Source fetches raw question pools. Implementations may fail; Loader
// absorbs those failures.
type Source interface {
	FetchByTypeAndDifficulty(ctx context.Context, difficulty models.Difficulty, qType models.QuestionType) ([]models.Question, error)
	FetchFullExam(ctx context.Context) ([]models.Question, error)
	FetchSentenceCompletion(ctx context.Context) ([]models.Question, error)
	FetchRestatement(ctx context.Context) ([]models.Question, error)
	FetchVocabulary(ctx context.Context) ([]models.Question, error)
	FetchReadingComprehension(ctx context.Context) ([]models.Question, error)
}

// Loader turns Criteria into an ordered question list. It never returns an
// error: fetch failures are logged, reported and become an empty list.
type Loader struct {
	source    Source
	pageSize  int
	onFailure models.FailureFunc

	mu  sync.Mutex
	rng *rand.Rand
}

type LoaderOption func(*Loader)

func WithPageSize(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.pageSize = n
		}
	}
}

func WithRand(r *rand.Rand) LoaderOption {
	return func(l *Loader) {
		if r != nil {
			l.rng = r
		}
	}
}

func WithFailureFunc(fn models.FailureFunc) LoaderOption {
	return func(l *Loader) { l.onFailure = fn }
}

func NewLoader(source Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		source:   source,
		pageSize: DefaultPageSize,
		rng:      NewRand(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) Load(ctx context.Context, c Criteria) []models.Question {
	log := logger.FromContext(ctx).WithPrefix("questions")

	var out []models.Question
	switch {
	case c.FullExam:
		log.Debug("loading full exam")
		out = l.fetch(ctx, "full-exam", l.source.FetchFullExam)
	case len(c.Questions) > 0:
		log.Debug("using %d pre-supplied questions", len(c.Questions))
		out = append([]models.Question(nil), c.Questions...)
	case c.Type != "" && c.Difficulty == "":
		log.Debug("loading quick practice: type=%s, limit=%d", c.Type, c.Limit)
		out = l.shuffle(l.fetchType(ctx, c.Type), c.Limit)
	case c.Type != "":
		out = l.loadByDifficulty(ctx, c.Type, c.Difficulty, c.Limit, c.SetNumber, c.Start)
	case c.Selection != nil:
		sel := c.Selection
		log.Debug("loading selection: type=%s, difficulty=%s", sel.Type, sel.Difficulty)
		if sel.Type != "" && sel.Difficulty != "" {
			out = l.loadByDifficulty(ctx, sel.Type, sel.Difficulty, sel.Limit, 0, nil)
		} else if sel.Type != "" {
			out = l.shuffle(l.fetchType(ctx, sel.Type), sel.Limit)
		}
	default:
		log.Warn("criteria select no questions")
	}

	if out == nil {
		out = []models.Question{}
	}
	log.Info("loaded %d questions", len(out))
	return out
}

func (l *Loader) loadByDifficulty(ctx context.Context, qType models.QuestionType, d models.Difficulty, limit, setNumber int, start *int) []models.Question {
	log := logger.FromContext(ctx).WithPrefix("questions")
	if !qType.Valid() {
		log.Warn("unknown question type %q", qType)
		return nil
	}

	resolved, ok := ResolveDifficulty(qType, d)
	if !ok {
		log.Debug("difficulty %q spans every level for %s", d, qType)
		return l.shuffle(l.fetchType(ctx, qType), limit)
	}

	pool := l.fetch(ctx, string(qType)+"/"+string(resolved), func(ctx context.Context) ([]models.Question, error) {
		return l.source.FetchByTypeAndDifficulty(ctx, resolved, qType)
	})

	switch {
	case setNumber > 0 && start != nil:
		log.Debug("slicing set %d from offset %d", setNumber, *start)
		return page(pool, *start, l.pageSize)
	case limit > 0:
		return l.shuffle(pool, limit)
	default:
		return pool
	}
}

func (l *Loader) fetchType(ctx context.Context, qType models.QuestionType) []models.Question {
	var fn func(context.Context) ([]models.Question, error)
	switch qType {
	case models.TypeSentenceCompletion:
		fn = l.source.FetchSentenceCompletion
	case models.TypeRestatement:
		fn = l.source.FetchRestatement
	case models.TypeVocabulary:
		fn = l.source.FetchVocabulary
	case models.TypeReadingComprehension:
		fn = l.source.FetchReadingComprehension
	default:
		logger.FromContext(ctx).WithPrefix("questions").Warn("unknown question type %q", qType)
		return nil
	}
	return l.fetch(ctx, string(qType), fn)
}

func (l *Loader) fetch(ctx context.Context, what string, fn func(context.Context) ([]models.Question, error)) []models.Question {
	qs, err := fn(ctx)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("questions").Error("failed to fetch %s questions: %v", what, err)
		l.onFailure.Report("fetch_questions", what, err)
		return nil
	}
	return qs
}

func (l *Loader) shuffle(qs []models.Question, limit int) []models.Question {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ShuffleWithLimit(qs, limit, l.rng)
}

func page(qs []models.Question, start, size int) []models.Question {
	if start < 0 {
		start = 0
	}
	if start >= len(qs) {
		return nil
	}
	end := start + size
	if end > len(qs) {
		end = len(qs)
	}
	return append([]models.Question(nil), qs[start:end]...)
}

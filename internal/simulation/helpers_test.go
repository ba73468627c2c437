package simulation_test

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/progress"
	"github.com/vytor/examprep/internal/questions"
	"github.com/vytor/examprep/internal/simulation"
	"github.com/vytor/examprep/internal/testutil"
)

// recorder is a PersistQueue that applies writes to an in-memory store
// immediately and keeps a log of what it was asked to do.
type recorder struct {
	mu       sync.Mutex
	store    *progress.Store
	kv       *progress.MemoryStore
	ops      []string
	activity []models.ActivityEntry
}

func newRecorder() *recorder {
	kv := progress.NewMemoryStore()
	return &recorder{kv: kv, store: progress.NewStore(kv)}
}

func (r *recorder) SaveProgress(sessionID string, rec models.ProgressRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "save_progress:"+sessionID)
	return r.store.SaveProgress(context.Background(), sessionID, rec)
}

func (r *recorder) SaveSummary(key string, summary models.SetProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "save_summary:"+key)
	return r.store.SaveSummary(context.Background(), key, summary)
}

func (r *recorder) DeleteProgress(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "delete_progress:"+sessionID)
	return r.store.DeleteProgress(context.Background(), sessionID)
}

func (r *recorder) AppendActivity(entry models.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "append_activity:"+entry.Topic)
	r.activity = append(r.activity, entry)
	return nil
}

func (r *recorder) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

func (r *recorder) Activity() []models.ActivityEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ActivityEntry(nil), r.activity...)
}

// staticLoader returns a fixed bank and counts loads.
type staticLoader struct {
	mu    sync.Mutex
	bank  []models.Question
	calls int
}

func (l *staticLoader) Load(_ context.Context, c questions.Criteria) []models.Question {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if len(c.Questions) > 0 {
		return append([]models.Question(nil), c.Questions...)
	}
	return append([]models.Question(nil), l.bank...)
}

func (l *staticLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func bank(n int) []models.Question {
	return testutil.Questions("q", models.TypeVocabulary, models.DifficultyEasy, n)
}

func newSession(cfg simulation.Config, loader simulation.QuestionLoader, rec *recorder) *simulation.Session {
	return simulation.NewSession(cfg, simulation.Deps{
		Loader:   loader,
		Progress: rec.store,
		Persist:  rec,
		Now:      func() time.Time { return fixedNow },
	})
}

func trainingConfig(id string) simulation.Config {
	return simulation.Config{
		SessionID: id,
		Criteria:  questions.Criteria{Type: models.TypeVocabulary, Difficulty: models.DifficultyEasy},
		Mode:      simulation.Mode{Practice: true},
	}
}

func examConfig(id string) simulation.Config {
	return simulation.Config{
		SessionID:    id,
		Criteria:     questions.Criteria{FullExam: true},
		ExamDuration: 5 * time.Second,
	}
}

// answer selects option and submits it at the current position.
func answer(ctx context.Context, s *simulation.Session, option int) simulation.State {
	s.SelectAnswer(ctx, option)
	return s.Submit(ctx)
}

const (
	right = 1 // testutil questions are answered by option 1
	wrong = 2
)

package simulation

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/examprep/internal/jobs"
	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/progress"
	"github.com/vytor/examprep/internal/questions"
)

// QuestionLoader resolves criteria to questions. It does not fail.
type QuestionLoader interface {
	Load(ctx context.Context, c questions.Criteria) []models.Question
}

// ProgressReader reads a stored Progress Record; nil when absent.
type ProgressReader interface {
	LoadProgress(ctx context.Context, sessionID string) (*models.ProgressRecord, error)
}

type Deps struct {
	Loader   QuestionLoader
	Progress ProgressReader
	Persist  jobs.PersistQueue

	// OnFailure observes absorbed errors that did not come from Persist.
	OnFailure models.FailureFunc

	// TimerInterval is the countdown tick. Zero disables the background
	// ticker; Tick events can then be applied by hand.
	TimerInterval time.Duration

	Now func() time.Time
}

// Session runs one simulation. User actions and timer ticks are applied
// one at a time under a single lock; Reduce decides, Session carries out
// the effects.
type Session struct {
	deps Deps

	mu       sync.Mutex
	state    State
	timer    *countdown
	closed   bool
	lastUsed time.Time
}

func NewSession(cfg Config, deps Deps) *Session {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Persist == nil {
		deps.Persist = discard{}
	}
	return &Session{
		deps:     deps,
		state:    NewState(cfg),
		lastUsed: deps.Now(),
	}
}

// Start loads the questions and, in training mode, restores stored
// progress. It returns once the session is loaded.
func (s *Session) Start(ctx context.Context) State {
	return s.Apply(ctx, Initialize{})
}

func (s *Session) SelectAnswer(ctx context.Context, option int) State {
	return s.Apply(ctx, SelectAnswer{Option: option})
}

func (s *Session) Submit(ctx context.Context) State {
	return s.Apply(ctx, SubmitAnswer{})
}

func (s *Session) Next(ctx context.Context) State {
	return s.Apply(ctx, NextQuestion{})
}

func (s *Session) Previous(ctx context.Context) State {
	return s.Apply(ctx, PreviousQuestion{})
}

func (s *Session) Navigate(ctx context.Context, index int) State {
	return s.Apply(ctx, NavigateToQuestion{Index: index})
}

func (s *Session) ToggleExplanation(ctx context.Context) State {
	return s.Apply(ctx, ToggleExplanation{})
}

func (s *Session) ToggleFlag(ctx context.Context, index int) State {
	return s.Apply(ctx, ToggleQuestionFlag{Index: index})
}

func (s *Session) Restart(ctx context.Context) State {
	return s.Apply(ctx, Restart{})
}

// Reset deletes stored progress and restarts.
func (s *Session) Reset(ctx context.Context) State {
	return s.Apply(ctx, Reset{})
}

// Apply runs ev through Reduce and executes the resulting effects. When a
// reload is requested, the questions are fetched without holding the lock
// and the result is applied as a Loaded event.
func (s *Session) Apply(ctx context.Context, ev Event) State {
	s.mu.Lock()
	if s.closed {
		st := s.state
		s.mu.Unlock()
		return st
	}
	if _, isTick := ev.(Tick); !isTick {
		s.lastUsed = s.deps.Now()
	}

	if l, ok := ev.(Loaded); ok && l.Generation != s.state.Generation {
		logger.FromContext(ctx).WithPrefix("simulation").
			Debug("discarding stale load for session %s: generation %d, current %d", s.state.SessionID, l.Generation, s.state.Generation)
	}

	next, effects := Reduce(s.state, ev)
	s.state = next
	fetch := s.execute(ctx, effects)
	st := s.state
	cfg := st.Config
	s.mu.Unlock()

	if fetch == nil {
		return st
	}
	return s.load(ctx, cfg, *fetch)
}

func (s *Session) load(ctx context.Context, cfg Config, f FetchQuestions) State {
	log := logger.FromContext(ctx).WithPrefix("simulation").WithField("session", cfg.SessionID)

	qs := s.deps.Loader.Load(ctx, cfg.Criteria)

	var rec *models.ProgressRecord
	if f.Restore && s.deps.Progress != nil {
		var err error
		rec, err = s.deps.Progress.LoadProgress(ctx, cfg.SessionID)
		if err != nil {
			log.Warn("could not restore progress: %v", err)
			s.deps.OnFailure.Report("load_progress", progress.ProgressKey(cfg.SessionID), err)
			rec = nil
		} else if rec != nil {
			log.Info("restoring progress at question %d", rec.CurrentQuestionIndex)
		}
	}
	return s.Apply(ctx, Loaded{Generation: f.Generation, Questions: qs, Record: rec})
}

// execute carries out effects in order. Must be called with s.mu held.
// A FetchQuestions effect is returned for the caller to run unlocked.
func (s *Session) execute(ctx context.Context, effects []Effect) *FetchQuestions {
	log := logger.FromContext(ctx).WithPrefix("simulation").WithField("session", s.state.SessionID)

	var fetch *FetchQuestions
	for _, eff := range effects {
		switch e := eff.(type) {
		case FetchQuestions:
			fetch = &e
		case StartTimer:
			s.startTimer(e.TimerID)
		case StopTimer:
			s.stopTimer()
		case LogAnswer:
			s.enqueue(log, "append_activity", s.deps.Persist.AppendActivity(models.NewAnswerEntry(e.Topic, e.QuestionID, e.Correct, s.deps.Now())))
		case LogCompletion:
			log.Info("session complete (%s): score %d%%, %d/%d correct", s.state.CompletionReason, e.ScorePercentage, e.Correct, e.Answered)
			s.enqueue(log, "append_activity", s.deps.Persist.AppendActivity(models.NewCompletionEntry(e.Topic, e.ScorePercentage, e.Correct, e.Answered, s.deps.Now())))
		case SaveProgress:
			s.enqueue(log, "save_progress", s.deps.Persist.SaveProgress(s.state.SessionID, e.Record))
		case SaveSetProgress:
			s.enqueue(log, "save_summary", s.deps.Persist.SaveSummary(progress.SetProgressKey(e.Type, e.Difficulty, e.SetNumber), e.Summary))
		case SaveQuickProgress:
			s.enqueue(log, "save_summary", s.deps.Persist.SaveSummary(progress.QuickPracticeKey(e.Type), e.Summary))
		case DeleteProgress:
			log.Info("resetting stored progress")
			s.enqueue(log, "delete_progress", s.deps.Persist.DeleteProgress(s.state.SessionID))
		}
	}
	return fetch
}

func (s *Session) enqueue(log *logger.Logger, op string, err error) {
	if err != nil {
		log.Warn("%s not queued: %v", op, err)
	}
}

func (s *Session) startTimer(id uint64) {
	s.stopTimer()
	if s.deps.TimerInterval <= 0 {
		return
	}
	s.timer = startCountdown(s.deps.TimerInterval, func() {
		s.Apply(context.Background(), Tick{TimerID: id})
	})
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// State returns the current state. The returned value is never modified
// by the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastUsed is the time of the last user action.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Close stops the timer. Later actions are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimer()
}

type discard struct{}

func (discard) SaveProgress(string, models.ProgressRecord) error { return nil }
func (discard) SaveSummary(string, models.SetProgress) error     { return nil }
func (discard) DeleteProgress(string) error                      { return nil }
func (discard) AppendActivity(models.ActivityEntry) error        { return nil }

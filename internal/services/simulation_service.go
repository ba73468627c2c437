package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vytor/examprep/internal/errors"
	"github.com/vytor/examprep/internal/jobs"
	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/questions"
	"github.com/vytor/examprep/internal/simulation"
)

// StartRequest opens a session. An empty SessionID is derived from the
// criteria.
type StartRequest struct {
	SessionID string             `json:"sessionId,omitempty"`
	Criteria  questions.Criteria `json:"criteria"`
	Mode      simulation.Mode    `json:"mode"`
}

// SimulationService handles the live simulation sessions
type SimulationService interface {
	Start(ctx context.Context, req StartRequest) (simulation.State, error)
	Get(ctx context.Context, sessionID string) (simulation.State, error)
	SelectAnswer(ctx context.Context, sessionID string, option int) (simulation.State, error)
	Submit(ctx context.Context, sessionID string) (simulation.State, error)
	Next(ctx context.Context, sessionID string) (simulation.State, error)
	Previous(ctx context.Context, sessionID string) (simulation.State, error)
	Navigate(ctx context.Context, sessionID string, index int) (simulation.State, error)
	ToggleExplanation(ctx context.Context, sessionID string) (simulation.State, error)
	ToggleFlag(ctx context.Context, sessionID string, index int) (simulation.State, error)
	Restart(ctx context.Context, sessionID string) (simulation.State, error)
	Reset(ctx context.Context, sessionID string) (simulation.State, error)
	Close(ctx context.Context, sessionID string) error

	// SweepIdle closes sessions unused for longer than the idle TTL and
	// returns how many were closed.
	SweepIdle(ctx context.Context, now time.Time) int
	RunJanitor(ctx context.Context, interval time.Duration)
	Shutdown(ctx context.Context)
}

// SimulationConfig tunes the sessions a SimulationService creates.
type SimulationConfig struct {
	ExamDuration  time.Duration
	TimerInterval time.Duration
	IdleTTL       time.Duration
	OnFailure     models.FailureFunc
	Now           func() time.Time
}

type simulationService struct {
	loader   simulation.QuestionLoader
	progress simulation.ProgressReader
	persist  jobs.PersistQueue
	cfg      SimulationConfig

	mu       sync.Mutex
	sessions map[string]*simulation.Session
}

// NewSimulationService creates a new SimulationService
func NewSimulationService(
	loader simulation.QuestionLoader,
	progress simulation.ProgressReader,
	persist jobs.PersistQueue,
	cfg SimulationConfig,
) SimulationService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &simulationService{
		loader:   loader,
		progress: progress,
		persist:  persist,
		cfg:      cfg,
		sessions: make(map[string]*simulation.Session),
	}
}

func validateCriteria(c questions.Criteria) error {
	if c.Type != "" && !c.Type.Valid() {
		return errors.NewValidationError("type", "unknown question type")
	}
	if c.Difficulty != "" && !c.Difficulty.Valid() {
		return errors.NewValidationError("difficulty", "must be 'easy', 'medium', or 'hard'")
	}
	if c.Limit < 0 {
		return errors.NewValidationError("limit", "cannot be negative")
	}
	if c.SetNumber < 0 {
		return errors.NewValidationError("set", "cannot be negative")
	}
	if c.Start != nil && *c.Start < 0 {
		return errors.NewValidationError("start", "cannot be negative")
	}
	if sel := c.Selection; sel != nil {
		if !sel.Type.Valid() {
			return errors.NewValidationError("selection.type", "unknown question type")
		}
		if sel.Difficulty != models.DifficultyMixed && !sel.Difficulty.Valid() {
			return errors.NewValidationError("selection.difficulty", "must be 'easy', 'medium', 'hard', or 'mixed'")
		}
		if sel.Limit < 0 {
			return errors.NewValidationError("selection.limit", "cannot be negative")
		}
	}
	for i, q := range c.Questions {
		if err := q.Validate(); err != nil {
			return errors.NewValidationError("questions", fmt.Sprintf("item %d: %v", i, err))
		}
	}
	return nil
}

func (s *simulationService) Start(ctx context.Context, req StartRequest) (simulation.State, error) {
	log := logger.FromContext(ctx)

	if err := validateCriteria(req.Criteria); err != nil {
		return simulation.State{}, err
	}
	id := req.SessionID
	if id == "" {
		id = simulation.SessionID(req.Criteria)
	}
	log.Debug("starting session: session_id=%s", id)

	s.mu.Lock()
	if existing, ok := s.sessions[id]; ok {
		s.mu.Unlock()
		st := existing.State()
		exam, show := simulation.ResolveMode(req.Criteria.FullExam, req.Mode)
		if st.ExamMode != exam || st.ShowAnswersImmediately != show {
			log.Warn("session running in another mode: session_id=%s, exam_mode=%t, requested_exam_mode=%t", id, st.ExamMode, exam)
			return simulation.State{}, errors.NewConflictError(fmt.Sprintf("session %s is already running in %s mode", id, modeName(st.ExamMode)))
		}
		log.Debug("session already running: session_id=%s", id)
		return st, nil
	}
	sess := simulation.NewSession(simulation.Config{
		SessionID:    id,
		Criteria:     req.Criteria,
		Mode:         req.Mode,
		ExamDuration: s.cfg.ExamDuration,
	}, simulation.Deps{
		Loader:        s.loader,
		Progress:      s.progress,
		Persist:       s.persist,
		OnFailure:     s.cfg.OnFailure,
		TimerInterval: s.cfg.TimerInterval,
		Now:           s.cfg.Now,
	})
	s.sessions[id] = sess
	s.mu.Unlock()

	st := sess.Start(ctx)
	log.Info("session started: session_id=%s, questions=%d, exam_mode=%t", id, st.TotalQuestions, st.ExamMode)
	return st, nil
}

func modeName(exam bool) string {
	if exam {
		return "exam"
	}
	return "training"
}

func (s *simulationService) lookup(sessionID string) (*simulation.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	return sess, nil
}

func (s *simulationService) apply(ctx context.Context, sessionID string, action string, fn func(*simulation.Session) simulation.State) (simulation.State, error) {
	logger.FromContext(ctx).Debug("%s: session_id=%s", action, sessionID)

	sess, err := s.lookup(sessionID)
	if err != nil {
		return simulation.State{}, err
	}
	return fn(sess), nil
}

func (s *simulationService) Get(ctx context.Context, sessionID string) (simulation.State, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return simulation.State{}, err
	}
	return sess.State(), nil
}

func (s *simulationService) SelectAnswer(ctx context.Context, sessionID string, option int) (simulation.State, error) {
	if option < 0 {
		return simulation.State{}, errors.NewValidationError("option", "cannot be negative")
	}
	return s.apply(ctx, sessionID, "select answer", func(sess *simulation.Session) simulation.State {
		return sess.SelectAnswer(ctx, option)
	})
}

func (s *simulationService) Submit(ctx context.Context, sessionID string) (simulation.State, error) {
	return s.apply(ctx, sessionID, "submit answer", func(sess *simulation.Session) simulation.State {
		return sess.Submit(ctx)
	})
}

func (s *simulationService) Next(ctx context.Context, sessionID string) (simulation.State, error) {
	return s.apply(ctx, sessionID, "next question", func(sess *simulation.Session) simulation.State {
		return sess.Next(ctx)
	})
}

func (s *simulationService) Previous(ctx context.Context, sessionID string) (simulation.State, error) {
	return s.apply(ctx, sessionID, "previous question", func(sess *simulation.Session) simulation.State {
		return sess.Previous(ctx)
	})
}

func (s *simulationService) Navigate(ctx context.Context, sessionID string, index int) (simulation.State, error) {
	return s.apply(ctx, sessionID, "navigate", func(sess *simulation.Session) simulation.State {
		return sess.Navigate(ctx, index)
	})
}

func (s *simulationService) ToggleExplanation(ctx context.Context, sessionID string) (simulation.State, error) {
	return s.apply(ctx, sessionID, "toggle explanation", func(sess *simulation.Session) simulation.State {
		return sess.ToggleExplanation(ctx)
	})
}

func (s *simulationService) ToggleFlag(ctx context.Context, sessionID string, index int) (simulation.State, error) {
	return s.apply(ctx, sessionID, "toggle flag", func(sess *simulation.Session) simulation.State {
		return sess.ToggleFlag(ctx, index)
	})
}

func (s *simulationService) Restart(ctx context.Context, sessionID string) (simulation.State, error) {
	return s.apply(ctx, sessionID, "restart", func(sess *simulation.Session) simulation.State {
		return sess.Restart(ctx)
	})
}

func (s *simulationService) Reset(ctx context.Context, sessionID string) (simulation.State, error) {
	return s.apply(ctx, sessionID, "reset", func(sess *simulation.Session) simulation.State {
		return sess.Reset(ctx)
	})
}

func (s *simulationService) Close(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)
	log.Debug("closing session: session_id=%s", sessionID)

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return errors.NewNotFoundError("session", sessionID)
	}
	sess.Close()
	log.Info("session closed: session_id=%s", sessionID)
	return nil
}

func (s *simulationService) SweepIdle(ctx context.Context, now time.Time) int {
	if s.cfg.IdleTTL <= 0 {
		return 0
	}

	var idle []*simulation.Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.Sub(sess.LastUsed()) > s.cfg.IdleTTL {
			idle = append(idle, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		sess.Close()
	}
	if len(idle) > 0 {
		logger.FromContext(ctx).Info("closed %d idle sessions", len(idle))
	}
	return len(idle)
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (s *simulationService) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.cfg.IdleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepIdle(ctx, s.cfg.Now())
		}
	}
}

// Shutdown closes every session. Pending writes are left to the queue.
func (s *simulationService) Shutdown(ctx context.Context) {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*simulation.Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
	logger.FromContext(ctx).Info("closed %d sessions", len(sessions))
}

package simulation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/progress"
	"github.com/vytor/examprep/internal/questions"
	"github.com/vytor/examprep/internal/simulation"
	"github.com/vytor/examprep/internal/testutil/mocks"
)

type SessionSuite struct {
	suite.Suite
	ctx    context.Context
	rec    *recorder
	loader *staticLoader
}

func (s *SessionSuite) SetupTest() {
	s.ctx = context.Background()
	s.rec = newRecorder()
	s.loader = &staticLoader{bank: bank(10)}
}

func (s *SessionSuite) TestReansweringBeforeMovingOn() {
	sess := newSession(trainingConfig("scenario-a"), s.loader, s.rec)
	sess.Start(s.ctx)

	answer(s.ctx, sess, right)
	st := answer(s.ctx, sess, wrong)

	s.Equal(0, st.Score)
	s.Equal(1, st.AnsweredCount)
	s.Equal(0, st.CorrectCount)
	s.Len(s.rec.Activity(), 2, "each submission is logged")
}

func (s *SessionSuite) TestTrainingProgressIsPersistedAndRestored() {
	sess := newSession(trainingConfig("resume"), s.loader, s.rec)
	sess.Start(s.ctx)
	answer(s.ctx, sess, right)
	sess.Next(s.ctx)
	answer(s.ctx, sess, wrong)
	sess.ToggleFlag(s.ctx, 4)
	sess.Close()

	stored, err := s.rec.store.LoadProgress(s.ctx, "resume")
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal(1, stored.CurrentQuestionIndex)
	s.Equal(2, stored.AnsweredQuestionsCount)

	again := newSession(trainingConfig("resume"), s.loader, s.rec)
	st := again.Start(s.ctx)
	s.True(st.Loaded)
	s.Equal(1, st.CurrentIndex)
	s.Equal(2, st.AnsweredCount)
	s.Equal(1, st.Score)
	s.True(st.Flags["q-4"])
	s.True(st.Submitted)
}

func (s *SessionSuite) TestFullExamNeverReadsStoredProgress() {
	// a pending training record under the same id
	s.Require().NoError(s.rec.store.SaveProgress(s.ctx, "full-exam", models.ProgressRecord{
		CurrentQuestionIndex: 5, UserAnswers: map[int]int{0: 1, 3: 2}, Score: 1, AnsweredQuestionsCount: 2,
	}))

	reader := new(mocks.MockProgressReader)
	sess := simulation.NewSession(examConfig("full-exam"), simulation.Deps{Loader: s.loader, Progress: reader, Persist: s.rec})
	st := sess.Start(s.ctx)
	defer sess.Close()

	reader.AssertNotCalled(s.T(), "LoadProgress", mock.Anything, mock.Anything)
	s.Equal(0, st.CurrentIndex)
	s.Empty(st.Answers)
	s.True(st.ExamMode)
	s.True(st.TimerActive)
}

func (s *SessionSuite) TestExamSessionNeverWritesProgress() {
	sess := newSession(examConfig("exam-1"), s.loader, s.rec)
	sess.Start(s.ctx)
	for i := 0; i < 10; i++ {
		answer(s.ctx, sess, right)
		sess.ToggleFlag(s.ctx, i)
		sess.Previous(s.ctx)
		sess.Next(s.ctx)
		sess.Next(s.ctx)
	}
	st := sess.State()
	s.True(st.Complete)
	sess.Restart(s.ctx)
	sess.Reset(s.ctx)
	sess.Close()

	s.Empty(s.rec.kv.Keys("simulation_progress_"))
	for _, op := range s.rec.Ops() {
		s.NotEqual("save_progress:exam-1", op)
	}
}

func (s *SessionSuite) TestCompletionOnlyFromLastPosition() {
	s.loader.bank = bank(25)
	sess := newSession(trainingConfig("scenario-e"), s.loader, s.rec)
	sess.Start(s.ctx)

	var st simulation.State
	for i := 1; i <= 24; i++ {
		st = sess.Next(s.ctx)
		s.Falsef(st.Complete, "completed early on call %d", i)
	}
	s.Equal(24, st.CurrentIndex)
	s.True(st.IsLast())

	st = sess.Next(s.ctx)
	s.True(st.Complete)
	s.Equal(24, st.CurrentIndex)

	completions := 0
	for _, e := range s.rec.Activity() {
		if e.IsCompleted {
			completions++
		}
	}
	s.Equal(1, completions)
}

func (s *SessionSuite) TestRestartAlwaysResets() {
	sess := newSession(trainingConfig("restart"), s.loader, s.rec)
	sess.Start(s.ctx)
	answer(s.ctx, sess, right)
	sess.Navigate(s.ctx, 6)
	answer(s.ctx, sess, right)

	st := sess.Restart(s.ctx)
	s.Equal(0, st.AnsweredCount)
	s.Equal(0, st.Score)
	s.Equal(0, st.CurrentIndex)
	s.True(st.Loaded)
	s.Equal(2, s.loader.Calls(), "restart reloads questions")

	stored, err := s.rec.store.LoadProgress(s.ctx, "restart")
	s.Require().NoError(err)
	s.NotNil(stored, "restart keeps the stored record")
}

func (s *SessionSuite) TestResetDeletesStoredProgress() {
	sess := newSession(trainingConfig("reset"), s.loader, s.rec)
	sess.Start(s.ctx)
	answer(s.ctx, sess, right)

	st := sess.Reset(s.ctx)
	s.Equal(0, st.AnsweredCount)
	s.True(st.Loaded)

	stored, err := s.rec.store.LoadProgress(s.ctx, "reset")
	s.Require().NoError(err)
	s.Nil(stored)
	s.Contains(s.rec.Ops(), "delete_progress:reset")
}

func (s *SessionSuite) TestSetSessionWritesSummary() {
	start := 0
	cfg := simulation.Config{
		SessionID: "vocabulary_easy_set1",
		Criteria:  questions.Criteria{Type: models.TypeVocabulary, Difficulty: models.DifficultyEasy, SetNumber: 1, Start: &start},
	}
	s.loader.bank = bank(2)
	sess := newSession(cfg, s.loader, s.rec)
	sess.Start(s.ctx)
	answer(s.ctx, sess, right)
	sess.Next(s.ctx)
	answer(s.ctx, sess, right)
	sess.Next(s.ctx)

	summary, err := s.rec.store.LoadSummary(s.ctx, progress.SetProgressKey(models.TypeVocabulary, models.DifficultyEasy, 1))
	s.Require().NoError(err)
	s.Require().NotNil(summary)
	s.True(summary.Completed)
	s.False(summary.InProgress)
	s.Equal(100, *summary.Score)
}

func (s *SessionSuite) TestProgressReadFailureIsReported() {
	reader := new(mocks.MockProgressReader)
	reader.On("LoadProgress", mock.Anything, "broken").Return(nil, errors.New("locked"))

	var failures []models.Failure
	sess := simulation.NewSession(trainingConfig("broken"), simulation.Deps{
		Loader:    s.loader,
		Progress:  reader,
		Persist:   s.rec,
		OnFailure: func(f models.Failure) { failures = append(failures, f) },
	})
	st := sess.Start(s.ctx)

	s.True(st.Loaded)
	s.Equal(10, st.TotalQuestions)
	s.Require().Len(failures, 1)
	s.Equal("load_progress", failures[0].Op)
	s.Equal("simulation_progress_broken", failures[0].Key)
}

func (s *SessionSuite) TestClosedSessionIgnoresActions() {
	sess := newSession(trainingConfig("closed"), s.loader, s.rec)
	sess.Start(s.ctx)
	sess.Close()

	st := answer(s.ctx, sess, right)
	s.Zero(st.AnsweredCount)
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

// blockingLoader holds the first load until released.
type blockingLoader struct {
	release chan struct{}
	started chan struct{}
	once    sync.Once
}

func (l *blockingLoader) Load(_ context.Context, c questions.Criteria) []models.Question {
	first := false
	l.once.Do(func() { first = true })
	if first {
		close(l.started)
		<-l.release
		return bank(3)
	}
	return bank(7)
}

func TestSession_SupersededLoadIsDiscarded(t *testing.T) {
	ctx := context.Background()
	loader := &blockingLoader{release: make(chan struct{}), started: make(chan struct{})}
	sess := simulation.NewSession(trainingConfig("race"), simulation.Deps{Loader: loader})

	done := make(chan simulation.State)
	go func() { done <- sess.Start(ctx) }()
	<-loader.started

	st := sess.Restart(ctx)
	require.Equal(t, 7, st.TotalQuestions)

	close(loader.release)
	<-done

	assert.Equal(t, 7, sess.State().TotalQuestions, "late result of the first load must not win")
}

func TestSession_TimerExpiryCompletes(t *testing.T) {
	rec := newRecorder()
	sess := simulation.NewSession(simulation.Config{
		SessionID:    "timed",
		Criteria:     questions.Criteria{Type: models.TypeVocabulary, Difficulty: models.DifficultyEasy},
		Mode:         simulation.Mode{Exam: true},
		ExamDuration: 3 * time.Second,
	}, simulation.Deps{
		Loader:        &staticLoader{bank: bank(5)},
		Persist:       rec,
		TimerInterval: time.Millisecond,
	})
	defer sess.Close()

	st := sess.Start(context.Background())
	require.True(t, st.TimerActive)

	require.Eventually(t, func() bool { return sess.State().Complete }, 2*time.Second, 5*time.Millisecond)
	st = sess.State()
	assert.Equal(t, simulation.ReasonTimeout, st.CompletionReason)
	assert.Zero(t, st.RemainingTime)
	assert.False(t, st.TimerActive)
}

func TestSession_RestartKeepsOneTimer(t *testing.T) {
	sess := simulation.NewSession(simulation.Config{
		SessionID:    "timed-restart",
		Criteria:     questions.Criteria{FullExam: true},
		ExamDuration: time.Hour,
	}, simulation.Deps{
		Loader:        &staticLoader{bank: bank(5)},
		TimerInterval: time.Millisecond,
	})
	defer sess.Close()

	sess.Start(context.Background())
	for i := 0; i < 5; i++ {
		sess.Restart(context.Background())
	}
	time.Sleep(20 * time.Millisecond)
	t0 := time.Now()
	before := sess.State().RemainingTime
	time.Sleep(50 * time.Millisecond)
	after := sess.State().RemainingTime
	elapsed := time.Since(t0)

	// a single 1ms ticker takes at most one second off per elapsed millisecond
	assert.LessOrEqual(t, before-after, int(elapsed/time.Millisecond)+2)
	assert.Greater(t, before-after, 0)
}

package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/examprep/internal/errors"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/questions"
	"github.com/vytor/examprep/internal/services"
	"github.com/vytor/examprep/internal/simulation"
	"github.com/vytor/examprep/internal/testutil"
	"github.com/vytor/examprep/internal/testutil/mocks"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type SimulationServiceSuite struct {
	suite.Suite
	ctx      context.Context
	loader   *mocks.MockQuestionLoader
	progress *mocks.MockProgressReader
	persist  *mocks.MockPersistQueue
	clock    *clock
	svc      services.SimulationService
	criteria questions.Criteria
}

func (s *SimulationServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.loader = new(mocks.MockQuestionLoader)
	s.progress = new(mocks.MockProgressReader)
	s.persist = new(mocks.MockPersistQueue)
	s.clock = &clock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	s.criteria = questions.Criteria{Type: models.TypeVocabulary, Difficulty: models.DifficultyEasy}

	s.persist.On("AppendActivity", mock.Anything).Return(nil).Maybe()
	s.persist.On("SaveProgress", mock.Anything, mock.Anything).Return(nil).Maybe()
	s.persist.On("SaveSummary", mock.Anything, mock.Anything).Return(nil).Maybe()
	s.persist.On("DeleteProgress", mock.Anything).Return(nil).Maybe()

	s.svc = services.NewSimulationService(s.loader, s.progress, s.persist, services.SimulationConfig{
		IdleTTL: time.Hour,
		Now:     s.clock.Now,
	})
}

func (s *SimulationServiceSuite) TearDownTest() {
	s.svc.Shutdown(s.ctx)
}

func (s *SimulationServiceSuite) startTraining() simulation.State {
	s.loader.On("Load", mock.Anything, s.criteria).
		Return(testutil.Questions("v", models.TypeVocabulary, models.DifficultyEasy, 3)).Once()
	s.progress.On("LoadProgress", mock.Anything, "vocabulary_easy").Return(nil, nil).Once()

	st, err := s.svc.Start(s.ctx, services.StartRequest{Criteria: s.criteria})
	s.Require().NoError(err)
	return st
}

func (s *SimulationServiceSuite) TestStartDerivesSessionID() {
	st := s.startTraining()

	s.Equal("vocabulary_easy", st.SessionID)
	s.True(st.Loaded)
	s.Equal(3, st.TotalQuestions)
	s.False(st.ExamMode)
	s.loader.AssertExpectations(s.T())
	s.progress.AssertExpectations(s.T())
}

func (s *SimulationServiceSuite) TestStartIsIdempotent() {
	s.startTraining()

	st, err := s.svc.Start(s.ctx, services.StartRequest{Criteria: s.criteria})
	s.Require().NoError(err)

	s.Equal(3, st.TotalQuestions)
	s.loader.AssertNumberOfCalls(s.T(), "Load", 1)
}

func (s *SimulationServiceSuite) TestStartRejectsModeMismatch() {
	s.startTraining()

	_, err := s.svc.Start(s.ctx, services.StartRequest{Criteria: s.criteria, Mode: simulation.Mode{Exam: true}})
	s.True(errors.HasCode(err, errors.ErrCodeConflict))

	st, err := s.svc.Get(s.ctx, "vocabulary_easy")
	s.Require().NoError(err)
	s.False(st.ExamMode)
	s.False(st.TimerActive)
	s.loader.AssertNumberOfCalls(s.T(), "Load", 1)
}

func (s *SimulationServiceSuite) TestStartExamModeSkipsRestore() {
	s.loader.On("Load", mock.Anything, s.criteria).
		Return(testutil.Questions("v", models.TypeVocabulary, models.DifficultyEasy, 2)).Once()

	st, err := s.svc.Start(s.ctx, services.StartRequest{Criteria: s.criteria, Mode: simulation.Mode{Exam: true}})
	s.Require().NoError(err)

	s.True(st.ExamMode)
	s.progress.AssertNotCalled(s.T(), "LoadProgress", mock.Anything, mock.Anything)
}

func (s *SimulationServiceSuite) TestStartRejectsInvalidCriteria() {
	cases := []questions.Criteria{
		{Type: "grammar"},
		{Type: models.TypeVocabulary, Difficulty: "impossible"},
		{Type: models.TypeVocabulary, Limit: -1},
		{Selection: &questions.Selection{Type: models.TypeRestatement, Difficulty: "extreme"}},
		{Questions: []models.Question{{ID: "q1"}}},
	}
	for _, c := range cases {
		_, err := s.svc.Start(s.ctx, services.StartRequest{Criteria: c})
		s.True(errors.HasCode(err, errors.ErrCodeValidation), "criteria %+v", c)
	}
	s.loader.AssertNotCalled(s.T(), "Load", mock.Anything, mock.Anything)
}

func (s *SimulationServiceSuite) TestAnswerFlow() {
	s.startTraining()

	st, err := s.svc.SelectAnswer(s.ctx, "vocabulary_easy", 1)
	s.Require().NoError(err)
	s.Require().NotNil(st.SelectedAnswer)

	st, err = s.svc.Submit(s.ctx, "vocabulary_easy")
	s.Require().NoError(err)
	s.Equal(1, st.AnsweredCount)
	s.Equal(1, st.CorrectCount)

	st, err = s.svc.Next(s.ctx, "vocabulary_easy")
	s.Require().NoError(err)
	s.Equal(1, st.CurrentIndex)

	st, err = s.svc.Previous(s.ctx, "vocabulary_easy")
	s.Require().NoError(err)
	s.Equal(0, st.CurrentIndex)
	s.True(st.Submitted)

	s.persist.AssertCalled(s.T(), "AppendActivity", mock.MatchedBy(func(e models.ActivityEntry) bool {
		return e.QuestionID == "v-0" && e.IsCorrect
	}))
	s.persist.AssertCalled(s.T(), "SaveProgress", "vocabulary_easy", mock.Anything)
}

func (s *SimulationServiceSuite) TestFlagsAndNavigation() {
	s.startTraining()

	st, err := s.svc.ToggleFlag(s.ctx, "vocabulary_easy", 2)
	s.Require().NoError(err)
	s.True(st.Flags["v-2"])

	st, err = s.svc.Navigate(s.ctx, "vocabulary_easy", 2)
	s.Require().NoError(err)
	s.Equal(2, st.CurrentIndex)

	st, err = s.svc.Navigate(s.ctx, "vocabulary_easy", 9)
	s.Require().NoError(err)
	s.Equal(2, st.CurrentIndex)
}

func (s *SimulationServiceSuite) TestSelectAnswerRejectsNegativeOption() {
	s.startTraining()

	_, err := s.svc.SelectAnswer(s.ctx, "vocabulary_easy", -1)
	s.True(errors.HasCode(err, errors.ErrCodeValidation))
}

func (s *SimulationServiceSuite) TestUnknownSession() {
	_, err := s.svc.Get(s.ctx, "missing")
	s.True(errors.HasCode(err, errors.ErrCodeNotFound))

	_, err = s.svc.Submit(s.ctx, "missing")
	s.True(errors.HasCode(err, errors.ErrCodeNotFound))

	err = s.svc.Close(s.ctx, "missing")
	s.True(errors.HasCode(err, errors.ErrCodeNotFound))
}

func (s *SimulationServiceSuite) TestClose() {
	s.startTraining()

	s.Require().NoError(s.svc.Close(s.ctx, "vocabulary_easy"))

	_, err := s.svc.Get(s.ctx, "vocabulary_easy")
	s.True(errors.HasCode(err, errors.ErrCodeNotFound))
}

func (s *SimulationServiceSuite) TestSweepIdle() {
	s.startTraining()

	s.clock.Advance(30 * time.Minute)
	s.Equal(0, s.svc.SweepIdle(s.ctx, s.clock.Now()))

	s.clock.Advance(31 * time.Minute)
	s.Equal(1, s.svc.SweepIdle(s.ctx, s.clock.Now()))

	_, err := s.svc.Get(s.ctx, "vocabulary_easy")
	s.True(errors.HasCode(err, errors.ErrCodeNotFound))
}

func (s *SimulationServiceSuite) TestActionsKeepSessionAlive() {
	s.startTraining()

	s.clock.Advance(50 * time.Minute)
	_, err := s.svc.ToggleExplanation(s.ctx, "vocabulary_easy")
	s.Require().NoError(err)

	s.clock.Advance(50 * time.Minute)
	s.Equal(0, s.svc.SweepIdle(s.ctx, s.clock.Now()))
}

func TestSimulationServiceSuite(t *testing.T) {
	suite.Run(t, new(SimulationServiceSuite))
}

func TestRunJanitorStopsWithContext(t *testing.T) {
	svc := services.NewSimulationService(new(mocks.MockQuestionLoader), nil, nil, services.SimulationConfig{IdleTTL: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunJanitor(ctx, 10*time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "janitor did not stop")
	}
	assert.Equal(t, 0, svc.SweepIdle(context.Background(), time.Now()))
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/examprep/internal/models"
)

// MockQuestionSource is a mock implementation of questions.Source
type MockQuestionSource struct {
	mock.Mock
}

func (m *MockQuestionSource) questions(args mock.Arguments) ([]models.Question, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockQuestionSource) FetchByTypeAndDifficulty(ctx context.Context, difficulty models.Difficulty, qType models.QuestionType) ([]models.Question, error) {
	return m.questions(m.Called(ctx, difficulty, qType))
}

func (m *MockQuestionSource) FetchFullExam(ctx context.Context) ([]models.Question, error) {
	return m.questions(m.Called(ctx))
}

func (m *MockQuestionSource) FetchSentenceCompletion(ctx context.Context) ([]models.Question, error) {
	return m.questions(m.Called(ctx))
}

func (m *MockQuestionSource) FetchRestatement(ctx context.Context) ([]models.Question, error) {
	return m.questions(m.Called(ctx))
}

func (m *MockQuestionSource) FetchVocabulary(ctx context.Context) ([]models.Question, error) {
	return m.questions(m.Called(ctx))
}

func (m *MockQuestionSource) FetchReadingComprehension(ctx context.Context) ([]models.Question, error) {
	return m.questions(m.Called(ctx))
}

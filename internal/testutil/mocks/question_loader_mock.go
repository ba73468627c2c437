package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/questions"
)

// MockQuestionLoader is a mock implementation of simulation.QuestionLoader
type MockQuestionLoader struct {
	mock.Mock
}

func (m *MockQuestionLoader) Load(ctx context.Context, c questions.Criteria) []models.Question {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Question)
}

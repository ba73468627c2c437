package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/examprep/internal/models"
)

// MockPersistQueue is a mock implementation of jobs.PersistQueue
type MockPersistQueue struct {
	mock.Mock
}

func (m *MockPersistQueue) SaveProgress(sessionID string, rec models.ProgressRecord) error {
	args := m.Called(sessionID, rec)
	return args.Error(0)
}

func (m *MockPersistQueue) SaveSummary(key string, summary models.SetProgress) error {
	args := m.Called(key, summary)
	return args.Error(0)
}

func (m *MockPersistQueue) DeleteProgress(sessionID string) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func (m *MockPersistQueue) AppendActivity(entry models.ActivityEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/examprep/internal/models"
)

// MockProgressReader is a mock implementation of simulation.ProgressReader
// and services.ProgressReader
type MockProgressReader struct {
	mock.Mock
}

func (m *MockProgressReader) LoadProgress(ctx context.Context, sessionID string) (*models.ProgressRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressReader) LoadSummary(ctx context.Context, key string) (*models.SetProgress, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SetProgress), args.Error(1)
}

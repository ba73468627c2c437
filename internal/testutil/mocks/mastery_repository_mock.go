package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/examprep/internal/models"
)

// MockMasteryRepository is a mock implementation of repository.MasteryRepository
type MockMasteryRepository struct {
	mock.Mock
}

func (m *MockMasteryRepository) Get(ctx context.Context, wordID string) (*models.WordMastery, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordMastery), args.Error(1)
}

func (m *MockMasteryRepository) Upsert(ctx context.Context, wm models.WordMastery) error {
	args := m.Called(ctx, wm)
	return args.Error(0)
}

func (m *MockMasteryRepository) NeedsReview(ctx context.Context, threshold, limit int) ([]models.WordMastery, error) {
	args := m.Called(ctx, threshold, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WordMastery), args.Error(1)
}

package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/challenge"
	"github.com/pageza/calorix/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockNotifier records notifications
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID uuid.UUID, kind, title, body string) error {
	args := m.Called(ctx, userID, kind, title, body)
	return args.Error(0)
}

// MockInvalidator stands in for the summary cache
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockChallengeEvaluator stands in for the challenge service
type MockChallengeEvaluator struct {
	mock.Mock
}

func (m *MockChallengeEvaluator) EvaluateToday(ctx context.Context, userID uuid.UUID) (*challenge.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*challenge.Event), args.Error(1)
}

// MockObjectStore stands in for the S3 export bucket
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}

// MockEstimatorService stands in for the nutrition estimator
type MockEstimatorService struct {
	mock.Mock
}

func (m *MockEstimatorService) Estimate(ctx context.Context, description string) ([]types.FoodInput, error) {
	args := m.Called(ctx, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.FoodInput), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billkit/internal/domain"
)

// MockSACRepo is a mock implementation of port.SACRepository.
type MockSACRepo struct {
	mock.Mock
}

func (m *MockSACRepo) LoadAll(ctx context.Context) ([]domain.SACCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SACCode), args.Error(1)
}

func (m *MockSACRepo) Upsert(ctx context.Context, codes []domain.SACCode) error {
	args := m.Called(ctx, codes)
	return args.Error(0)
}

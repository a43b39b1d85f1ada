package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"billkit/internal/domain"
	"billkit/internal/port"
)

// MockVerificationRepo is a mock implementation of port.VerificationRepository.
type MockVerificationRepo struct {
	mock.Mock
}

func (m *MockVerificationRepo) Create(ctx context.Context, v *domain.Verification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVerificationRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Verification, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Verification), args.Error(1)
}

func (m *MockVerificationRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.VerificationFilter, offset, limit int) ([]domain.Verification, int, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Verification), args.Int(1), args.Error(2)
}

func (m *MockVerificationRepo) ListForExport(ctx context.Context, tenantID uuid.UUID, filter port.VerificationFilter) ([]domain.Verification, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Verification), args.Error(1)
}

func (m *MockVerificationRepo) SetSnapshotKey(ctx context.Context, tenantID, id uuid.UUID, key string) error {
	args := m.Called(ctx, tenantID, id, key)
	return args.Error(0)
}

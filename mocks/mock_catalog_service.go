package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billkit/internal/domain"
	"billkit/internal/validator/billing"
)

// MockCatalogService is a mock implementation of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Lookup(ctx context.Context) *billing.SACLookup {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*billing.SACLookup)
}

func (m *MockCatalogService) List(ctx context.Context) []domain.SACCode {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.SACCode)
}

func (m *MockCatalogService) Import(ctx context.Context, codes []domain.SACCode) (int, error) {
	args := m.Called(ctx, codes)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogService) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

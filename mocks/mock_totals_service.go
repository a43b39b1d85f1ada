package mocks

import (
	"github.com/stretchr/testify/mock"

	"billkit/internal/service"
)

// MockTotalsService is a mock implementation of service.TotalsService.
type MockTotalsService struct {
	mock.Mock
}

func (m *MockTotalsService) Compute(input service.ComputeTotalsInput) (*service.TotalsResult, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TotalsResult), args.Error(1)
}

func (m *MockTotalsService) Words(amount string) (*service.WordsResult, error) {
	args := m.Called(amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WordsResult), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billkit/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendMismatchAlert(ctx context.Context, recipients []string, alert port.MismatchAlert) error {
	args := m.Called(ctx, recipients, alert)
	return args.Error(0)
}

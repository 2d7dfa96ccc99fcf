package authgw

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/refhub/order-management-backend/interfaces"
)

// MockAuthProvider implements a mock interfaces.AuthProvider for testing.
type MockAuthProvider struct {
	mock.Mock
}

// Login implements the AuthProvider interface for testing. The behavior is
// determined by how the mock is configured in tests.
func (m *MockAuthProvider) Login(ctx context.Context, email, password string) (interfaces.UserID, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(interfaces.UserID), args.Error(1)
}

// Signup implements the AuthProvider interface for testing.
func (m *MockAuthProvider) Signup(ctx context.Context, username, email, password string) error {
	args := m.Called(ctx, username, email, password)
	return args.Error(0)
}

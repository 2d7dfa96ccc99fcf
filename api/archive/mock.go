package archive

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/refhub/order-management-backend/interfaces"
)

// MockOrderArchive implements a mock interfaces.OrderArchive for testing.
type MockOrderArchive struct {
	mock.Mock
}

// SubmitOrder implements the OrderArchive interface for testing. The
// behavior is determined by how the mock is configured in tests.
func (m *MockOrderArchive) SubmitOrder(ctx context.Context, staff interfaces.UserID, items []interfaces.LineItem, total decimal.Decimal) (*interfaces.SubmitConfirmation, error) {
	args := m.Called(ctx, staff, items, total)
	if conf, ok := args.Get(0).(*interfaces.SubmitConfirmation); ok {
		return conf, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListOrders implements the OrderArchive interface for testing.
func (m *MockOrderArchive) ListOrders(ctx context.Context) ([]interfaces.Order, error) {
	args := m.Called(ctx)
	if orders, ok := args.Get(0).([]interfaces.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateStatus implements the OrderArchive interface for testing.
func (m *MockOrderArchive) UpdateStatus(ctx context.Context, orderID int64, newStatus interfaces.OrderStatus) error {
	args := m.Called(ctx, orderID, newStatus)
	return args.Error(0)
}

// GenerateReport implements the OrderArchive interface for testing.
func (m *MockOrderArchive) GenerateReport(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if artifact, ok := args.Get(0).([]byte); ok {
		return artifact, args.Error(1)
	}
	return nil, args.Error(1)
}

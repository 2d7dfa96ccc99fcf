package archive

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/refhub/order-management-backend/interfaces"
)

// todayFn stamps submissions with the current date; overridable in tests.
var todayFn = func() string {
	return time.Now().Format("2006-01-02")
}

var _ interfaces.OrderArchive = (*Static)(nil)

// Static is an in-memory stand-in for the order archive, used when no
// archive address is configured. It starts seeded with sample orders,
// accepts submissions and status changes for the lifetime of the process,
// and reports that report generation is not implemented.
type Static struct {
	mu     sync.Mutex
	nextID int64
	orders []interfaces.Order
}

// NewStatic creates a stand-in archive seeded with the sample orders shown
// on the admin dashboard.
func NewStatic() *Static {
	return &Static{
		nextID: 4,
		orders: []interfaces.Order{
			{ID: 1, StaffName: "John Doe", OrderDate: "2023-05-01", Items: "Item 1, Item 2", TotalAmount: decimal.NewFromInt(150), Status: interfaces.StatusPending},
			{ID: 2, StaffName: "Jane Smith", OrderDate: "2023-05-02", Items: "Item 3", TotalAmount: decimal.NewFromInt(75), Status: interfaces.StatusProcessed},
			{ID: 3, StaffName: "Bob Johnson", OrderDate: "2023-05-03", Items: "Item 1, Item 4", TotalAmount: decimal.NewFromInt(200), Status: interfaces.StatusCompleted},
		},
	}
}

// SubmitOrder records the submission in memory and confirms it.
func (s *Static) SubmitOrder(ctx context.Context, staff interfaces.UserID, items []interfaces.LineItem, total decimal.Decimal) (*interfaces.SubmitConfirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := ""
	for i, item := range items {
		if i > 0 {
			names += ", "
		}
		names += item.Name
	}

	id := s.nextID
	s.nextID++
	s.orders = append(s.orders, interfaces.Order{
		ID:          id,
		StaffName:   staff.String(),
		OrderDate:   todayFn(),
		Items:       names,
		TotalAmount: total,
		Status:      interfaces.StatusPending,
	})
	return &interfaces.SubmitConfirmation{OrderID: id}, nil
}

// ListOrders returns the current orders in insertion order.
func (s *Static) ListOrders(ctx context.Context) ([]interfaces.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]interfaces.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

// UpdateStatus assigns newStatus to the identified order; any status value
// is accepted from any prior value.
func (s *Static) UpdateStatus(ctx context.Context, orderID int64, newStatus interfaces.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = newStatus
			return nil
		}
	}
	return interfaces.ErrOrderNotFound
}

// GenerateReport is not implemented by the stand-in; a real archive is
// required for reporting.
func (s *Static) GenerateReport(ctx context.Context) ([]byte, error) {
	return nil, &interfaces.GatewayError{
		StatusCode: http.StatusNotImplemented,
		Detail:     "report generation requires a configured order archive",
	}
}

// Package interfaces defines the core types and collaborator contracts for
// the REF HUB order system. It provides the contract between components
// without implementation details.
package interfaces

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// UserID is the opaque user identifier issued by the auth gateway and
// stored in the session.
type UserID string

// String returns the identifier as a string.
func (id UserID) String() string {
	return string(id)
}

// ItemID uniquely identifies a line item within a draft.
type ItemID string

// LineItem is a single line of an order draft. Items are never mutated in
// place; edits happen in the staging slot before the item is added.
type LineItem struct {
	ID        ItemID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal returns UnitPrice multiplied by Quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// OrderStatus is the processing state of an archived order. Any status may
// be assigned from any prior status; there is no transition ordering.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusProcessed OrderStatus = "Processed"
	StatusCompleted OrderStatus = "Completed"
)

// ParseOrderStatus validates a raw status value against the known set.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case StatusPending, StatusProcessed, StatusCompleted:
		return OrderStatus(raw), nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// String returns the status as a string.
func (s OrderStatus) String() string {
	return string(s)
}

// Order is an archived order as presented on the admin dashboard. It is
// sourced from the order archive; status is the only field the admin view
// mutates.
type Order struct {
	ID          int64
	StaffName   string
	OrderDate   string // YYYY-MM-DD
	Items       string
	TotalAmount decimal.Decimal
	Status      OrderStatus
}

// ErrOrderNotFound is returned by the archive when a status update targets
// an unknown order.
var ErrOrderNotFound = errors.New("order not found")

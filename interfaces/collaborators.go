package interfaces

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
)

// GatewayError carries a collaborator's human-readable failure detail
// together with the HTTP status code it responded with. Handlers surface
// the detail verbatim and propagate the status code.
type GatewayError struct {
	// StatusCode is the HTTP status code returned by the collaborator.
	StatusCode int

	// Detail is the human-readable message from the response body.
	Detail string
}

// Error returns the detail message.
func (e *GatewayError) Error() string {
	return e.Detail
}

// GenericGatewayError is the fallback for collaborator failures with no
// usable detail or status, mirroring the generic message shown to users.
func GenericGatewayError() *GatewayError {
	return &GatewayError{StatusCode: http.StatusInternalServerError, Detail: "An error occurred"}
}

// AuthProvider is the external authentication gateway. It is the only
// component that sees credentials; they are never persisted locally.
type AuthProvider interface {
	// Login exchanges credentials for a user identifier. A rejected pair
	// yields a *GatewayError carrying the gateway's detail and status.
	Login(ctx context.Context, email, password string) (UserID, error)

	// Signup registers a new account with the gateway.
	Signup(ctx context.Context, username, email, password string) error
}

// SubmitConfirmation acknowledges an accepted order submission.
type SubmitConfirmation struct {
	OrderID int64
}

// OrderArchive is the external persistence and reporting collaborator. The
// service never stores orders itself; every submission, listing, status
// change, and report request flows through this contract.
type OrderArchive interface {
	// SubmitOrder hands a completed draft to the archive.
	SubmitOrder(ctx context.Context, staff UserID, items []LineItem, total decimal.Decimal) (*SubmitConfirmation, error)

	// ListOrders returns all archived orders in archive order.
	ListOrders(ctx context.Context) ([]Order, error)

	// UpdateStatus assigns newStatus to the identified order. No transition
	// ordering is enforced.
	UpdateStatus(ctx context.Context, orderID int64, newStatus OrderStatus) error

	// GenerateReport produces an opaque report artifact over all orders.
	GenerateReport(ctx context.Context) ([]byte, error)
}

// AsGatewayError normalizes any collaborator failure into a GatewayError,
// applying the generic message and server-error fallbacks.
func AsGatewayError(err error) *GatewayError {
	if err == nil {
		return nil
	}
	var gw *GatewayError
	if errors.As(err, &gw) {
		out := *gw
		if out.Detail == "" {
			out.Detail = GenericGatewayError().Detail
		}
		if out.StatusCode == 0 {
			out.StatusCode = http.StatusInternalServerError
		}
		return &out
	}
	return GenericGatewayError()
}

// Package api defines the wire contracts between this service and its
// external collaborators: the authentication gateway and the order
// archive. It holds route paths, form field names, and the JSON payload
// shapes exchanged over HTTP.
package api

// Auth gateway routes. The gateway accepts form-encoded credentials.
const (
	LoginPath  = "/api/login/"
	SignupPath = "/api/signup/"
)

// Form field names shared by the browser-facing forms and the gateway.
const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"
)

// LoginResponse is the gateway's success payload for a login: an opaque
// user identifier to be stored in the session.
type LoginResponse struct {
	User string `json:"user"`
}

// ErrorResponse is the gateway's failure payload. Detail is a
// human-readable message surfaced to the user verbatim.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Order archive routes.
const (
	ArchiveOrdersPath = "/api/orders/"
	ArchiveReportPath = "/api/orders/report/"
)

// OrderLine is one line item of a submitted order. Prices travel as
// decimal strings to avoid float rounding on the wire.
type OrderLine struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// SubmitOrderRequest is the draft-shaped payload handed to the archive on
// submission.
type SubmitOrderRequest struct {
	Staff       string      `json:"staff"`
	Items       []OrderLine `json:"items"`
	TotalAmount string      `json:"total_amount"`
}

// SubmitOrderResponse confirms an accepted submission.
type SubmitOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

// OrderRecord is an archived order as returned by the archive listing.
type OrderRecord struct {
	ID          int64  `json:"id"`
	StaffName   string `json:"staff_name"`
	OrderDate   string `json:"order_date"`
	Items       string `json:"items"`
	TotalAmount string `json:"total_amount"`
	Status      string `json:"status"`
}

// ListOrdersResponse wraps the archive listing.
type ListOrdersResponse struct {
	Orders []OrderRecord `json:"orders"`
}

// UpdateStatusRequest assigns a new status to an archived order.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

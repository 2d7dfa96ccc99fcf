// Package archive implements clients for the external order archive, the
// collaborator that persists submitted orders, serves the admin listing,
// applies status changes, and produces reports. This service never stores
// orders itself.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/refhub/order-management-backend/api"
	"github.com/refhub/order-management-backend/interfaces"
)

var _ interfaces.OrderArchive = (*Client)(nil)

// Client calls the order archive over HTTP.
type Client struct {
	// ArchiveURL is the base URL of the order archive.
	ArchiveURL string

	// HTTPClient is used for outbound requests; http.DefaultClient when nil.
	HTTPClient *http.Client
}

// NewClient creates an archive client for the given base URL.
func NewClient(archiveURL string) *Client {
	return &Client{ArchiveURL: strings.TrimRight(archiveURL, "/")}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.ArchiveURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not reach order archive: %w", err)
	}
	return resp, nil
}

func archiveFailure(resp *http.Response) *interfaces.GatewayError {
	var body api.ErrorResponse
	detail := interfaces.GenericGatewayError().Detail
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		detail = body.Detail
	}
	return &interfaces.GatewayError{StatusCode: resp.StatusCode, Detail: detail}
}

// SubmitOrder hands a draft-shaped payload to the archive and returns its
// confirmation.
func (c *Client) SubmitOrder(ctx context.Context, staff interfaces.UserID, items []interfaces.LineItem, total decimal.Decimal) (*interfaces.SubmitConfirmation, error) {
	payload := api.SubmitOrderRequest{
		Staff:       staff.String(),
		TotalAmount: total.StringFixed(2),
	}
	for _, item := range items {
		payload.Items = append(payload.Items, api.OrderLine{
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
		})
	}

	resp, err := c.doJSON(ctx, http.MethodPost, api.ArchiveOrdersPath, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, archiveFailure(resp)
	}

	var parsed api.SubmitOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("could not parse submit response: %w", err)
	}
	return &interfaces.SubmitConfirmation{OrderID: parsed.OrderID}, nil
}

// ListOrders fetches all archived orders, preserving archive order.
func (c *Client) ListOrders(ctx context.Context) ([]interfaces.Order, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, api.ArchiveOrdersPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, archiveFailure(resp)
	}

	var parsed api.ListOrdersResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("could not parse orders listing: %w", err)
	}

	orders := make([]interfaces.Order, 0, len(parsed.Orders))
	for _, rec := range parsed.Orders {
		status, err := interfaces.ParseOrderStatus(rec.Status)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", rec.ID, err)
		}
		amount, err := decimal.NewFromString(rec.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("order %d: invalid total amount %q", rec.ID, rec.TotalAmount)
		}
		orders = append(orders, interfaces.Order{
			ID:          rec.ID,
			StaffName:   rec.StaffName,
			OrderDate:   rec.OrderDate,
			Items:       rec.Items,
			TotalAmount: amount,
			Status:      status,
		})
	}
	return orders, nil
}

// UpdateStatus assigns a new status to the identified order. The archive
// accepts any of the three status values from any prior value.
func (c *Client) UpdateStatus(ctx context.Context, orderID int64, newStatus interfaces.OrderStatus) error {
	path := fmt.Sprintf("%s%d/status/", api.ArchiveOrdersPath, orderID)
	resp, err := c.doJSON(ctx, http.MethodPost, path, api.UpdateStatusRequest{Status: newStatus.String()})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return archiveFailure(resp)
	}
	return nil
}

// GenerateReport asks the archive to produce a report over all orders and
// returns the opaque artifact bytes.
func (c *Client) GenerateReport(ctx context.Context) ([]byte, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, api.ArchiveReportPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, archiveFailure(resp)
	}
	return io.ReadAll(resp.Body)
}

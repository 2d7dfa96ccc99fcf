package archive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refhub/order-management-backend/api"
	"github.com/refhub/order-management-backend/interfaces"
)

func TestSubmitOrderPayloadShape(t *testing.T) {
	var received api.SubmitOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(api.SubmitOrderResponse{OrderID: 42})
	}))
	defer srv.Close()

	items := []interfaces.LineItem{
		{ID: "a", Name: "Whistle", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 3},
		{ID: "b", Name: "Flag", UnitPrice: decimal.RequireFromString("12.5"), Quantity: 1},
	}

	client := NewClient(srv.URL)
	conf, err := client.SubmitOrder(context.Background(), "staff@refhub.com", items, decimal.RequireFromString("82.47"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), conf.OrderID)

	assert.Equal(t, "staff@refhub.com", received.Staff)
	assert.Equal(t, "82.47", received.TotalAmount)
	require.Len(t, received.Items, 2)
	assert.Equal(t, api.OrderLine{Name: "Whistle", UnitPrice: "19.99", Quantity: 3}, received.Items[0])
	assert.Equal(t, api.OrderLine{Name: "Flag", UnitPrice: "12.50", Quantity: 1}, received.Items[1])
}

func TestSubmitOrderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"order rejected"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SubmitOrder(context.Background(), "staff@refhub.com", nil, decimal.NewFromInt(10))
	require.Error(t, err)

	gw := interfaces.AsGatewayError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, gw.StatusCode)
	assert.Equal(t, "order rejected", gw.Detail)
}

func TestListOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(api.ListOrdersResponse{Orders: []api.OrderRecord{
			{ID: 1, StaffName: "John Doe", OrderDate: "2023-05-01", Items: "Item 1, Item 2", TotalAmount: "150.00", Status: "Pending"},
			{ID: 2, StaffName: "Jane Smith", OrderDate: "2023-05-02", Items: "Item 3", TotalAmount: "75.00", Status: "Processed"},
		}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	orders, err := client.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "John Doe", orders[0].StaffName)
	assert.Equal(t, interfaces.StatusProcessed, orders[1].Status)
	assert.Equal(t, "150.00", orders[0].TotalAmount.StringFixed(2))
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.ListOrdersResponse{Orders: []api.OrderRecord{
			{ID: 1, StaffName: "John Doe", OrderDate: "2023-05-01", TotalAmount: "150.00", Status: "Shipped"},
		}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListOrders(context.Background())
	assert.Error(t, err)
}

func TestUpdateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/7/status/", r.URL.Path)
		var req api.UpdateStatusRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Completed", req.Status)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	assert.NoError(t, client.UpdateStatus(context.Background(), 7, interfaces.StatusCompleted))
}

func TestGenerateReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/report/", r.URL.Path)
		w.Write([]byte("report-bytes"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	artifact, err := client.GenerateReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("report-bytes"), artifact)
}

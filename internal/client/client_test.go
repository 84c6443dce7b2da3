package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/example/cashew-corner/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the fake backend saw
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	response string
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	status, response := f.status, f.response
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, response)
}

func (f *fakeBackend) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, status int, response string, opts ...Option) (*Client, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{status: status, response: response}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", opts...), backend
}

// ============================================
// Request Shape Tests
// ============================================

func TestSalesOrders_Create(t *testing.T) {
	c, backend := newTestClient(t, http.StatusCreated,
		`{"salesOrderId":12,"soNumber":"SO-0012","totalAmount":36.5,"items":[]}`)

	req := model.CreateSalesOrderRequest{
		CustomerID:   4,
		OrderDate:    "2025-03-10",
		DeliveryDate: "2025-03-17",
		Items: []model.LineItemRequest{
			{ProductID: 1, Quantity: 2, UnitPrice: 10},
			{ProductID: 2, Quantity: 3, UnitPrice: 5.5},
		},
	}
	so, err := c.SalesOrders().Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "SO-0012", so.SONumber)
	assert.True(t, so.TotalAmount.Equal(decimal.RequireFromString("36.50")))

	got := backend.last(t)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/sales-orders", got.Path)
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.NotEmpty(t, got.Header.Get(RequestIDHeader))
	assert.JSONEq(t, `{
		"customerId":4,"orderDate":"2025-03-10","deliveryDate":"2025-03-17",
		"items":[{"productId":1,"quantity":2,"unitPrice":10},{"productId":2,"quantity":3,"unitPrice":5.5}]
	}`, string(got.Body))
}

func TestInventory_Adjust(t *testing.T) {
	c, backend := newTestClient(t, http.StatusOK, `{"inventoryId":3,"productId":10,"location":"Main","quantityOnHand":4}`)

	rec, err := c.Inventory().Adjust(context.Background(), model.AdjustStockRequest{
		ProductID: 10, Quantity: 1, Location: "Main", AdjustmentType: model.AdjustSubtract, Notes: "spoiled",
	})

	require.NoError(t, err)
	assert.True(t, rec.QuantityOnHand.Equal(decimal.NewFromInt(4)))
	got := backend.last(t)
	assert.Equal(t, "/api/inventory/adjust", got.Path)
	assert.JSONEq(t, `{"productId":10,"quantity":1,"location":"Main","adjustmentType":"SUBTRACT","notes":"spoiled"}`, string(got.Body))
}

func TestInventory_Receive_OmitsEmptyOptionalFields(t *testing.T) {
	c, backend := newTestClient(t, http.StatusOK, `{}`)

	_, err := c.Inventory().Receive(context.Background(), model.ReceiveStockRequest{ProductID: 10, Quantity: 5, Location: "Main"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"productId":10,"quantity":5,"location":"Main"}`, string(backend.last(t).Body))
}

func TestPaths(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		call      func(c *Client) error
		wantVerb  string
		wantPath  string
		wantQuery string
		// response overrides the default body: [] for GET, {} otherwise
		response string
	}{
		{"customer search", func(c *Client) error { _, err := c.Customers().Search(ctx, "Nimal Perera"); return err },
			http.MethodGet, "/api/customers/search", "name=Nimal+Perera", ""},
		{"products by category", func(c *Client) error { _, err := c.Products().ByCategory(ctx, 3); return err },
			http.MethodGet, "/api/products/category/3", "", ""},
		{"assign category", func(c *Client) error { _, err := c.Products().AssignCategory(ctx, 8, 3); return err },
			http.MethodPost, "/api/products/8/categories", "", ""},
		{"remove category", func(c *Client) error { return c.Products().RemoveCategory(ctx, 8, 3) },
			http.MethodDelete, "/api/products/8/categories/3", "", ""},
		{"inventory by location", func(c *Client) error { _, err := c.Inventory().ByLocation(ctx, "Store A/1"); return err },
			http.MethodGet, "/api/inventory/location/Store%20A%2F1", "", ""},
		{"inventory search", func(c *Client) error {
			_, err := c.Inventory().Search(ctx, model.InventorySearch{Location: "Main", SupplierID: 2})
			return err
		}, http.MethodGet, "/api/inventory/search", "location=Main&supplierId=2", ""},
		{"all movements", func(c *Client) error { _, err := c.Inventory().Movements(ctx, 0); return err },
			http.MethodGet, "/api/inventory/movements", "", ""},
		{"product movements", func(c *Client) error { _, err := c.Inventory().Movements(ctx, 5); return err },
			http.MethodGet, "/api/inventory/movements", "productId=5", ""},
		{"sales order search", func(c *Client) error { _, err := c.SalesOrders().Search(ctx, "SO-7"); return err },
			http.MethodGet, "/api/sales-orders/search", "orderNo=SO-7", ""},
		{"order search", func(c *Client) error { _, err := c.Orders().Search(ctx, "Kamal"); return err },
			http.MethodGet, "/api/orders/search", "customerName=Kamal", ""},
		{"order item update", func(c *Client) error { _, err := c.Orders().UpdateItemQuantity(ctx, 4, 9, 2); return err },
			http.MethodPut, "/api/orders/4/items/9", "", ""},
		{"duty status", func(c *Client) error { _, err := c.Duties().UpdateStatus(ctx, 6, model.DutyCompleted); return err },
			http.MethodPatch, "/api/duties/6/status", "status=completed", ""},
		{"employee duties", func(c *Client) error { _, err := c.Duties().ForEmployee(ctx, 2); return err },
			http.MethodGet, "/api/employees/2/duties", "", ""},
		{"unpaid payrolls", func(c *Client) error { _, err := c.Payrolls().Unpaid(ctx); return err },
			http.MethodGet, "/api/payrolls/unpaid", "", ""},
		{"deactivate user", func(c *Client) error { _, err := c.Users().Deactivate(ctx, 5); return err },
			http.MethodPatch, "/api/users/5/deactivate", "", ""},
		{"transaction summary without year", func(c *Client) error { _, err := c.Reports().TransactionSummary(ctx, 0); return err },
			http.MethodGet, "/api/reports/transaction-summary", "", ""},
		{"volume report", func(c *Client) error {
			_, err := c.Reports().CategoryVolumeReport(ctx, model.VolumeSales, 2024)
			return err
		}, http.MethodGet, "/api/reports/category-volume-report", "type=SALES&year=2024", ""},
		{"report download", func(c *Client) error { _, err := c.Reports().Download(ctx, 11); return err },
			http.MethodGet, "/api/reports/11/download", "", `{"reportId":11,"reportType":"INVENTORY_SUMMARY"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, backend := newTestClient(t, http.StatusOK, `[]`)
			switch {
			case tt.response != "":
				backend.response = tt.response
			case tt.wantVerb != http.MethodGet:
				backend.response = `{}`
			}

			require.NoError(t, tt.call(c))

			got := backend.last(t)
			assert.Equal(t, tt.wantVerb, got.Method)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.wantQuery, got.Query)
		})
	}
}

func TestDelete_NoContent(t *testing.T) {
	c, backend := newTestClient(t, http.StatusNoContent, "")

	err := c.Customers().Delete(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, backend.last(t).Method)
}

// ============================================
// Authorization Tests
// ============================================

func TestAuthorizer_Applied(t *testing.T) {
	auth := AuthorizerFunc(func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer abc")
	})
	c, backend := newTestClient(t, http.StatusOK, `[]`, WithAuthorizer(auth))

	_, err := c.Products().List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", backend.last(t).Header.Get("Authorization"))
}

func TestAuth_LogoutUsesExplicitHeader(t *testing.T) {
	auth := AuthorizerFunc(func(req *http.Request) {
		if req.URL.Path != "/api"+LogoutPath {
			req.Header.Set("Authorization", "Bearer from-authorizer")
		}
	})
	c, backend := newTestClient(t, http.StatusOK, `{"message":"Logged out"}`, WithAuthorizer(auth))

	err := c.Auth().Logout(context.Background(), "Bearer explicit")

	require.NoError(t, err)
	got := backend.last(t)
	assert.Equal(t, "/api/auth/logout", got.Path)
	assert.Equal(t, "Bearer explicit", got.Header.Get("Authorization"))
}

func TestUnauthorizedHandler(t *testing.T) {
	called := 0
	c, _ := newTestClient(t, http.StatusUnauthorized,
		`{"status":401,"error":"Unauthorized","message":"Token expired"}`,
		WithUnauthorizedHandler(func() { called++ }))

	_, err := c.Orders().List(context.Background())

	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, 1, called)
}

// ============================================
// Error Tests
// ============================================

func TestAPIError_Decoding(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantMessage string
		wantRaw     string
	}{
		{"error envelope", `{"timestamp":"2025-03-10T10:00:00","status":400,"error":"Bad Request","message":"Insufficient stock"}`, "Insufficient stock", ""},
		{"json string", `"Customer not found"`, "", "Customer not found"},
		{"plain text", `upstream exploded`, "", "upstream exploded"},
		{"empty", ``, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.StatusBadRequest, tt.response)

			_, err := c.Customers().Get(context.Background(), 1)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Body.Message)
			assert.Equal(t, tt.wantRaw, apiErr.RawBody)
			assert.Equal(t, "/customers/1", apiErr.Path)
		})
	}
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := New(url)

	_, err := c.Products().List(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Unreachable())
	assert.Equal(t, UnreachableMessage, Message(err, "fallback"))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"backend message", &APIError{StatusCode: 400, Body: ErrorBody{Error: "Bad Request", Message: "Quantity too large"}}, "Quantity too large"},
		{"string body", &APIError{StatusCode: 500, RawBody: "database down"}, "database down"},
		{"error text only", &APIError{StatusCode: 404, Body: ErrorBody{Error: "Not Found"}}, "Not Found"},
		{"empty body", &APIError{Method: http.MethodGet, Path: "/orders", StatusCode: 502}, "GET /orders: 502 Bad Gateway"},
		{"empty error text", errors.New(""), "Something went wrong"},
		{"unreachable", &APIError{Err: errors.New("connection refused")}, UnreachableMessage},
		{"plain error", errors.New("order must have at least one item"), "order must have at least one item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err, "Something went wrong"))
		})
	}
}

func TestReport_DataKeptRaw(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK,
		`{"reportId":3,"reportType":"LOW_STOCK_ALERT","data":{"lowStockCount":1,"items":[{"productId":2,"currentStock":3,"reorderLevel":10}]}}`)

	rep, err := c.Reports().Get(context.Background(), 3)

	require.NoError(t, err)
	var data model.LowStockAlertData
	require.NoError(t, json.Unmarshal(rep.Data, &data))
	assert.Equal(t, 1, data.LowStockCount)
	assert.True(t, data.Items[0].ReorderLevel.Equal(decimal.NewFromInt(10)))
}

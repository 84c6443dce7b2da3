package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/example/cashew-corner/internal/auth"
	"github.com/example/cashew-corner/internal/client"
	"github.com/example/cashew-corner/internal/command"
	"github.com/example/cashew-corner/internal/domain/draft"
	"github.com/example/cashew-corner/internal/domain/inventory"
	"github.com/example/cashew-corner/internal/events/mocks"
	"github.com/example/cashew-corner/internal/logging"
	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/query"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testSandbox struct {
	store   *Store
	client  *client.Client
	session *auth.Manager
}

func newTestSandbox(t *testing.T) *testSandbox {
	t.Helper()
	logger := logging.Discard()

	hash, err := auth.HashPasswordCost(DemoPassword, bcrypt.MinCost)
	require.NoError(t, err)
	store := NewStore()
	require.NoError(t, Seed(store, hash))

	jwtService := auth.NewJWTService("sandbox-test-secret", time.Hour, 24*time.Hour)
	router := NewRouter(NewHandlers(store, logger), NewAuthHandlers(store, jwtService, logger), jwtService, logger)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c := client.New(srv.URL+BasePath, client.WithLogger(logger))
	mgr := auth.NewManager(c.Auth(), auth.NewMemoryStore(), auth.WithLogger(logger))
	c.SetAuthorizer(mgr)
	c.SetUnauthorizedHandler(mgr.HandleUnauthorized)
	t.Cleanup(mgr.Logout)

	return &testSandbox{store: store, client: c, session: mgr}
}

func (s *testSandbox) login(t *testing.T) {
	t.Helper()
	_, err := s.session.Login(context.Background(), DemoEmail, DemoPassword)
	require.NoError(t, err)
}

// ============================================
// Auth Tests
// ============================================

func TestSandbox_RequiresBearerToken(t *testing.T) {
	sb := newTestSandbox(t)

	_, err := sb.client.Products().List(context.Background())

	require.Error(t, err)
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, "Full authentication is required to access this resource", client.Message(err, "fallback"))
}

func TestSandbox_LoginWrongPassword(t *testing.T) {
	sb := newTestSandbox(t)

	_, err := sb.session.Login(context.Background(), DemoEmail, "wrong-password")

	var loginErr *auth.LoginError
	require.ErrorAs(t, err, &loginErr)
	assert.Equal(t, "Invalid email or password", loginErr.Message)
	assert.False(t, sb.session.HasActiveSession())
}

func TestSandbox_LoginAndLogout(t *testing.T) {
	sb := newTestSandbox(t)

	resp, err := sb.session.Login(context.Background(), DemoEmail, DemoPassword)

	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	require.NotNil(t, resp.User)
	assert.Equal(t, "ADMIN", resp.User.RoleName)
	assert.True(t, sb.session.HasActiveSession())

	products, err := sb.client.Products().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)

	sb.session.LogoutFromServer(context.Background())
	assert.False(t, sb.session.HasActiveSession())
}

func TestSandbox_StaffOnlyCreate(t *testing.T) {
	sb := newTestSandbox(t)
	hash, err := auth.HashPasswordCost("cashier-pass", bcrypt.MinCost)
	require.NoError(t, err)
	sb.store.AddUser(model.AuthUser{Email: "cashier@example.com", RoleName: "CASHIER", IsActive: true}, hash)
	_, err = sb.session.Login(context.Background(), "cashier@example.com", "cashier-pass")
	require.NoError(t, err)

	_, err = sb.client.Customers().Create(context.Background(), model.CreateCustomerRequest{Name: "New Shop"})

	assert.True(t, client.IsStatus(err, http.StatusForbidden))
}

// ============================================
// Catalog Tests
// ============================================

func TestSandbox_CatalogSearchAndLookup(t *testing.T) {
	sb := newTestSandbox(t)
	sb.login(t)
	ctx := context.Background()

	found, err := sb.client.Products().Search(ctx, "w320")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "CSH-W320", found[0].SKU)

	roasted, err := sb.client.Products().ByCategory(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, roasted, 1)

	_, err = sb.client.Customers().Get(ctx, 99)
	assert.True(t, client.IsStatus(err, http.StatusNotFound))
	assert.Equal(t, "Customer not found with id: 99", client.Message(err, "fallback"))

	handler := query.NewHandler(query.SourcesFromClient(sb.client), logging.Discard())
	cat, err := handler.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, cat.Customers, 2)
	assert.Len(t, cat.Suppliers, 1)
	assert.Equal(t, []string{"Main Warehouse", "Retail Shop"}, cat.Locations(1))
	assert.Len(t, cat.LowStock(), 2)
}

// ============================================
// Command Flow Tests
// ============================================

func TestSandbox_SalesOrderAndTracking(t *testing.T) {
	sb := newTestSandbox(t)
	sb.login(t)
	ctx := context.Background()
	publisher := mocks.NewMockPublisher()
	commands := command.NewHandler(command.APIsFromClient(sb.client), publisher, logging.Discard())

	d := draft.New(draft.KindSales, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	d.PartyID = 1
	require.NoError(t, d.AddItem(1, decimal.NewFromInt(2), decimal.RequireFromString("9.75")))
	require.NoError(t, d.AddItem(3, decimal.NewFromInt(1), decimal.RequireFromString("12.90")))

	so, err := commands.SubmitSalesOrder(ctx, command.SubmitSalesOrder{Draft: d})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(so.SONumber, "SO"))
	assert.Equal(t, "32.4", so.TotalAmount.String())
	assert.Equal(t, "2025-03-17", so.DeliveryDate)
	assert.Len(t, publisher.PublishCalls, 1)

	tracker := query.NewHandler(query.SourcesFromClient(sb.client), logging.Discard())
	tr, err := tracker.TrackOrder(ctx, so.SONumber)
	require.NoError(t, err)
	assert.Equal(t, so.SalesOrderID, tr.Order.SalesOrderID)
	assert.Equal(t, "Pending", tr.Status)
	assert.Len(t, tr.Steps, 5)

	_, err = tracker.TrackOrder(ctx, "SO-NOPE")
	assert.Equal(t, `No order found with number "SO-NOPE". Please check and try again.`, query.TrackMessage(err))
}

func TestSandbox_AdjustAndReceive(t *testing.T) {
	sb := newTestSandbox(t)
	sb.login(t)
	ctx := context.Background()
	commands := command.NewHandler(command.APIsFromClient(sb.client), nil, nil)

	records, err := sb.client.Inventory().List(ctx)
	require.NoError(t, err)

	adj := inventory.NewAdjustment(records)
	adj.SelectProduct(1)
	require.NoError(t, adj.SelectLocation("Main Warehouse"))
	adj.Quantity = decimal.NewFromInt(500)
	adj.AdjustmentType = model.AdjustSubtract
	adj.Notes = "cycle count"
	assert.True(t, adj.Preview().Clamped)

	_, err = commands.AdjustStock(ctx, command.AdjustStock{Adjustment: adj})
	require.Error(t, err)
	assert.Equal(t, "Insufficient stock. Available: 120", command.UserMessage(err, "Failed to adjust stock"))

	adj.Quantity = decimal.NewFromInt(20)
	rec, err := commands.AdjustStock(ctx, command.AdjustStock{Adjustment: adj})
	require.NoError(t, err)
	assert.Equal(t, "100", rec.QuantityOnHand.String())

	rec, err = commands.ReceiveStock(ctx, command.ReceiveStock{
		ProductID: 2, Quantity: decimal.NewFromInt(15), Location: "Retail Shop",
	})
	require.NoError(t, err)
	assert.Equal(t, "15", rec.QuantityOnHand.String())

	movements, err := sb.client.Inventory().Movements(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, movements, 3)
}

func TestSandbox_ValidationEnvelope(t *testing.T) {
	sb := newTestSandbox(t)
	sb.login(t)

	_, err := sb.client.Raw(context.Background(), http.MethodPost, "/sales-orders", nil, map[string]any{
		"customerId": 1,
		"orderDate":  "2025-03-10",
	})

	require.Error(t, err)
	assert.True(t, client.IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, "Validation failed", client.Message(err, "fallback"))
}

func TestSandbox_StatusUpdateMovesTimeline(t *testing.T) {
	sb := newTestSandbox(t)
	sb.login(t)
	ctx := context.Background()
	so, err := sb.store.CreateSalesOrder(model.CreateSalesOrderRequest{
		CustomerID: 1, OrderDate: "2025-03-10", DeliveryDate: "2025-03-17",
		Items: []model.LineItemRequest{{ProductID: 1, Quantity: 1, UnitPrice: 9.75}},
	})
	require.NoError(t, err)

	_, err = sb.client.Raw(ctx, http.MethodPatch, "/sales-orders/1/status", url.Values{"status": {"shipped"}}, nil)
	require.NoError(t, err)

	tracker := query.NewHandler(query.SourcesFromClient(sb.client), logging.Discard())
	tr, err := tracker.TrackOrder(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, so.SONumber, tr.Order.SONumber)
	assert.Equal(t, 3, tr.CurrentStep)

	_, err = sb.client.Raw(ctx, http.MethodPatch, "/sales-orders/1/status", url.Values{"status": {"LOST"}}, nil)
	assert.True(t, client.IsStatus(err, http.StatusBadRequest))
}

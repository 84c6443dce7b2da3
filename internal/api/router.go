package api

import (
	"net/http"
	"time"

	"github.com/example/cashew-corner/internal/api/middleware"
	"github.com/example/cashew-corner/internal/auth"
	"github.com/sirupsen/logrus"
)

// BasePath prefixes every sandbox route, matching the backend
const BasePath = "/api"

func NewRouter(handlers *Handlers, authHandlers *AuthHandlers, jwtService *auth.JWTService, logger logrus.FieldLogger) http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.AuthMiddleware(jwtService)
	requireStaff := middleware.RequireRole("ADMIN", "MANAGER")

	public := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, h)
	}
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, requireAuth(h))
	}
	staffOnly := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, requireAuth(requireStaff(h)))
	}

	// Auth
	public("POST "+BasePath+"/auth/login", authHandlers.Login)
	protected("POST "+BasePath+"/auth/logout", authHandlers.Logout)

	// Catalog
	protected("GET "+BasePath+"/products", handlers.GetProducts)
	protected("GET "+BasePath+"/products/search", handlers.SearchProducts)
	protected("GET "+BasePath+"/products/category/{id}", handlers.GetProductsByCategory)
	protected("GET "+BasePath+"/products/{id}", handlers.GetProduct)
	staffOnly("POST "+BasePath+"/products", handlers.CreateProduct)
	protected("GET "+BasePath+"/categories", handlers.GetCategories)

	protected("GET "+BasePath+"/customers", handlers.GetCustomers)
	protected("GET "+BasePath+"/customers/search", handlers.SearchCustomers)
	protected("GET "+BasePath+"/customers/{id}", handlers.GetCustomer)
	staffOnly("POST "+BasePath+"/customers", handlers.CreateCustomer)

	protected("GET "+BasePath+"/suppliers", handlers.GetSuppliers)
	protected("GET "+BasePath+"/suppliers/search", handlers.SearchSuppliers)
	protected("GET "+BasePath+"/suppliers/{id}", handlers.GetSupplier)
	staffOnly("POST "+BasePath+"/suppliers", handlers.CreateSupplier)

	// Inventory
	protected("GET "+BasePath+"/inventory", handlers.GetInventory)
	protected("GET "+BasePath+"/inventory/low-stock", handlers.GetLowStock)
	protected("GET "+BasePath+"/inventory/summary", handlers.GetInventorySummary)
	protected("GET "+BasePath+"/inventory/product/{id}", handlers.GetInventoryByProduct)
	protected("GET "+BasePath+"/inventory/movements", handlers.GetMovements)
	protected("POST "+BasePath+"/inventory/receive", handlers.ReceiveStock)
	protected("POST "+BasePath+"/inventory/adjust", handlers.AdjustStock)

	// Orders
	protected("GET "+BasePath+"/orders", handlers.GetOrders)
	protected("GET "+BasePath+"/orders/{id}", handlers.GetOrder)
	protected("POST "+BasePath+"/orders", handlers.CreateOrder)

	protected("GET "+BasePath+"/sales-orders", handlers.GetSalesOrders)
	protected("GET "+BasePath+"/sales-orders/search", handlers.SearchSalesOrders)
	protected("GET "+BasePath+"/sales-orders/{id}", handlers.GetSalesOrder)
	protected("POST "+BasePath+"/sales-orders", handlers.CreateSalesOrder)
	staffOnly("PATCH "+BasePath+"/sales-orders/{id}/status", handlers.UpdateSalesOrderStatus)

	protected("GET "+BasePath+"/purchase-orders", handlers.GetPurchaseOrders)
	protected("GET "+BasePath+"/purchase-orders/search", handlers.SearchPurchaseOrders)
	protected("GET "+BasePath+"/purchase-orders/{id}", handlers.GetPurchaseOrder)
	protected("POST "+BasePath+"/purchase-orders", handlers.CreatePurchaseOrder)

	return withLogging(mux, logger)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(next http.Handler, logger logrus.FieldLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.WithFields(logrus.Fields{
			"component":  "API",
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"request_id": r.Header.Get("X-Request-ID"),
			"duration":   time.Since(start).String(),
		}).Debug("request")
	})
}

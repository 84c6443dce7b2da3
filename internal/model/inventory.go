package model

import "github.com/shopspring/decimal"

type AdjustmentType string

const (
	AdjustAdd      AdjustmentType = "ADD"
	AdjustSubtract AdjustmentType = "SUBTRACT"
)

// InventoryRecord is one on-hand row, keyed by (ProductID, Location)
type InventoryRecord struct {
	InventoryID       int64           `json:"inventoryId"`
	ProductID         int64           `json:"productId"`
	ProductName       string          `json:"productName"`
	ProductSKU        string          `json:"productSku"`
	Location          string          `json:"location"`
	QuantityOnHand    decimal.Decimal `json:"quantityOnHand"`
	ReservedQuantity  decimal.Decimal `json:"reservedQuantity"`
	AvailableQuantity decimal.Decimal `json:"availableQuantity"`
	Unit              string          `json:"unit"`
	LastUpdated       string          `json:"lastUpdated,omitempty"`
}

type InventorySummary struct {
	TotalProducts       int64           `json:"totalProducts"`
	LowStockItems       int64           `json:"lowStockItems"`
	TotalInventoryValue decimal.Decimal `json:"totalInventoryValue"`
	LocationsCount      int64           `json:"locationsCount"`
}

type ReceiveStockRequest struct {
	ProductID       int64   `json:"productId" validate:"required,gt=0"`
	Quantity        float64 `json:"quantity" validate:"gt=0"`
	Location        string  `json:"location" validate:"required"`
	PurchaseOrderID *int64  `json:"purchaseOrderId,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

type AdjustStockRequest struct {
	ProductID      int64          `json:"productId" validate:"required,gt=0"`
	Quantity       float64        `json:"quantity" validate:"gte=0.01"`
	Location       string         `json:"location" validate:"required"`
	AdjustmentType AdjustmentType `json:"adjustmentType" validate:"required,oneof=ADD SUBTRACT"`
	Notes          string         `json:"notes,omitempty"`
}

type StockMovement struct {
	MovementID   int64           `json:"movementId"`
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	MovementType string          `json:"movementType"`
	RelatedType  string          `json:"relatedType"`
	RelatedID    int64           `json:"relatedId"`
	Quantity     decimal.Decimal `json:"quantity"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Notes        string          `json:"notes"`
	MovementDate string          `json:"movementDate"`
}

// InventorySearch holds the optional filters of GET /inventory/search
type InventorySearch struct {
	Variety     string
	SupplierID  int64
	Location    string
	ProductName string
}

// MovementSearch holds the optional filters of GET /inventory/movements/search
type MovementSearch struct {
	ProductName  string
	MovementType string
	StartDate    string
	EndDate      string
}

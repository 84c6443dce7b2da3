package model

import "github.com/shopspring/decimal"

// LineItemRequest is the wire shape shared by all line-item-bearing creates
type LineItemRequest struct {
	ProductID int64   `json:"productId" validate:"required,gt=0"`
	Quantity  float64 `json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

// Order

type CreateOrderRequest struct {
	CustomerID  int64             `json:"customerId" validate:"required,gt=0"`
	OrderDate   string            `json:"orderDate" validate:"required"`
	Status      string            `json:"status"`
	TotalAmount float64           `json:"totalAmount" validate:"gte=0"`
	Items       []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	CustomerID  *int64   `json:"customerId,omitempty"`
	OrderDate   *string  `json:"orderDate,omitempty"`
	Status      *string  `json:"status,omitempty"`
	TotalAmount *float64 `json:"totalAmount,omitempty"`
}

type OrderItem struct {
	OrderItemID int64           `json:"orderItemId"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type Order struct {
	OrderID      int64           `json:"orderId"`
	CustomerID   int64           `json:"customerId"`
	CustomerName string          `json:"customerName"`
	OrderDate    string          `json:"orderDate"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CreatedAt    string          `json:"createdAt,omitempty"`
	UpdatedAt    string          `json:"updatedAt,omitempty"`
	Items        []OrderItem     `json:"items"`
}

type UpdateQuantityRequest struct {
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

// Sales order

type CreateSalesOrderRequest struct {
	CustomerID   int64             `json:"customerId" validate:"required,gt=0"`
	OrderDate    string            `json:"orderDate" validate:"required"`
	DeliveryDate string            `json:"deliveryDate" validate:"required"`
	Items        []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

type SalesOrderItem struct {
	SalesOrderItemID int64           `json:"salesOrderItemId"`
	ProductID        int64           `json:"productId"`
	ProductName      string          `json:"productName"`
	ProductSKU       string          `json:"productSku"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	LineTotal        decimal.Decimal `json:"lineTotal"`
}

type SalesOrder struct {
	SalesOrderID int64            `json:"salesOrderId"`
	SONumber     string           `json:"soNumber"`
	CustomerID   int64            `json:"customerId"`
	CustomerName string           `json:"customerName"`
	OrderDate    string           `json:"orderDate"`
	DeliveryDate string           `json:"deliveryDate"`
	Status       string           `json:"status"`
	TotalAmount  decimal.Decimal  `json:"totalAmount"`
	Items        []SalesOrderItem `json:"items"`
	CreatedAt    string           `json:"createdAt,omitempty"`
	UpdatedAt    string           `json:"updatedAt,omitempty"`
}

// Purchase order

type CreatePurchaseOrderRequest struct {
	SupplierID   int64             `json:"supplierId" validate:"required,gt=0"`
	OrderDate    string            `json:"orderDate" validate:"required"`
	ExpectedDate string            `json:"expectedDate" validate:"required"`
	Items        []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PurchaseOrderItem struct {
	PurchaseOrderItemID int64           `json:"purchaseOrderItemId"`
	ProductID           int64           `json:"productId"`
	ProductName         string          `json:"productName"`
	ProductSKU          string          `json:"productSku"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	LineTotal           decimal.Decimal `json:"lineTotal"`
	ReceivedQuantity    decimal.Decimal `json:"receivedQuantity"`
}

type PurchaseOrder struct {
	PurchaseOrderID int64               `json:"purchaseOrderId"`
	PONumber        string              `json:"poNumber"`
	SupplierID      int64               `json:"supplierId"`
	SupplierName    string              `json:"supplierName"`
	OrderDate       string              `json:"orderDate"`
	ExpectedDate    string              `json:"expectedDate"`
	Status          string              `json:"status"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	Items           []PurchaseOrderItem `json:"items"`
	CreatedAt       string              `json:"createdAt,omitempty"`
	UpdatedAt       string              `json:"updatedAt,omitempty"`
}

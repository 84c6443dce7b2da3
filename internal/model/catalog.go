package model

import "github.com/shopspring/decimal"

// Product

type CategoryRef struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
}

type Product struct {
	ProductID    int64           `json:"productId"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Unit         string          `json:"unit"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellPrice    decimal.Decimal `json:"sellPrice"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	CreatedAt    string          `json:"createdAt,omitempty"`
	UpdatedAt    string          `json:"updatedAt,omitempty"`
	Categories   []CategoryRef   `json:"categories,omitempty"`
}

type CreateProductRequest struct {
	SKU          string  `json:"sku" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	Unit         string  `json:"unit" validate:"required"`
	CostPrice    float64 `json:"costPrice" validate:"gte=0"`
	SellPrice    float64 `json:"sellPrice" validate:"gte=0"`
	ReorderLevel float64 `json:"reorderLevel" validate:"gte=0"`
}

type UpdateProductRequest struct {
	SKU          *string  `json:"sku,omitempty"`
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	CostPrice    *float64 `json:"costPrice,omitempty" validate:"omitempty,gte=0"`
	SellPrice    *float64 `json:"sellPrice,omitempty" validate:"omitempty,gte=0"`
	ReorderLevel *float64 `json:"reorderLevel,omitempty" validate:"omitempty,gte=0"`
}

type AssignCategoryRequest struct {
	CategoryID int64 `json:"categoryId" validate:"required,gt=0"`
}

// Category

type Category struct {
	CategoryID  int64  `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Customer

type Customer struct {
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Type       string `json:"type"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	Type    string `json:"type"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty"`
	Type    *string `json:"type,omitempty"`
}

// Supplier

type Supplier struct {
	SupplierID    int64  `json:"supplierId"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	ContactPerson string `json:"contactPerson"`
	PaymentTerms  string `json:"paymentTerms"`
	IsApproved    bool   `json:"isApproved"`
	CreatedAt     string `json:"createdAt,omitempty"`
	UpdatedAt     string `json:"updatedAt,omitempty"`
}

type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	ContactPerson string `json:"contactPerson"`
	PaymentTerms  string `json:"paymentTerms"`
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Address       *string `json:"address,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	PaymentTerms  *string `json:"paymentTerms,omitempty"`
	IsApproved    *bool   `json:"isApproved,omitempty"`
}

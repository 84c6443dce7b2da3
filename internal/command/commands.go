package command

import (
	"github.com/example/cashew-corner/internal/domain/draft"
	"github.com/example/cashew-corner/internal/domain/inventory"
	"github.com/example/cashew-corner/internal/model"
	"github.com/shopspring/decimal"
)

// Order commands

type SubmitSalesOrder struct {
	Draft *draft.Draft
}

type SubmitPurchaseOrder struct {
	Draft *draft.Draft
}

type SubmitOrder struct {
	Draft *draft.Draft
}

// Inventory commands

type ReceiveStock struct {
	ProductID       int64
	Quantity        decimal.Decimal
	Location        string
	PurchaseOrderID *int64
	Notes           string
}

type AdjustStock struct {
	Adjustment *inventory.Adjustment
}

// Report commands

type GenerateReport struct {
	ReportType model.ReportType
	Parameters model.ReportParameters
}

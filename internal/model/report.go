package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type ReportType string

const (
	ReportInventorySummary ReportType = "INVENTORY_SUMMARY"
	ReportSalesPerformance ReportType = "SALES_PERFORMANCE"
	ReportPayrollSummary   ReportType = "PAYROLL_SUMMARY"
	ReportLowStockAlert    ReportType = "LOW_STOCK_ALERT"
)

type VolumeReportType string

const (
	VolumeSales    VolumeReportType = "SALES"
	VolumePurchase VolumeReportType = "PURCHASE"
)

type ReportParameters struct {
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	PeriodStart string `json:"periodStart,omitempty"`
	PeriodEnd   string `json:"periodEnd,omitempty"`
}

type GenerateReportRequest struct {
	ReportType ReportType       `json:"reportType" validate:"required,oneof=INVENTORY_SUMMARY SALES_PERFORMANCE PAYROLL_SUMMARY LOW_STOCK_ALERT"`
	Parameters ReportParameters `json:"parameters"`
}

// Report keeps Data raw; its shape depends on ReportType.
type Report struct {
	ReportID    int64            `json:"reportId"`
	ReportType  ReportType       `json:"reportType"`
	Parameters  ReportParameters `json:"parameters"`
	GeneratedBy string           `json:"generatedBy"`
	GeneratedAt string           `json:"generatedAt"`
	FilePath    *string          `json:"filePath"`
	Data        json.RawMessage  `json:"data"`
}

type SellingPriceFluctuation struct {
	Year                int             `json:"year"`
	Month               int             `json:"month"`
	AverageSellingPrice decimal.Decimal `json:"averageSellingPrice"`
	HighestPrice        decimal.Decimal `json:"highestPrice"`
	LowestPrice         decimal.Decimal `json:"lowestPrice"`
}

type TransactionSummary struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	TotalPurchases decimal.Decimal `json:"totalPurchases"`
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	Profit         decimal.Decimal `json:"profit"`
}

type CategoryFinancialSummary struct {
	CategoryID     int64           `json:"categoryId"`
	CategoryName   string          `json:"categoryName"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	TotalPurchases decimal.Decimal `json:"totalPurchases"`
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	Profit         decimal.Decimal `json:"profit"`
}

type CategoryVolumeReport struct {
	CategoryID              int64           `json:"categoryId"`
	CategoryName            string          `json:"categoryName"`
	Month                   int             `json:"month"`
	QuantitySoldOrPurchased decimal.Decimal `json:"quantitySoldOrPurchased"`
	AverageUnitPrice        decimal.Decimal `json:"averageUnitPrice"`
	TotalValue              decimal.Decimal `json:"totalValue"`
}

type LowStockItem struct {
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductSKU   string          `json:"productSku"`
	Location     string          `json:"location"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	Unit         string          `json:"unit"`
}

type LowStockAlertData struct {
	GeneratedAt   string         `json:"generatedAt"`
	LowStockCount int            `json:"lowStockCount"`
	Items         []LowStockItem `json:"items"`
}

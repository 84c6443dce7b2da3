package query

import (
	"testing"

	"github.com/example/cashew-corner/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		fields []string
		want   bool
	}{
		{"blank matches", "  ", []string{"anything"}, true},
		{"case insensitive", "CASHEW", []string{"w320 cashew"}, true},
		{"any field", "so-00", []string{"Anna", "SO-0012"}, true},
		{"no match", "almond", []string{"W320 Cashew", "CSH-320"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.text, tt.fields...))
		})
	}
}

func TestFilterProducts(t *testing.T) {
	products := []model.Product{
		{ProductID: 1, Name: "W320 Cashew", SKU: "CSH-320", Categories: []model.CategoryRef{{CategoryID: 7}}},
		{ProductID: 2, Name: "W240 Cashew", SKU: "CSH-240"},
		{ProductID: 3, Name: "Roasted Almond", SKU: "ALM-1", Categories: []model.CategoryRef{{CategoryID: 7}}},
	}

	assert.Len(t, FilterProducts(products, "cashew", 0), 2)
	assert.Len(t, FilterProducts(products, "csh-2", 0), 1)

	byCategory := FilterProducts(products, "", 7)
	assert.Len(t, byCategory, 2)

	both := FilterProducts(products, "cashew", 7)
	assert.Len(t, both, 1)
	assert.Equal(t, int64(1), both[0].ProductID)
}

func TestFilterOrders(t *testing.T) {
	sales := []model.SalesOrder{
		{SONumber: "SO-0001", CustomerName: "Anna"},
		{SONumber: "SO-0002", CustomerName: "Bao"},
	}
	assert.Len(t, FilterSalesOrders(sales, "so-000"), 2)
	assert.Len(t, FilterSalesOrders(sales, "bao"), 1)

	purchases := []model.PurchaseOrder{{PONumber: "PO-0001", SupplierName: "Binh Farms"}}
	assert.Len(t, FilterPurchaseOrders(purchases, "binh"), 1)
	assert.Empty(t, FilterPurchaseOrders(purchases, "so-"))
}

func TestFilterInventoryAndParties(t *testing.T) {
	records := []model.InventoryRecord{
		{ProductName: "W320 Cashew", Location: "Main"},
		{ProductName: "W320 Cashew", Location: "Annex"},
	}
	assert.Len(t, FilterInventory(records, "annex"), 1)

	customers := []model.Customer{{Name: "Anna", Email: "anna@example.com"}}
	assert.Len(t, FilterCustomers(customers, "EXAMPLE"), 1)

	suppliers := []model.Supplier{{Name: "Binh Farms", ContactPerson: "Minh"}}
	assert.Len(t, FilterSuppliers(suppliers, "minh"), 1)
}

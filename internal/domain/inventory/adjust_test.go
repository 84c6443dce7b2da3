package inventory

import (
	"testing"

	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testRecords() []model.InventoryRecord {
	return []model.InventoryRecord{
		{InventoryID: 1, ProductID: 10, Location: "Warehouse A", QuantityOnHand: dec("5"), AvailableQuantity: dec("5")},
		{InventoryID: 2, ProductID: 10, Location: "Shop Floor", QuantityOnHand: dec("0"), AvailableQuantity: dec("0")},
		{InventoryID: 3, ProductID: 20, Location: "Warehouse A", QuantityOnHand: dec("40"), AvailableQuantity: dec("32")},
		{InventoryID: 4, ProductID: 10, Location: "Warehouse A", QuantityOnHand: dec("7"), AvailableQuantity: dec("7")},
	}
}

// ============================================
// Location Lookup Tests
// ============================================

func TestAvailableLocations(t *testing.T) {
	tests := []struct {
		name      string
		productID int64
		want      []string
	}{
		{"dedupes and keeps zero stock", 10, []string{"Warehouse A", "Shop Floor"}},
		{"single location", 20, []string{"Warehouse A"}},
		{"unknown product", 99, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AvailableLocations(testRecords(), tt.productID))
		})
	}
}

func TestFindRecord_LastMatchWins(t *testing.T) {
	r, ok := FindRecord(testRecords(), 10, "Warehouse A")

	require.True(t, ok)
	assert.Equal(t, int64(4), r.InventoryID)
	assert.True(t, r.QuantityOnHand.Equal(dec("7")))
}

func TestFindRecord_NotFound(t *testing.T) {
	r, ok := FindRecord(testRecords(), 20, "Shop Floor")

	assert.False(t, ok)
	assert.Zero(t, r.InventoryID)
}

// ============================================
// Preview Tests
// ============================================

func TestCalculate(t *testing.T) {
	record := &model.InventoryRecord{ProductID: 10, Location: "Warehouse A", QuantityOnHand: dec("5")}

	tests := []struct {
		name    string
		delta   string
		typ     model.AdjustmentType
		want    string
		clamped bool
	}{
		{"add", "8", model.AdjustAdd, "13", false},
		{"subtract within stock", "2", model.AdjustSubtract, "3", false},
		{"subtract to zero", "5", model.AdjustSubtract, "0", false},
		{"subtract clamps at zero", "8", model.AdjustSubtract, "0", true},
		{"fractional add", "0.25", model.AdjustAdd, "5.25", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Calculate(record, dec(tt.delta), tt.typ)

			assert.True(t, p.HasBaseline)
			assert.True(t, p.CurrentQuantity.Equal(dec("5")))
			assert.True(t, p.ResultingQuantity.Equal(dec(tt.want)), "got %s", p.ResultingQuantity)
			assert.False(t, p.ResultingQuantity.IsNegative())
			assert.Equal(t, tt.clamped, p.Clamped)
		})
	}
}

func TestCalculate_NoRecord(t *testing.T) {
	p := Calculate(nil, dec("3"), model.AdjustSubtract)

	assert.False(t, p.HasBaseline)
	assert.True(t, p.CurrentQuantity.IsZero())
	assert.True(t, p.ResultingQuantity.IsZero())
}

// ============================================
// Adjustment Session Tests
// ============================================

func TestAdjustment_SelectProductResetsLocation(t *testing.T) {
	a := NewAdjustment(testRecords())
	a.SelectProduct(10)
	require.NoError(t, a.SelectLocation("Warehouse A"))
	a.Quantity = dec("2")
	require.True(t, a.Preview().HasBaseline)

	a.SelectProduct(20)

	assert.Empty(t, a.Location())
	_, ok := a.Record()
	assert.False(t, ok)
	p := a.Preview()
	assert.False(t, p.HasBaseline)
	assert.True(t, p.ResultingQuantity.IsZero())
	assert.Equal(t, []string{"Warehouse A"}, a.Locations())
}

func TestAdjustment_SelectLocation(t *testing.T) {
	a := NewAdjustment(testRecords())

	assert.ErrorIs(t, a.SelectLocation("Warehouse A"), ErrNoProduct)

	a.SelectProduct(20)
	assert.ErrorIs(t, a.SelectLocation("Shop Floor"), ErrUnknownLocation)

	require.NoError(t, a.SelectLocation("Warehouse A"))
	r, ok := a.Record()
	require.True(t, ok)
	assert.Equal(t, int64(3), r.InventoryID)
}

func TestAdjustment_PreviewFollowsInputs(t *testing.T) {
	a := NewAdjustment(testRecords())
	a.SelectProduct(20)
	require.NoError(t, a.SelectLocation("Warehouse A"))

	a.Quantity = dec("15")
	assert.True(t, a.Preview().ResultingQuantity.Equal(dec("55")))

	a.AdjustmentType = model.AdjustSubtract
	assert.True(t, a.Preview().ResultingQuantity.Equal(dec("25")))
}

func TestAdjustment_Request(t *testing.T) {
	a := NewAdjustment(testRecords())
	a.SelectProduct(10)
	require.NoError(t, a.SelectLocation("Shop Floor"))
	a.Quantity = dec("1.5")
	a.AdjustmentType = model.AdjustSubtract
	a.Notes = "  damaged in transit  "

	req, err := a.Request()

	require.NoError(t, err)
	assert.Equal(t, model.AdjustStockRequest{
		ProductID:      10,
		Quantity:       1.5,
		Location:       "Shop Floor",
		AdjustmentType: model.AdjustSubtract,
		Notes:          "damaged in transit",
	}, req)
}

func TestAdjustment_Request_Invalid(t *testing.T) {
	a := NewAdjustment(testRecords())
	a.SelectProduct(10)
	a.Quantity = dec("0.001")
	a.Notes = "   "

	_, err := a.Request()

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("quantity"))
	assert.True(t, verr.Has("notes"))
	assert.True(t, verr.Has("location"))
	assert.Len(t, verr.Fields, 3)
}

// ============================================
// Receive Tests
// ============================================

func TestReceiveRequest(t *testing.T) {
	po := int64(42)

	req, err := ReceiveRequest(10, dec("25"), "  Warehouse B ", &po, "")

	require.NoError(t, err)
	assert.Equal(t, "Warehouse B", req.Location)
	assert.Equal(t, 25.0, req.Quantity)
	require.NotNil(t, req.PurchaseOrderID)
	assert.Equal(t, int64(42), *req.PurchaseOrderID)
}

func TestReceiveRequest_Invalid(t *testing.T) {
	_, err := ReceiveRequest(0, dec("0"), "   ", nil, "")

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("productId"))
	assert.True(t, verr.Has("quantity"))
	assert.True(t, verr.Has("location"))
}

// ============================================
// Low Stock Tests
// ============================================

func TestLowStock(t *testing.T) {
	products := []model.Product{
		{ProductID: 10, ReorderLevel: dec("5")},
		{ProductID: 20, ReorderLevel: dec("10")},
	}

	low := LowStock(testRecords(), products)

	ids := make([]int64, 0, len(low))
	for _, r := range low {
		ids = append(ids, r.InventoryID)
	}
	assert.Equal(t, []int64{1, 2}, ids)
}

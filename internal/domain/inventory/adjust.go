// Package inventory resolves stock adjustments against the inventory records
// already loaded from the backend. Nothing here talks to the network.
package inventory

import (
	"errors"
	"strings"

	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/validation"
	"github.com/shopspring/decimal"
)

var (
	ErrNoProduct       = errors.New("no product selected")
	ErrUnknownLocation = errors.New("product has no stock record at location")
)

// MinAdjustQuantity is the smallest quantity the backend accepts for an adjustment
var MinAdjustQuantity = decimal.RequireFromString("0.01")

var validate = validation.New()

// AvailableLocations lists every location holding a record for productID,
// zero-quantity records included, de-duplicated in first-seen order.
func AvailableLocations(records []model.InventoryRecord, productID int64) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if r.ProductID != productID {
			continue
		}
		if _, ok := seen[r.Location]; ok {
			continue
		}
		seen[r.Location] = struct{}{}
		out = append(out, r.Location)
	}
	return out
}

// FindRecord returns the record for (productID, location). When the backend
// returns duplicates the last one wins.
func FindRecord(records []model.InventoryRecord, productID int64, location string) (model.InventoryRecord, bool) {
	var (
		found model.InventoryRecord
		ok    bool
	)
	for _, r := range records {
		if r.ProductID == productID && r.Location == location {
			found = r
			ok = true
		}
	}
	return found, ok
}

// Preview is the locally computed outcome of an adjustment. The backend
// recomputes it authoritatively; it is never sent.
type Preview struct {
	CurrentQuantity   decimal.Decimal      `json:"current_quantity"`
	Delta             decimal.Decimal      `json:"delta"`
	AdjustmentType    model.AdjustmentType `json:"adjustment_type"`
	ResultingQuantity decimal.Decimal      `json:"resulting_quantity"`
	// HasBaseline is false when no record matched; all quantities are then zero
	HasBaseline bool `json:"has_baseline"`
	// Clamped marks a subtraction larger than the quantity on hand
	Clamped bool `json:"clamped"`
}

// Calculate previews applying delta to record. A nil record yields a zero
// preview without baseline. Subtraction floors at zero.
func Calculate(record *model.InventoryRecord, delta decimal.Decimal, typ model.AdjustmentType) Preview {
	p := Preview{Delta: delta, AdjustmentType: typ}
	if record == nil {
		return p
	}

	p.HasBaseline = true
	p.CurrentQuantity = record.QuantityOnHand

	switch typ {
	case model.AdjustAdd:
		p.ResultingQuantity = record.QuantityOnHand.Add(delta)
	case model.AdjustSubtract:
		// TODO: over-subtraction is absorbed silently; reject it once the product owner decides
		result := record.QuantityOnHand.Sub(delta)
		if result.IsNegative() {
			result = decimal.Zero
			p.Clamped = true
		}
		p.ResultingQuantity = result
	default:
		p.ResultingQuantity = record.QuantityOnHand
	}
	return p
}

// Adjustment is one stock-adjustment form session: pick a product, then one
// of its locations, then quantity and direction. It is not safe for
// concurrent use.
type Adjustment struct {
	records []model.InventoryRecord

	productID int64
	location  string
	record    *model.InventoryRecord

	Quantity       decimal.Decimal
	AdjustmentType model.AdjustmentType
	Notes          string
}

func NewAdjustment(records []model.InventoryRecord) *Adjustment {
	return &Adjustment{
		records:        records,
		AdjustmentType: model.AdjustAdd,
	}
}

// SelectProduct switches product and drops the location and any preview tied to it
func (a *Adjustment) SelectProduct(productID int64) {
	a.productID = productID
	a.location = ""
	a.record = nil
}

func (a *Adjustment) ProductID() int64 {
	return a.productID
}

func (a *Adjustment) Location() string {
	return a.location
}

// Locations lists the locations available for the selected product
func (a *Adjustment) Locations() []string {
	if a.productID == 0 {
		return nil
	}
	return AvailableLocations(a.records, a.productID)
}

// SelectLocation binds the session to the record at location for the current product
func (a *Adjustment) SelectLocation(location string) error {
	if a.productID == 0 {
		return ErrNoProduct
	}
	r, ok := FindRecord(a.records, a.productID, location)
	if !ok {
		return ErrUnknownLocation
	}
	a.location = location
	a.record = &r
	return nil
}

// Record returns the record the session is bound to
func (a *Adjustment) Record() (model.InventoryRecord, bool) {
	if a.record == nil {
		return model.InventoryRecord{}, false
	}
	return *a.record, true
}

// Preview reflects the current inputs. It has no baseline until both product
// and location are selected.
func (a *Adjustment) Preview() Preview {
	return Calculate(a.record, a.Quantity, a.AdjustmentType)
}

// Request validates the session and builds the adjust payload. Notes are
// trimmed and required.
func (a *Adjustment) Request() (model.AdjustStockRequest, error) {
	var c validation.Collector
	if a.Quantity.LessThan(MinAdjustQuantity) {
		c.Add("quantity", "gte", "must be at least 0.01")
	}
	notes := strings.TrimSpace(a.Notes)
	if notes == "" {
		c.Add("notes", "required", "is required")
	}

	req := model.AdjustStockRequest{
		ProductID:      a.productID,
		Quantity:       a.Quantity.InexactFloat64(),
		Location:       a.location,
		AdjustmentType: a.AdjustmentType,
		Notes:          notes,
	}
	if err := c.Merge(validate.Struct(req)); err != nil {
		return model.AdjustStockRequest{}, err
	}
	if err := c.Err(); err != nil {
		return model.AdjustStockRequest{}, dedupe(err)
	}
	return req, nil
}

// ReceiveRequest validates and builds a goods-received payload. The location
// is trimmed; purchaseOrderID and notes are optional.
func ReceiveRequest(productID int64, quantity decimal.Decimal, location string, purchaseOrderID *int64, notes string) (model.ReceiveStockRequest, error) {
	var c validation.Collector
	if !quantity.IsPositive() {
		c.Add("quantity", "gt", "must be greater than 0")
	}

	req := model.ReceiveStockRequest{
		ProductID:       productID,
		Quantity:        quantity.InexactFloat64(),
		Location:        strings.TrimSpace(location),
		PurchaseOrderID: purchaseOrderID,
		Notes:           strings.TrimSpace(notes),
	}
	if err := c.Merge(validate.Struct(req)); err != nil {
		return model.ReceiveStockRequest{}, err
	}
	if err := c.Err(); err != nil {
		return model.ReceiveStockRequest{}, dedupe(err)
	}
	return req, nil
}

// IsLowStock reports whether the available quantity has reached the product's reorder level
func IsLowStock(record model.InventoryRecord, product model.Product) bool {
	return record.AvailableQuantity.LessThanOrEqual(product.ReorderLevel)
}

// LowStock filters records at or below their product's reorder level.
// Records whose product is not in the catalog are skipped.
func LowStock(records []model.InventoryRecord, products []model.Product) []model.InventoryRecord {
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ProductID] = p
	}
	var out []model.InventoryRecord
	for _, r := range records {
		p, ok := byID[r.ProductID]
		if !ok {
			continue
		}
		if IsLowStock(r, p) {
			out = append(out, r)
		}
	}
	return out
}

// the decimal check and the tag check can both flag quantity
func dedupe(err error) error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return err
	}
	seen := make(map[string]struct{})
	fields := verr.Fields[:0]
	for _, f := range verr.Fields {
		if _, ok := seen[f.Field]; ok {
			continue
		}
		seen[f.Field] = struct{}{}
		fields = append(fields, f)
	}
	verr.Fields = fields
	return verr
}

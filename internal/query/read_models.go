package query

import (
	"github.com/example/cashew-corner/internal/domain/inventory"
	"github.com/example/cashew-corner/internal/domain/timeline"
	"github.com/example/cashew-corner/internal/model"
)

// Catalog is the reference data forms pick from
type Catalog struct {
	Customers []model.Customer
	Suppliers []model.Supplier
	Products  []model.Product
	Inventory []model.InventoryRecord
}

func (c *Catalog) Product(id int64) (model.Product, bool) {
	for _, p := range c.Products {
		if p.ProductID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// Locations lists where productID is stocked
func (c *Catalog) Locations(productID int64) []string {
	return inventory.AvailableLocations(c.Inventory, productID)
}

func (c *Catalog) LowStock() []model.InventoryRecord {
	return inventory.LowStock(c.Inventory, c.Products)
}

// Tracking is a tracked sales order with its derived progress
type Tracking struct {
	Order       model.SalesOrder `json:"order"`
	Status      string           `json:"status"`
	CurrentStep int              `json:"currentStep"`
	Steps       []timeline.Step  `json:"steps"`
}

func newTracking(so model.SalesOrder) *Tracking {
	return &Tracking{
		Order:       so,
		Status:      timeline.FormatStatus(so.Status),
		CurrentStep: timeline.CurrentStep(so.Status),
		Steps:       timeline.Derive(timeline.FromSalesOrder(so)),
	}
}

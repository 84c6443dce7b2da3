package query

import (
	"strings"

	"github.com/example/cashew-corner/internal/model"
)

// Matches reports whether any field contains text, ignoring case. Blank text matches everything.
func Matches(text string, fields ...string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Filter keeps the items whose fields match text
func Filter[T any](items []T, text string, fields func(T) []string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(text, fields(item)...) {
			out = append(out, item)
		}
	}
	return out
}

// FilterProducts matches name, SKU and description. A non-zero categoryID
// additionally requires the product to carry that category.
func FilterProducts(products []model.Product, text string, categoryID int64) []model.Product {
	out := Filter(products, text, func(p model.Product) []string {
		return []string{p.Name, p.SKU, p.Description}
	})
	if categoryID == 0 {
		return out
	}
	kept := out[:0]
	for _, p := range out {
		if hasCategory(p, categoryID) {
			kept = append(kept, p)
		}
	}
	return kept
}

func hasCategory(p model.Product, categoryID int64) bool {
	for _, c := range p.Categories {
		if c.CategoryID == categoryID {
			return true
		}
	}
	return false
}

func FilterCustomers(customers []model.Customer, text string) []model.Customer {
	return Filter(customers, text, func(c model.Customer) []string {
		return []string{c.Name, c.Email, c.Phone}
	})
}

func FilterSuppliers(suppliers []model.Supplier, text string) []model.Supplier {
	return Filter(suppliers, text, func(s model.Supplier) []string {
		return []string{s.Name, s.ContactPerson, s.Email}
	})
}

func FilterInventory(records []model.InventoryRecord, text string) []model.InventoryRecord {
	return Filter(records, text, func(r model.InventoryRecord) []string {
		return []string{r.ProductName, r.ProductSKU, r.Location}
	})
}

func FilterSalesOrders(orders []model.SalesOrder, text string) []model.SalesOrder {
	return Filter(orders, text, func(o model.SalesOrder) []string {
		return []string{o.SONumber, o.CustomerName, o.Status}
	})
}

func FilterPurchaseOrders(orders []model.PurchaseOrder, text string) []model.PurchaseOrder {
	return Filter(orders, text, func(o model.PurchaseOrder) []string {
		return []string{o.PONumber, o.SupplierName, o.Status}
	})
}

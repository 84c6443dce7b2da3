package api

import (
	"github.com/example/cashew-corner/internal/model"
)

const (
	DemoEmail    = "admin@cashewcorner.local"
	DemoPassword = "cashew-admin"
)

// Seed loads a small demo dataset. passwordHash is the bcrypt hash of DemoPassword.
func Seed(s *Store, passwordHash string) error {
	s.AddUser(model.AuthUser{
		Username:  "admin",
		Email:     DemoEmail,
		FirstName: "Cashew",
		LastName:  "Admin",
		RoleName:  "ADMIN",
		IsActive:  true,
	}, passwordHash)

	raw := s.AddCategory(model.Category{Name: "Raw Cashew", Description: "Unprocessed kernels"})
	roasted := s.AddCategory(model.Category{Name: "Roasted", Description: "Roasted and salted"})

	products := []struct {
		req        model.CreateProductRequest
		categoryID int64
	}{
		{model.CreateProductRequest{SKU: "CSH-W320", Name: "W320 Whole Cashew", Unit: "kg", CostPrice: 6.5, SellPrice: 9.75, ReorderLevel: 50}, raw.CategoryID},
		{model.CreateProductRequest{SKU: "CSH-W240", Name: "W240 Whole Cashew", Unit: "kg", CostPrice: 7.8, SellPrice: 11.5, ReorderLevel: 40}, raw.CategoryID},
		{model.CreateProductRequest{SKU: "CSH-RS", Name: "Roasted Salted Cashew", Unit: "kg", CostPrice: 8.2, SellPrice: 12.9, ReorderLevel: 25}, roasted.CategoryID},
	}
	for _, p := range products {
		if _, err := s.CreateProduct(p.req, p.categoryID); err != nil {
			return err
		}
	}

	s.CreateCustomer(model.CreateCustomerRequest{Name: "Green Leaf Grocers", Email: "orders@greenleaf.example", Type: "WHOLESALE"})
	s.CreateCustomer(model.CreateCustomerRequest{Name: "Anna Nguyen", Email: "anna@example.com", Type: "RETAIL"})
	s.CreateSupplier(model.CreateSupplierRequest{Name: "Binh Phuoc Farms", ContactPerson: "Minh Tran", PaymentTerms: "NET30"})

	stock := []model.ReceiveStockRequest{
		{ProductID: 1, Quantity: 120, Location: "Main Warehouse"},
		{ProductID: 1, Quantity: 30, Location: "Retail Shop"},
		{ProductID: 2, Quantity: 35, Location: "Main Warehouse"},
		{ProductID: 3, Quantity: 60, Location: "Retail Shop"},
	}
	for _, req := range stock {
		if _, err := s.Receive(req); err != nil {
			return err
		}
	}
	return nil
}

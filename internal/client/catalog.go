package client

import (
	"context"
	"net/http"

	"github.com/example/cashew-corner/internal/model"
)

const (
	customersPath  = "/customers"
	productsPath   = "/products"
	categoriesPath = "/categories"
	suppliersPath  = "/suppliers"
)

func (c *Client) Customers() *CustomerClient { return &CustomerClient{c: c} }
func (c *Client) Products() *ProductClient { return &ProductClient{c: c} }
func (c *Client) Categories() *CategoryClient { return &CategoryClient{c: c} }
func (c *Client) Suppliers() *SupplierClient { return &SupplierClient{c: c} }

// Customer

type CustomerClient struct {
	c *Client
}

func (r *CustomerClient) List(ctx context.Context) ([]model.Customer, error) {
	return get[[]model.Customer](ctx, r.c, customersPath, nil)
}

func (r *CustomerClient) Get(ctx context.Context, id int64) (model.Customer, error) {
	return get[model.Customer](ctx, r.c, idPath(customersPath, id), nil)
}

func (r *CustomerClient) Search(ctx context.Context, name string) ([]model.Customer, error) {
	return get[[]model.Customer](ctx, r.c, customersPath+"/search", nameQuery("name", name))
}

func (r *CustomerClient) Create(ctx context.Context, req model.CreateCustomerRequest) (model.Customer, error) {
	return call[model.Customer](ctx, r.c, http.MethodPost, customersPath, nil, req)
}

func (r *CustomerClient) Update(ctx context.Context, id int64, req model.UpdateCustomerRequest) (model.Customer, error) {
	return call[model.Customer](ctx, r.c, http.MethodPut, idPath(customersPath, id), nil, req)
}

func (r *CustomerClient) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, idPath(customersPath, id))
}

// Product

type ProductClient struct {
	c *Client
}

func (r *ProductClient) List(ctx context.Context) ([]model.Product, error) {
	return get[[]model.Product](ctx, r.c, productsPath, nil)
}

func (r *ProductClient) Get(ctx context.Context, id int64) (model.Product, error) {
	return get[model.Product](ctx, r.c, idPath(productsPath, id), nil)
}

func (r *ProductClient) ByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return get[[]model.Product](ctx, r.c, idPath(productsPath+"/category", categoryID), nil)
}

func (r *ProductClient) Search(ctx context.Context, name string) ([]model.Product, error) {
	return get[[]model.Product](ctx, r.c, productsPath+"/search", nameQuery("name", name))
}

func (r *ProductClient) Create(ctx context.Context, req model.CreateProductRequest) (model.Product, error) {
	return call[model.Product](ctx, r.c, http.MethodPost, productsPath, nil, req)
}

func (r *ProductClient) Update(ctx context.Context, id int64, req model.UpdateProductRequest) (model.Product, error) {
	return call[model.Product](ctx, r.c, http.MethodPut, idPath(productsPath, id), nil, req)
}

func (r *ProductClient) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, idPath(productsPath, id))
}

func (r *ProductClient) AssignCategory(ctx context.Context, productID, categoryID int64) (model.Product, error) {
	body := model.AssignCategoryRequest{CategoryID: categoryID}
	return call[model.Product](ctx, r.c, http.MethodPost, idPath(productsPath, productID, "categories"), nil, body)
}

func (r *ProductClient) RemoveCategory(ctx context.Context, productID, categoryID int64) error {
	return r.c.delete(ctx, idPath(idPath(productsPath, productID, "categories"), categoryID))
}

// Category

type CategoryClient struct {
	c *Client
}

func (r *CategoryClient) List(ctx context.Context) ([]model.Category, error) {
	return get[[]model.Category](ctx, r.c, categoriesPath, nil)
}

func (r *CategoryClient) Get(ctx context.Context, id int64) (model.Category, error) {
	return get[model.Category](ctx, r.c, idPath(categoriesPath, id), nil)
}

func (r *CategoryClient) Search(ctx context.Context, name string) ([]model.Category, error) {
	return get[[]model.Category](ctx, r.c, categoriesPath+"/search", nameQuery("name", name))
}

func (r *CategoryClient) Create(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error) {
	return call[model.Category](ctx, r.c, http.MethodPost, categoriesPath, nil, req)
}

func (r *CategoryClient) Update(ctx context.Context, id int64, req model.UpdateCategoryRequest) (model.Category, error) {
	return call[model.Category](ctx, r.c, http.MethodPut, idPath(categoriesPath, id), nil, req)
}

func (r *CategoryClient) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, idPath(categoriesPath, id))
}

// Supplier

type SupplierClient struct {
	c *Client
}

func (r *SupplierClient) List(ctx context.Context) ([]model.Supplier, error) {
	return get[[]model.Supplier](ctx, r.c, suppliersPath, nil)
}

func (r *SupplierClient) Get(ctx context.Context, id int64) (model.Supplier, error) {
	return get[model.Supplier](ctx, r.c, idPath(suppliersPath, id), nil)
}

func (r *SupplierClient) Search(ctx context.Context, name string) ([]model.Supplier, error) {
	return get[[]model.Supplier](ctx, r.c, suppliersPath+"/search", nameQuery("name", name))
}

func (r *SupplierClient) Create(ctx context.Context, req model.CreateSupplierRequest) (model.Supplier, error) {
	return call[model.Supplier](ctx, r.c, http.MethodPost, suppliersPath, nil, req)
}

func (r *SupplierClient) Update(ctx context.Context, id int64, req model.UpdateSupplierRequest) (model.Supplier, error) {
	return call[model.Supplier](ctx, r.c, http.MethodPut, idPath(suppliersPath, id), nil, req)
}

func (r *SupplierClient) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, idPath(suppliersPath, id))
}

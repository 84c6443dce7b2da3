package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/cashew-corner/internal/model"
)

const inventoryPath = "/inventory"

func (c *Client) Inventory() *InventoryClient { return &InventoryClient{c: c} }

type InventoryClient struct {
	c *Client
}

func (r *InventoryClient) List(ctx context.Context) ([]model.InventoryRecord, error) {
	return get[[]model.InventoryRecord](ctx, r.c, inventoryPath, nil)
}

// Available lists records with stock above zero
func (r *InventoryClient) Available(ctx context.Context) ([]model.InventoryRecord, error) {
	return get[[]model.InventoryRecord](ctx, r.c, inventoryPath+"/available", nil)
}

func (r *InventoryClient) LowStock(ctx context.Context) ([]model.InventoryRecord, error) {
	return get[[]model.InventoryRecord](ctx, r.c, inventoryPath+"/low-stock", nil)
}

func (r *InventoryClient) ByProduct(ctx context.Context, productID int64) ([]model.InventoryRecord, error) {
	return get[[]model.InventoryRecord](ctx, r.c, idPath(inventoryPath+"/product", productID), nil)
}

func (r *InventoryClient) ByLocation(ctx context.Context, location string) ([]model.InventoryRecord, error) {
	return get[[]model.InventoryRecord](ctx, r.c, inventoryPath+"/location/"+url.PathEscape(location), nil)
}

// Search sends only the filters that are set
func (r *InventoryClient) Search(ctx context.Context, s model.InventorySearch) ([]model.InventoryRecord, error) {
	q := url.Values{}
	if s.Variety != "" {
		q.Set("variety", s.Variety)
	}
	if s.SupplierID > 0 {
		q.Set("supplierId", strconv.FormatInt(s.SupplierID, 10))
	}
	if s.Location != "" {
		q.Set("location", s.Location)
	}
	if s.ProductName != "" {
		q.Set("productName", s.ProductName)
	}
	return get[[]model.InventoryRecord](ctx, r.c, inventoryPath+"/search", q)
}

func (r *InventoryClient) Summary(ctx context.Context) (model.InventorySummary, error) {
	return get[model.InventorySummary](ctx, r.c, inventoryPath+"/summary", nil)
}

func (r *InventoryClient) Receive(ctx context.Context, req model.ReceiveStockRequest) (model.InventoryRecord, error) {
	return call[model.InventoryRecord](ctx, r.c, http.MethodPost, inventoryPath+"/receive", nil, req)
}

func (r *InventoryClient) Adjust(ctx context.Context, req model.AdjustStockRequest) (model.InventoryRecord, error) {
	return call[model.InventoryRecord](ctx, r.c, http.MethodPost, inventoryPath+"/adjust", nil, req)
}

// Movements lists stock movements, for one product when productID is positive
func (r *InventoryClient) Movements(ctx context.Context, productID int64) ([]model.StockMovement, error) {
	var q url.Values
	if productID > 0 {
		q = nameQuery("productId", strconv.FormatInt(productID, 10))
	}
	return get[[]model.StockMovement](ctx, r.c, inventoryPath+"/movements", q)
}

func (r *InventoryClient) SearchMovements(ctx context.Context, s model.MovementSearch) ([]model.StockMovement, error) {
	q := url.Values{}
	if s.ProductName != "" {
		q.Set("productName", s.ProductName)
	}
	if s.MovementType != "" {
		q.Set("movementType", s.MovementType)
	}
	if s.StartDate != "" {
		q.Set("startDate", s.StartDate)
	}
	if s.EndDate != "" {
		q.Set("endDate", s.EndDate)
	}
	return get[[]model.StockMovement](ctx, r.c, inventoryPath+"/movements/search", q)
}

package client

import (
	"context"
	"net/http"

	"github.com/example/cashew-corner/internal/model"
)

const (
	ordersPath         = "/orders"
	salesOrdersPath    = "/sales-orders"
	purchaseOrdersPath = "/purchase-orders"
)

func (c *Client) Orders() *OrderClient { return &OrderClient{c: c} }
func (c *Client) SalesOrders() *SalesOrderClient { return &SalesOrderClient{c: c} }
func (c *Client) PurchaseOrders() *PurchaseOrderClient { return &PurchaseOrderClient{c: c} }

// Order

type OrderClient struct {
	c *Client
}

func (r *OrderClient) List(ctx context.Context) ([]model.Order, error) {
	return get[[]model.Order](ctx, r.c, ordersPath, nil)
}

func (r *OrderClient) Get(ctx context.Context, id int64) (model.Order, error) {
	return get[model.Order](ctx, r.c, idPath(ordersPath, id), nil)
}

func (r *OrderClient) Search(ctx context.Context, customerName string) ([]model.Order, error) {
	return get[[]model.Order](ctx, r.c, ordersPath+"/search", nameQuery("customerName", customerName))
}

func (r *OrderClient) Create(ctx context.Context, req model.CreateOrderRequest) (model.Order, error) {
	return call[model.Order](ctx, r.c, http.MethodPost, ordersPath, nil, req)
}

func (r *OrderClient) Update(ctx context.Context, id int64, req model.UpdateOrderRequest) (model.Order, error) {
	return call[model.Order](ctx, r.c, http.MethodPut, idPath(ordersPath, id), nil, req)
}

func (r *OrderClient) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, idPath(ordersPath, id))
}

func (r *OrderClient) AddItem(ctx context.Context, orderID int64, item model.LineItemRequest) (model.Order, error) {
	return call[model.Order](ctx, r.c, http.MethodPost, idPath(ordersPath, orderID, "items"), nil, item)
}

func (r *OrderClient) UpdateItemQuantity(ctx context.Context, orderID, itemID int64, quantity float64) (model.Order, error) {
	body := model.UpdateQuantityRequest{Quantity: quantity}
	return call[model.Order](ctx, r.c, http.MethodPut, idPath(idPath(ordersPath, orderID, "items"), itemID), nil, body)
}

func (r *OrderClient) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	return r.c.delete(ctx, idPath(idPath(ordersPath, orderID, "items"), itemID))
}

// Sales order

type SalesOrderClient struct {
	c *Client
}

func (r *SalesOrderClient) Create(ctx context.Context, req model.CreateSalesOrderRequest) (model.SalesOrder, error) {
	return call[model.SalesOrder](ctx, r.c, http.MethodPost, salesOrdersPath, nil, req)
}

func (r *SalesOrderClient) List(ctx context.Context) ([]model.SalesOrder, error) {
	return get[[]model.SalesOrder](ctx, r.c, salesOrdersPath, nil)
}

func (r *SalesOrderClient) Get(ctx context.Context, id int64) (model.SalesOrder, error) {
	return get[model.SalesOrder](ctx, r.c, idPath(salesOrdersPath, id), nil)
}

func (r *SalesOrderClient) Search(ctx context.Context, orderNo string) ([]model.SalesOrder, error) {
	return get[[]model.SalesOrder](ctx, r.c, salesOrdersPath+"/search", nameQuery("orderNo", orderNo))
}

// Purchase order

type PurchaseOrderClient struct {
	c *Client
}

func (r *PurchaseOrderClient) Create(ctx context.Context, req model.CreatePurchaseOrderRequest) (model.PurchaseOrder, error) {
	return call[model.PurchaseOrder](ctx, r.c, http.MethodPost, purchaseOrdersPath, nil, req)
}

func (r *PurchaseOrderClient) List(ctx context.Context) ([]model.PurchaseOrder, error) {
	return get[[]model.PurchaseOrder](ctx, r.c, purchaseOrdersPath, nil)
}

func (r *PurchaseOrderClient) Get(ctx context.Context, id int64) (model.PurchaseOrder, error) {
	return get[model.PurchaseOrder](ctx, r.c, idPath(purchaseOrdersPath, id), nil)
}

func (r *PurchaseOrderClient) Search(ctx context.Context, orderNo string) ([]model.PurchaseOrder, error) {
	return get[[]model.PurchaseOrder](ctx, r.c, purchaseOrdersPath+"/search", nameQuery("orderNo", orderNo))
}

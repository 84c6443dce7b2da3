package api

import (
	"net/http"
	"strings"

	"github.com/example/cashew-corner/internal/domain/timeline"
	"github.com/example/cashew-corner/internal/model"
)

// Order Handlers

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Orders())
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	order, err := h.store.Order(id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if !h.decode(w, r, &req) {
		return
	}
	order, err := h.store.CreateOrder(req)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// Sales Order Handlers

func (h *Handlers) GetSalesOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.SalesOrders())
}

func (h *Handlers) SearchSalesOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.SearchSalesOrders(r.URL.Query().Get("orderNo")))
}

func (h *Handlers) GetSalesOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	so, err := h.store.SalesOrder(id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, so)
}

func (h *Handlers) CreateSalesOrder(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSalesOrderRequest
	if !h.decode(w, r, &req) {
		return
	}
	so, err := h.store.CreateSalesOrder(req)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.log.WithField("so_number", so.SONumber).WithField("total", so.TotalAmount.String()).Info("sales order created")
	respondJSON(w, http.StatusCreated, so)
}

// Purchase Order Handlers

func (h *Handlers) GetPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.PurchaseOrders())
}

func (h *Handlers) SearchPurchaseOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.SearchPurchaseOrders(r.URL.Query().Get("orderNo")))
}

func (h *Handlers) GetPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	po, err := h.store.PurchaseOrder(id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, po)
}

func (h *Handlers) CreatePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePurchaseOrderRequest
	if !h.decode(w, r, &req) {
		return
	}
	po, err := h.store.CreatePurchaseOrder(req)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.log.WithField("po_number", po.PONumber).WithField("total", po.TotalAmount.String()).Info("purchase order created")
	respondJSON(w, http.StatusCreated, po)
}

// UpdateSalesOrderStatus moves a sales order through its lifecycle, e.g. ?status=SHIPPED
func (h *Handlers) UpdateSalesOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	status := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))
	if timeline.Index(status) < 0 && status != timeline.StatusCancelled {
		respondJSONError(w, "Invalid status: "+status, http.StatusBadRequest)
		return
	}
	so, err := h.store.SetSalesOrderStatus(id, status)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, so)
}

package api

import (
	"net/http"
	"strconv"

	"github.com/example/cashew-corner/internal/model"
	"github.com/sirupsen/logrus"
)

func (h *Handlers) GetInventory(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Inventory())
}

func (h *Handlers) GetLowStock(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.LowStock())
}

func (h *Handlers) GetInventorySummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Summary())
}

func (h *Handlers) GetInventoryByProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.store.InventoryByProduct(id))
}

func (h *Handlers) GetMovements(w http.ResponseWriter, r *http.Request) {
	var productID int64
	if raw := r.URL.Query().Get("productId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondJSONError(w, "Invalid productId: "+raw, http.StatusBadRequest)
			return
		}
		productID = id
	}
	respondJSON(w, http.StatusOK, h.store.Movements(productID))
}

func (h *Handlers) ReceiveStock(w http.ResponseWriter, r *http.Request) {
	var req model.ReceiveStockRequest
	if !h.decode(w, r, &req) {
		return
	}
	rec, err := h.store.Receive(req)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.log.WithFields(logrus.Fields{
		"product_id": req.ProductID,
		"location":   req.Location,
		"quantity":   req.Quantity,
	}).Info("stock received")
	respondJSON(w, http.StatusOK, rec)
}

func (h *Handlers) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req model.AdjustStockRequest
	if !h.decode(w, r, &req) {
		return
	}
	rec, err := h.store.Adjust(req)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.log.WithFields(logrus.Fields{
		"product_id": req.ProductID,
		"location":   req.Location,
		"type":       req.AdjustmentType,
		"quantity":   req.Quantity,
	}).Info("stock adjusted")
	respondJSON(w, http.StatusOK, rec)
}

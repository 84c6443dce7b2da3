package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/example/cashew-corner/internal/logging"
	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/validation"
	"github.com/sirupsen/logrus"
)

// Handlers serves the catalog, inventory and order endpoints of the sandbox
type Handlers struct {
	store    *Store
	validate *validation.Validator
	log      *logrus.Entry
}

func NewHandlers(store *Store, logger logrus.FieldLogger) *Handlers {
	return &Handlers{
		store:    store,
		validate: validation.New(),
		log:      logging.Component(logger, "API"),
	}
}

// Product Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Products())
}

func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.SearchProducts(r.URL.Query().Get("name")))
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	product, err := h.store.Product(id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.store.ProductsByCategory(id))
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if !h.decode(w, r, &req) {
		return
	}
	product, err := h.store.CreateProduct(req)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Categories())
}

// Customer Handlers

func (h *Handlers) GetCustomers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Customers())
}

func (h *Handlers) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.SearchCustomers(r.URL.Query().Get("name")))
}

func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	customer, err := h.store.Customer(id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (h *Handlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCustomerRequest
	if !h.decode(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusCreated, h.store.CreateCustomer(req))
}

// Supplier Handlers

func (h *Handlers) GetSuppliers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Suppliers())
}

func (h *Handlers) SearchSuppliers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.SearchSuppliers(r.URL.Query().Get("name")))
}

func (h *Handlers) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	supplier, err := h.store.Supplier(id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, supplier)
}

func (h *Handlers) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSupplierRequest
	if !h.decode(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusCreated, h.store.CreateSupplier(req))
}

// Helper functions

// errorResponse mirrors the backend's error envelope
type errorResponse struct {
	Timestamp string            `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, errorResponse{
		Timestamp: time.Now().Format(timestampLayout),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	})
}

// decode reads and validates a request body, answering 400 on failure
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decodeValid(w, r, h.validate, dst)
}

func decodeValid(w http.ResponseWriter, r *http.Request, v *validation.Validator, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := v.Struct(dst); err != nil {
		resp := errorResponse{
			Timestamp: time.Now().Format(timestampLayout),
			Status:    http.StatusBadRequest,
			Error:     http.StatusText(http.StatusBadRequest),
			Message:   "Validation failed",
		}
		var verr *validation.Error
		if errors.As(err, &verr) {
			resp.Details = make(map[string]string, len(verr.Fields))
			for _, f := range verr.Fields {
				resp.Details[f.Field] = f.Message
			}
		}
		respondJSON(w, http.StatusBadRequest, resp)
		return false
	}
	return true
}

func (h *Handlers) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		respondJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrBadRequest):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.WithError(err).Error("unexpected store error")
		respondJSONError(w, "An unexpected error occurred", http.StatusInternalServerError)
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		respondJSONError(w, "Invalid id: "+r.PathValue(name), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

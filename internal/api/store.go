package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/cashew-corner/internal/domain/inventory"
	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/query"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrBadRequest        = errors.New("bad request")
)

type storeError struct {
	kind error
	msg  string
}

func (e *storeError) Error() string { return e.msg }
func (e *storeError) Unwrap() error { return e.kind }

func notFound(resource string, id any) error {
	return &storeError{kind: ErrNotFound, msg: fmt.Sprintf("%s not found with id: %v", resource, id)}
}

const timestampLayout = "2006-01-02T15:04:05"

// User is a sandbox account
type User struct {
	model.AuthUser
	PasswordHash string
}

// Store keeps the sandbox state in memory. All methods are safe for
// concurrent use and return copies.
type Store struct {
	mu sync.RWMutex

	users          map[string]*User
	categories     []model.Category
	products       []model.Product
	customers      []model.Customer
	suppliers      []model.Supplier
	inventory      []model.InventoryRecord
	movements      []model.StockMovement
	orders         []model.Order
	salesOrders    []model.SalesOrder
	purchaseOrders []model.PurchaseOrder

	seq map[string]int64
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*User),
		seq:   make(map[string]int64),
		now:   time.Now,
	}
}

func (s *Store) next(kind string) int64 {
	s.seq[kind]++
	return s.seq[kind]
}

func (s *Store) stamp() string {
	return s.now().Format(timestampLayout)
}

// Users

func (s *Store) AddUser(u model.AuthUser, passwordHash string) model.AuthUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.UserID = s.next("user")
	u.CreatedAt = s.stamp()
	if u.FullName == "" {
		u.FullName = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	s.users[strings.ToLower(u.Email)] = &User{AuthUser: u, PasswordHash: passwordHash}
	return u
}

func (s *Store) UserByEmail(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// TouchLogin records a successful login
func (s *Store) TouchLogin(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[strings.ToLower(email)]; ok {
		u.LastLogin = s.stamp()
	}
}

// Catalog

func (s *Store) AddCategory(c model.Category) model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.CategoryID = s.next("category")
	c.CreatedAt = s.stamp()
	s.categories = append(s.categories, c)
	return c
}

func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Category(nil), s.categories...)
}

func (s *Store) CreateProduct(req model.CreateProductRequest, categoryIDs ...int64) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if strings.EqualFold(p.SKU, req.SKU) {
			return model.Product{}, &storeError{kind: ErrConflict, msg: fmt.Sprintf("Product with SKU %s already exists", req.SKU)}
		}
	}

	p := model.Product{
		ProductID:    s.next("product"),
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		Unit:         req.Unit,
		CostPrice:    decimal.NewFromFloat(req.CostPrice),
		SellPrice:    decimal.NewFromFloat(req.SellPrice),
		ReorderLevel: decimal.NewFromFloat(req.ReorderLevel),
		CreatedAt:    s.stamp(),
	}
	for _, cid := range categoryIDs {
		for _, c := range s.categories {
			if c.CategoryID == cid {
				p.Categories = append(p.Categories, model.CategoryRef{CategoryID: c.CategoryID, Name: c.Name})
			}
		}
	}
	s.products = append(s.products, p)
	return p, nil
}

func (s *Store) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Product(nil), s.products...)
}

func (s *Store) Product(id int64) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.product(id)
}

func (s *Store) product(id int64) (model.Product, error) {
	for _, p := range s.products {
		if p.ProductID == id {
			return p, nil
		}
	}
	return model.Product{}, notFound("Product", id)
}

func (s *Store) SearchProducts(name string) []model.Product {
	return query.FilterProducts(s.Products(), name, 0)
}

func (s *Store) ProductsByCategory(categoryID int64) []model.Product {
	return query.FilterProducts(s.Products(), "", categoryID)
}

func (s *Store) CreateCustomer(req model.CreateCustomerRequest) model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.Customer{
		CustomerID: s.next("customer"),
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		Type:       req.Type,
		CreatedAt:  s.stamp(),
	}
	s.customers = append(s.customers, c)
	return c
}

func (s *Store) Customers() []model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Customer(nil), s.customers...)
}

func (s *Store) Customer(id int64) (model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customer(id)
}

func (s *Store) customer(id int64) (model.Customer, error) {
	for _, c := range s.customers {
		if c.CustomerID == id {
			return c, nil
		}
	}
	return model.Customer{}, notFound("Customer", id)
}

func (s *Store) SearchCustomers(name string) []model.Customer {
	return query.Filter(s.Customers(), name, func(c model.Customer) []string { return []string{c.Name} })
}

func (s *Store) CreateSupplier(req model.CreateSupplierRequest) model.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp := model.Supplier{
		SupplierID:    s.next("supplier"),
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		PaymentTerms:  req.PaymentTerms,
		IsApproved:    true,
		CreatedAt:     s.stamp(),
	}
	s.suppliers = append(s.suppliers, sp)
	return sp
}

func (s *Store) Suppliers() []model.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Supplier(nil), s.suppliers...)
}

func (s *Store) Supplier(id int64) (model.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.supplier(id)
}

func (s *Store) supplier(id int64) (model.Supplier, error) {
	for _, sp := range s.suppliers {
		if sp.SupplierID == id {
			return sp, nil
		}
	}
	return model.Supplier{}, notFound("Supplier", id)
}

func (s *Store) SearchSuppliers(name string) []model.Supplier {
	return query.Filter(s.Suppliers(), name, func(sp model.Supplier) []string { return []string{sp.Name} })
}

// Inventory

func (s *Store) Inventory() []model.InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.InventoryRecord(nil), s.inventory...)
}

func (s *Store) InventoryByProduct(productID int64) []model.InventoryRecord {
	var out []model.InventoryRecord
	for _, r := range s.Inventory() {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) LowStock() []model.InventoryRecord {
	return inventory.LowStock(s.Inventory(), s.Products())
}

func (s *Store) Summary() model.InventorySummary {
	records := s.Inventory()
	products := s.Products()

	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ProductID] = p
	}
	productIDs := make(map[int64]struct{})
	locations := make(map[string]struct{})
	value := decimal.Zero
	for _, r := range records {
		productIDs[r.ProductID] = struct{}{}
		locations[r.Location] = struct{}{}
		value = value.Add(r.QuantityOnHand.Mul(byID[r.ProductID].CostPrice))
	}
	return model.InventorySummary{
		TotalProducts:       int64(len(productIDs)),
		LowStockItems:       int64(len(inventory.LowStock(records, products))),
		TotalInventoryValue: value,
		LocationsCount:      int64(len(locations)),
	}
}

func (s *Store) Movements(productID int64) []model.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.StockMovement
	for _, m := range s.movements {
		if productID == 0 || m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

// Receive adds stock at a location, opening the location when it has no record yet
func (s *Store) Receive(req model.ReceiveStockRequest) (model.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.product(req.ProductID)
	if err != nil {
		return model.InventoryRecord{}, err
	}
	qty := decimal.NewFromFloat(req.Quantity)

	i := s.recordIndex(req.ProductID, req.Location)
	if i < 0 {
		s.inventory = append(s.inventory, model.InventoryRecord{
			InventoryID:    s.next("inventory"),
			ProductID:      p.ProductID,
			ProductName:    p.Name,
			ProductSKU:     p.SKU,
			Location:       req.Location,
			QuantityOnHand: decimal.Zero,
			Unit:           p.Unit,
		})
		i = len(s.inventory) - 1
	}
	rec := &s.inventory[i]
	rec.QuantityOnHand = rec.QuantityOnHand.Add(qty)
	rec.AvailableQuantity = rec.QuantityOnHand.Sub(rec.ReservedQuantity)
	rec.LastUpdated = s.stamp()

	m := model.StockMovement{
		MovementType: "RECEIPT",
		Quantity:     qty,
		Notes:        req.Notes,
	}
	if req.PurchaseOrderID != nil {
		m.RelatedType = "PURCHASE_ORDER"
		m.RelatedID = *req.PurchaseOrderID
	}
	s.recordMovement(*rec, m)
	return *rec, nil
}

// Adjust applies a signed correction. SUBTRACT below zero is rejected.
func (s *Store) Adjust(req model.AdjustStockRequest) (model.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.recordIndex(req.ProductID, req.Location)
	if i < 0 {
		return model.InventoryRecord{}, &storeError{
			kind: ErrNotFound,
			msg:  fmt.Sprintf("Inventory not found for product %d at location %s", req.ProductID, req.Location),
		}
	}
	rec := &s.inventory[i]
	qty := decimal.NewFromFloat(req.Quantity)

	var next decimal.Decimal
	switch req.AdjustmentType {
	case model.AdjustAdd:
		next = rec.QuantityOnHand.Add(qty)
	case model.AdjustSubtract:
		next = rec.QuantityOnHand.Sub(qty)
		if next.IsNegative() {
			return model.InventoryRecord{}, &storeError{
				kind: ErrInsufficientStock,
				msg:  "Insufficient stock. Available: " + rec.QuantityOnHand.String(),
			}
		}
		qty = qty.Neg()
	default:
		return model.InventoryRecord{}, &storeError{kind: ErrBadRequest, msg: "Invalid adjustment type. Use ADD or SUBTRACT"}
	}

	rec.QuantityOnHand = next
	rec.AvailableQuantity = next.Sub(rec.ReservedQuantity)
	rec.LastUpdated = s.stamp()
	s.recordMovement(*rec, model.StockMovement{MovementType: "ADJUSTMENT", Quantity: qty, Notes: req.Notes})
	return *rec, nil
}

func (s *Store) recordIndex(productID int64, location string) int {
	for i, r := range s.inventory {
		if r.ProductID == productID && r.Location == location {
			return i
		}
	}
	return -1
}

func (s *Store) recordMovement(rec model.InventoryRecord, m model.StockMovement) {
	m.MovementID = s.next("movement")
	m.ProductID = rec.ProductID
	m.ProductName = rec.ProductName
	m.BalanceAfter = rec.QuantityOnHand
	m.MovementDate = s.stamp()
	s.movements = append(s.movements, m)
}

// Orders

func lineTotal(item model.LineItemRequest) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	qty := decimal.NewFromFloat(item.Quantity)
	price := decimal.NewFromFloat(item.UnitPrice)
	return qty, price, qty.Mul(price)
}

func (s *Store) CreateOrder(req model.CreateOrderRequest) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.customer(req.CustomerID)
	if err != nil {
		return model.Order{}, err
	}
	status := req.Status
	if status == "" {
		status = "Pending"
	}
	o := model.Order{
		OrderID:      s.next("order"),
		CustomerID:   c.CustomerID,
		CustomerName: c.Name,
		OrderDate:    req.OrderDate,
		Status:       status,
		TotalAmount:  decimal.Zero,
		CreatedAt:    s.stamp(),
	}
	for _, item := range req.Items {
		p, err := s.product(item.ProductID)
		if err != nil {
			return model.Order{}, err
		}
		qty, price, total := lineTotal(item)
		o.Items = append(o.Items, model.OrderItem{
			OrderItemID: s.next("orderItem"),
			ProductID:   p.ProductID,
			ProductName: p.Name,
			Quantity:    qty,
			UnitPrice:   price,
			Subtotal:    total,
		})
		o.TotalAmount = o.TotalAmount.Add(total)
	}
	s.orders = append(s.orders, o)
	return o, nil
}

func (s *Store) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Order(nil), s.orders...)
}

func (s *Store) Order(id int64) (model.Order, error) {
	for _, o := range s.Orders() {
		if o.OrderID == id {
			return o, nil
		}
	}
	return model.Order{}, notFound("Order", id)
}

// CreateSalesOrder numbers orders SO<year><seq>, e.g. SO20250001
func (s *Store) CreateSalesOrder(req model.CreateSalesOrderRequest) (model.SalesOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.customer(req.CustomerID)
	if err != nil {
		return model.SalesOrder{}, err
	}
	now := s.stamp()
	so := model.SalesOrder{
		SalesOrderID: s.next("salesOrder"),
		CustomerID:   c.CustomerID,
		CustomerName: c.Name,
		OrderDate:    req.OrderDate,
		DeliveryDate: req.DeliveryDate,
		Status:       "PENDING",
		TotalAmount:  decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	so.SONumber = fmt.Sprintf("SO%d%04d", s.now().Year(), so.SalesOrderID)
	for _, item := range req.Items {
		p, err := s.product(item.ProductID)
		if err != nil {
			return model.SalesOrder{}, err
		}
		qty, price, total := lineTotal(item)
		so.Items = append(so.Items, model.SalesOrderItem{
			SalesOrderItemID: s.next("salesOrderItem"),
			ProductID:        p.ProductID,
			ProductName:      p.Name,
			ProductSKU:       p.SKU,
			Quantity:         qty,
			UnitPrice:        price,
			LineTotal:        total,
		})
		so.TotalAmount = so.TotalAmount.Add(total)
	}
	s.salesOrders = append(s.salesOrders, so)
	return so, nil
}

func (s *Store) SalesOrders() []model.SalesOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.SalesOrder(nil), s.salesOrders...)
}

func (s *Store) SalesOrder(id int64) (model.SalesOrder, error) {
	for _, so := range s.SalesOrders() {
		if so.SalesOrderID == id {
			return so, nil
		}
	}
	return model.SalesOrder{}, notFound("Sales order", id)
}

func (s *Store) SearchSalesOrders(orderNo string) []model.SalesOrder {
	return query.Filter(s.SalesOrders(), orderNo, func(so model.SalesOrder) []string { return []string{so.SONumber} })
}

// SetSalesOrderStatus moves a sales order along its lifecycle
func (s *Store) SetSalesOrderStatus(id int64, status string) (model.SalesOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.salesOrders {
		if s.salesOrders[i].SalesOrderID == id {
			s.salesOrders[i].Status = strings.ToUpper(status)
			s.salesOrders[i].UpdatedAt = s.stamp()
			return s.salesOrders[i], nil
		}
	}
	return model.SalesOrder{}, notFound("Sales order", id)
}

// CreatePurchaseOrder numbers orders PO<year><seq>, e.g. PO20250001
func (s *Store) CreatePurchaseOrder(req model.CreatePurchaseOrderRequest) (model.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, err := s.supplier(req.SupplierID)
	if err != nil {
		return model.PurchaseOrder{}, err
	}
	now := s.stamp()
	po := model.PurchaseOrder{
		PurchaseOrderID: s.next("purchaseOrder"),
		SupplierID:      sp.SupplierID,
		SupplierName:    sp.Name,
		OrderDate:       req.OrderDate,
		ExpectedDate:    req.ExpectedDate,
		Status:          "PENDING",
		TotalAmount:     decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	po.PONumber = fmt.Sprintf("PO%d%04d", s.now().Year(), po.PurchaseOrderID)
	for _, item := range req.Items {
		p, err := s.product(item.ProductID)
		if err != nil {
			return model.PurchaseOrder{}, err
		}
		qty, price, total := lineTotal(item)
		po.Items = append(po.Items, model.PurchaseOrderItem{
			PurchaseOrderItemID: s.next("purchaseOrderItem"),
			ProductID:           p.ProductID,
			ProductName:         p.Name,
			ProductSKU:          p.SKU,
			Quantity:            qty,
			UnitPrice:           price,
			LineTotal:           total,
			ReceivedQuantity:    decimal.Zero,
		})
		po.TotalAmount = po.TotalAmount.Add(total)
	}
	s.purchaseOrders = append(s.purchaseOrders, po)
	return po, nil
}

func (s *Store) PurchaseOrders() []model.PurchaseOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.PurchaseOrder(nil), s.purchaseOrders...)
}

func (s *Store) PurchaseOrder(id int64) (model.PurchaseOrder, error) {
	for _, po := range s.PurchaseOrders() {
		if po.PurchaseOrderID == id {
			return po, nil
		}
	}
	return model.PurchaseOrder{}, notFound("Purchase order", id)
}

func (s *Store) SearchPurchaseOrders(orderNo string) []model.PurchaseOrder {
	return query.Filter(s.PurchaseOrders(), orderNo, func(po model.PurchaseOrder) []string { return []string{po.PONumber} })
}

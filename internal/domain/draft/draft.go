package draft

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/validation"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindSales    Kind = "SALES"
	KindPurchase Kind = "PURCHASE"
	KindOrder    Kind = "ORDER"
)

const (
	// DateLayout is the calendar-date format the backend accepts for order dates
	DateLayout = "2006-01-02"

	// DefaultLeadTime is the gap between order date and delivery/expected date on a fresh draft
	DefaultLeadTime = 7 * 24 * time.Hour

	// DefaultOrderStatus is the status a new generic order is created with
	DefaultOrderStatus = "Pending"
)

var (
	ErrEmptyDraft      = errors.New("order must have at least one item")
	ErrInvalidProduct  = errors.New("product_id is required")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("unit price must not be negative")
	ErrWrongKind       = errors.New("draft kind does not match request")
)

var validate = validation.New()

// LineItem is one product entry of a draft
type LineItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal is quantity * unit price at full precision
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Draft is an order under construction. It is owned by a single caller and
// is not safe for concurrent use.
type Draft struct {
	Kind Kind `json:"kind"`
	// PartyID is the customer for sales and generic orders, the supplier for purchases
	PartyID       int64  `json:"party_id"`
	OrderDate     string `json:"order_date"`
	SecondaryDate string `json:"secondary_date"`
	Status        string `json:"status,omitempty"`

	items []LineItem
}

// New opens an empty draft dated today, with the secondary date one lead time later
func New(kind Kind, today time.Time) *Draft {
	d := &Draft{
		Kind:      kind,
		OrderDate: today.Format(DateLayout),
	}
	switch kind {
	case KindSales, KindPurchase:
		d.SecondaryDate = today.Add(DefaultLeadTime).Format(DateLayout)
	case KindOrder:
		d.Status = DefaultOrderStatus
	}
	return d
}

// AddItem merges by product: a repeated product accumulates quantity and keeps
// its original unit price, a new product is appended.
func (d *Draft) AddItem(productID int64, quantity, unitPrice decimal.Decimal) error {
	if productID <= 0 {
		return ErrInvalidProduct
	}
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return ErrInvalidPrice
	}

	for i := range d.items {
		if d.items[i].ProductID == productID {
			d.items[i].Quantity = d.items[i].Quantity.Add(quantity)
			return nil
		}
	}

	d.items = append(d.items, LineItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	return nil
}

// AddProduct adds a catalog product priced at its sell price
func (d *Draft) AddProduct(p model.Product, quantity decimal.Decimal) error {
	return d.AddItem(p.ProductID, quantity, p.SellPrice)
}

// RemoveItem drops the item at index. Out-of-range indexes are ignored.
func (d *Draft) RemoveItem(index int) {
	if index < 0 || index >= len(d.items) {
		return
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
}

// Items returns a copy of the items in insertion order
func (d *Draft) Items() []LineItem {
	out := make([]LineItem, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Draft) Len() int {
	return len(d.items)
}

// Clear discards all items, keeping the header
func (d *Draft) Clear() {
	d.items = nil
}

// TotalAmount sums quantity * unit price without intermediate rounding
func (d *Draft) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// FormatAmount renders an amount for display, rounded to cents
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// ParseItemInput converts raw form or command-line values into a line item.
// An empty unit price parses as zero.
func ParseItemInput(productID, quantity, unitPrice string) (LineItem, error) {
	var c validation.Collector
	var item LineItem

	id, err := strconv.ParseInt(strings.TrimSpace(productID), 10, 64)
	if err != nil || id <= 0 {
		c.Add("productId", "number", "must be a product id")
	}
	item.ProductID = id

	q, err := decimal.NewFromString(strings.TrimSpace(quantity))
	switch {
	case err != nil:
		c.Add("quantity", "number", "must be a number")
	case !q.IsPositive():
		c.Add("quantity", "gt", "must be greater than 0")
	}
	item.Quantity = q

	item.UnitPrice = decimal.Zero
	if p := strings.TrimSpace(unitPrice); p != "" {
		price, err := decimal.NewFromString(p)
		switch {
		case err != nil:
			c.Add("unitPrice", "number", "must be a number")
		case price.IsNegative():
			c.Add("unitPrice", "gte", "must be at least 0")
		}
		item.UnitPrice = price
	}

	if err := c.Err(); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

func (d *Draft) lineItemRequests() []model.LineItemRequest {
	out := make([]model.LineItemRequest, 0, len(d.items))
	for _, item := range d.items {
		out = append(out, model.LineItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity.InexactFloat64(),
			UnitPrice: item.UnitPrice.InexactFloat64(),
		})
	}
	return out
}

func (d *Draft) checkKind(want Kind) error {
	if d.Kind != want {
		return fmt.Errorf("%w: have %s, want %s", ErrWrongKind, d.Kind, want)
	}
	if len(d.items) == 0 {
		return ErrEmptyDraft
	}
	return nil
}

// ToSalesOrderRequest snapshots a sales draft into its wire shape
func (d *Draft) ToSalesOrderRequest() (model.CreateSalesOrderRequest, error) {
	if err := d.checkKind(KindSales); err != nil {
		return model.CreateSalesOrderRequest{}, err
	}
	req := model.CreateSalesOrderRequest{
		CustomerID:   d.PartyID,
		OrderDate:    d.OrderDate,
		DeliveryDate: d.SecondaryDate,
		Items:        d.lineItemRequests(),
	}
	if err := validate.Struct(req); err != nil {
		return model.CreateSalesOrderRequest{}, err
	}
	return req, nil
}

// ToPurchaseOrderRequest snapshots a purchase draft into its wire shape
func (d *Draft) ToPurchaseOrderRequest() (model.CreatePurchaseOrderRequest, error) {
	if err := d.checkKind(KindPurchase); err != nil {
		return model.CreatePurchaseOrderRequest{}, err
	}
	req := model.CreatePurchaseOrderRequest{
		SupplierID:   d.PartyID,
		OrderDate:    d.OrderDate,
		ExpectedDate: d.SecondaryDate,
		Items:        d.lineItemRequests(),
	}
	if err := validate.Struct(req); err != nil {
		return model.CreatePurchaseOrderRequest{}, err
	}
	return req, nil
}

// ToOrderRequest snapshots a generic order draft. TotalAmount is advisory;
// the backend recomputes it.
func (d *Draft) ToOrderRequest() (model.CreateOrderRequest, error) {
	if err := d.checkKind(KindOrder); err != nil {
		return model.CreateOrderRequest{}, err
	}
	status := d.Status
	if status == "" {
		status = DefaultOrderStatus
	}
	req := model.CreateOrderRequest{
		CustomerID:  d.PartyID,
		OrderDate:   d.OrderDate,
		Status:      status,
		TotalAmount: d.TotalAmount().InexactFloat64(),
		Items:       d.lineItemRequests(),
	}
	if err := validate.Struct(req); err != nil {
		return model.CreateOrderRequest{}, err
	}
	return req, nil
}

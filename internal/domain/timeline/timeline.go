// Package timeline derives the customer-facing progress steps of an order
// from its status.
package timeline

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/example/cashew-corner/internal/model"
)

const (
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusProcessing = "PROCESSING"
	StatusShipped    = "SHIPPED"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

// Ordered lists the progression statuses; the index of a status is its step
var Ordered = []string{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered}

// DisplayLayout is the date format shown on timeline steps, e.g. "Mar 9, 2025"
const DisplayLayout = "Jan 2, 2006"

const placeholderPending = "Pending"

// backend dates arrive as plain dates or zone-less timestamps
var inputLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
}

// Step is one entry of an order timeline
type Step struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Location  string `json:"location,omitempty"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

// Input carries the order fields the timeline depends on
type Input struct {
	Status       string
	OrderDate    string
	ConfirmedAt  string
	DeliveryDate string
	UpdatedAt    string
}

// FromSalesOrder maps a sales order onto timeline input. The backend does not
// record a confirmation time, so the creation time stands in for it.
func FromSalesOrder(so model.SalesOrder) Input {
	return Input{
		Status:       so.Status,
		OrderDate:    so.OrderDate,
		ConfirmedAt:  so.CreatedAt,
		DeliveryDate: so.DeliveryDate,
		UpdatedAt:    so.UpdatedAt,
	}
}

// Index returns the position of status in Ordered, matched case-insensitively, or -1
func Index(status string) int {
	upper := strings.ToUpper(status)
	for i, s := range Ordered {
		if s == upper {
			return i
		}
	}
	return -1
}

// CurrentStep is the step highlighted for status: unknown statuses map to 0
// and a cancelled order to -1.
func CurrentStep(status string) int {
	if strings.EqualFold(status, StatusCancelled) {
		return -1
	}
	if i := Index(status); i >= 0 {
		return i
	}
	return 0
}

// FormatStatus capitalizes the first letter and lowercases the rest
func FormatStatus(status string) string {
	if status == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(status)
	return string(unicode.ToUpper(r)) + strings.ToLower(status[size:])
}

// Derive builds the timeline. A cancelled order has exactly two steps, any
// other status the five progression steps.
func Derive(in Input) []Step {
	if strings.EqualFold(in.Status, StatusCancelled) {
		cancelledAt := in.UpdatedAt
		if cancelledAt == "" {
			cancelledAt = in.ConfirmedAt
		}
		return []Step{
			{Title: "Order Placed", Date: FormatDate(in.OrderDate), Location: "Online Store", Completed: true},
			{Title: "Order Cancelled", Date: FormatDate(cancelledAt), Location: "Cashew Corner", Active: true},
		}
	}

	current := Index(in.Status)
	reached := func(i int) bool { return current >= i }
	datedOr := func(i int, reachedText string) string {
		if reached(i) {
			return reachedText
		}
		return placeholderPending
	}

	delivered := placeholderPending
	switch {
	case reached(4):
		delivered = FormatDate(in.DeliveryDate)
	case in.DeliveryDate != "":
		delivered = "Expected: " + FormatDate(in.DeliveryDate)
	}

	steps := []Step{
		{Title: "Order Placed", Date: FormatDate(in.OrderDate), Location: "Online Store"},
		{Title: "Order Confirmed", Date: datedOr(1, FormatDate(in.ConfirmedAt)), Location: "Cashew Corner"},
		{Title: "Processing", Date: datedOr(2, "In Progress"), Location: "Warehouse"},
		{Title: "Shipped", Date: datedOr(3, "On the way"), Location: "Distribution Center"},
		{Title: "Delivered", Date: delivered, Location: "Your Address"},
	}
	for i := range steps {
		steps[i].Completed = reached(i)
		steps[i].Active = current == i
	}
	return steps
}

// FormatDate renders a backend date as DisplayLayout. Empty input gives an
// empty string; unparseable input is returned unchanged.
func FormatDate(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DisplayLayout)
		}
	}
	return raw
}

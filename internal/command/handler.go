package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/example/cashew-corner/internal/client"
	"github.com/example/cashew-corner/internal/domain/draft"
	"github.com/example/cashew-corner/internal/domain/inventory"
	"github.com/example/cashew-corner/internal/events"
	"github.com/example/cashew-corner/internal/logging"
	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/validation"
	"github.com/sirupsen/logrus"
)

var ErrNoDraft = errors.New("no draft to submit")

type SalesOrderAPI interface {
	Create(ctx context.Context, req model.CreateSalesOrderRequest) (model.SalesOrder, error)
}

type PurchaseOrderAPI interface {
	Create(ctx context.Context, req model.CreatePurchaseOrderRequest) (model.PurchaseOrder, error)
}

type OrderAPI interface {
	Create(ctx context.Context, req model.CreateOrderRequest) (model.Order, error)
}

type InventoryAPI interface {
	Receive(ctx context.Context, req model.ReceiveStockRequest) (model.InventoryRecord, error)
	Adjust(ctx context.Context, req model.AdjustStockRequest) (model.InventoryRecord, error)
}

type ReportAPI interface {
	Generate(ctx context.Context, req model.GenerateReportRequest) (model.Report, error)
}

// APIs groups the backend surfaces the handler writes to
type APIs struct {
	SalesOrders    SalesOrderAPI
	PurchaseOrders PurchaseOrderAPI
	Orders         OrderAPI
	Inventory      InventoryAPI
	Reports        ReportAPI
}

func APIsFromClient(c *client.Client) APIs {
	return APIs{
		SalesOrders:    c.SalesOrders(),
		PurchaseOrders: c.PurchaseOrders(),
		Orders:         c.Orders(),
		Inventory:      c.Inventory(),
		Reports:        c.Reports(),
	}
}

// Handler validates mutations locally, sends each as exactly one request and
// announces the result. A failed local check sends nothing.
type Handler struct {
	apis      APIs
	publisher events.Publisher
	validate  *validation.Validator
	log       *logrus.Entry
}

func NewHandler(apis APIs, publisher events.Publisher, logger logrus.FieldLogger) *Handler {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		apis:      apis,
		publisher: publisher,
		validate:  validation.New(),
		log:       logging.Component(logger, "CommandHandler"),
	}
}

func (h *Handler) SubmitSalesOrder(ctx context.Context, cmd SubmitSalesOrder) (*model.SalesOrder, error) {
	if cmd.Draft == nil {
		return nil, ErrNoDraft
	}
	req, err := cmd.Draft.ToSalesOrderRequest()
	if err != nil {
		return nil, err
	}

	so, err := h.apis.SalesOrders.Create(ctx, req)
	if err != nil {
		logging.LogError(h.log, "command", "SubmitSalesOrder", "create sales order", req, err)
		return nil, err
	}

	h.publish(ctx, events.SalesOrderSubmitted, events.AggregateSalesOrder, id(so.SalesOrderID), so)
	return &so, nil
}

func (h *Handler) SubmitPurchaseOrder(ctx context.Context, cmd SubmitPurchaseOrder) (*model.PurchaseOrder, error) {
	if cmd.Draft == nil {
		return nil, ErrNoDraft
	}
	req, err := cmd.Draft.ToPurchaseOrderRequest()
	if err != nil {
		return nil, err
	}

	po, err := h.apis.PurchaseOrders.Create(ctx, req)
	if err != nil {
		logging.LogError(h.log, "command", "SubmitPurchaseOrder", "create purchase order", req, err)
		return nil, err
	}

	h.publish(ctx, events.PurchaseOrderSubmitted, events.AggregatePurchaseOrder, id(po.PurchaseOrderID), po)
	return &po, nil
}

func (h *Handler) SubmitOrder(ctx context.Context, cmd SubmitOrder) (*model.Order, error) {
	if cmd.Draft == nil {
		return nil, ErrNoDraft
	}
	req, err := cmd.Draft.ToOrderRequest()
	if err != nil {
		return nil, err
	}

	o, err := h.apis.Orders.Create(ctx, req)
	if err != nil {
		logging.LogError(h.log, "command", "SubmitOrder", "create order", req, err)
		return nil, err
	}

	h.publish(ctx, events.OrderSubmitted, events.AggregateOrder, id(o.OrderID), o)
	return &o, nil
}

func (h *Handler) ReceiveStock(ctx context.Context, cmd ReceiveStock) (*model.InventoryRecord, error) {
	req, err := inventory.ReceiveRequest(cmd.ProductID, cmd.Quantity, cmd.Location, cmd.PurchaseOrderID, cmd.Notes)
	if err != nil {
		return nil, err
	}

	rec, err := h.apis.Inventory.Receive(ctx, req)
	if err != nil {
		logging.LogError(h.log, "command", "ReceiveStock", "receive stock", req, err)
		return nil, err
	}

	h.publish(ctx, events.StockReceived, events.AggregateInventory, stockKey(req.ProductID, req.Location), rec)
	return &rec, nil
}

func (h *Handler) AdjustStock(ctx context.Context, cmd AdjustStock) (*model.InventoryRecord, error) {
	if cmd.Adjustment == nil {
		return nil, inventory.ErrNoProduct
	}
	req, err := cmd.Adjustment.Request()
	if err != nil {
		return nil, err
	}

	rec, err := h.apis.Inventory.Adjust(ctx, req)
	if err != nil {
		logging.LogError(h.log, "command", "AdjustStock", "adjust stock", req, err)
		return nil, err
	}

	h.publish(ctx, events.StockAdjusted, events.AggregateInventory, stockKey(req.ProductID, req.Location), rec)
	return &rec, nil
}

func (h *Handler) GenerateReport(ctx context.Context, cmd GenerateReport) (*model.Report, error) {
	req := model.GenerateReportRequest{ReportType: cmd.ReportType, Parameters: cmd.Parameters}
	if err := h.validate.Struct(req); err != nil {
		return nil, err
	}

	rep, err := h.apis.Reports.Generate(ctx, req)
	if err != nil {
		logging.LogError(h.log, "command", "GenerateReport", "generate report", req, err)
		return nil, err
	}

	h.publish(ctx, events.ReportGenerated, events.AggregateReport, id(rep.ReportID), map[string]any{
		"reportId":   rep.ReportID,
		"reportType": rep.ReportType,
	})
	return &rep, nil
}

// publish never fails the command: the backend has already applied the change
func (h *Handler) publish(ctx context.Context, typ events.Type, aggregateType, aggregateID string, data any) {
	event, err := events.New(typ, aggregateType, aggregateID, data)
	if err != nil {
		h.log.WithError(err).WithField("event_type", typ).Warn("encode event")
		return
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.log.WithError(err).WithField("event_type", typ).Warn("publish event")
	}
}

// UserMessage is the text to show for a failed command
func UserMessage(err error, fallback string) string {
	var verr *validation.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, draft.ErrEmptyDraft):
		return "Please add at least one item."
	case errors.As(err, &verr):
		return verr.Error()
	default:
		return client.Message(err, fallback)
	}
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func stockKey(productID int64, location string) string {
	return fmt.Sprintf("%d@%s", productID, location)
}

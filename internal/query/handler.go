package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/cashew-corner/internal/client"
	"github.com/example/cashew-corner/internal/logging"
	"github.com/example/cashew-corner/internal/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyQuery = errors.New("order number is required")

// NotFoundError means no sales order matched a tracking query
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No order found with number %q. Please check and try again.", e.Query)
}

type CustomerLister interface {
	List(ctx context.Context) ([]model.Customer, error)
}

type SupplierLister interface {
	List(ctx context.Context) ([]model.Supplier, error)
}

type ProductLister interface {
	List(ctx context.Context) ([]model.Product, error)
}

type InventoryLister interface {
	List(ctx context.Context) ([]model.InventoryRecord, error)
}

type SalesOrderFinder interface {
	Get(ctx context.Context, id int64) (model.SalesOrder, error)
	Search(ctx context.Context, orderNo string) ([]model.SalesOrder, error)
}

// Sources groups the backend surfaces the handler reads from
type Sources struct {
	Customers   CustomerLister
	Suppliers   SupplierLister
	Products    ProductLister
	Inventory   InventoryLister
	SalesOrders SalesOrderFinder
}

func SourcesFromClient(c *client.Client) Sources {
	return Sources{
		Customers:   c.Customers(),
		Suppliers:   c.Suppliers(),
		Products:    c.Products(),
		Inventory:   c.Inventory(),
		SalesOrders: c.SalesOrders(),
	}
}

type Handler struct {
	src Sources
	log *logrus.Entry
}

func NewHandler(src Sources, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{src: src, log: logging.Component(logger, "Query")}
}

// LoadCatalog fetches the four reference lists concurrently. The first
// failure cancels the remaining requests and is returned.
func (h *Handler) LoadCatalog(ctx context.Context) (*Catalog, error) {
	var cat Catalog
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := h.src.Customers.List(ctx)
		if err != nil {
			return fmt.Errorf("load customers: %w", err)
		}
		cat.Customers = out
		return nil
	})
	g.Go(func() error {
		out, err := h.src.Suppliers.List(ctx)
		if err != nil {
			return fmt.Errorf("load suppliers: %w", err)
		}
		cat.Suppliers = out
		return nil
	})
	g.Go(func() error {
		out, err := h.src.Products.List(ctx)
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		cat.Products = out
		return nil
	})
	g.Go(func() error {
		out, err := h.src.Inventory.List(ctx)
		if err != nil {
			return fmt.Errorf("load inventory: %w", err)
		}
		cat.Inventory = out
		return nil
	})

	if err := g.Wait(); err != nil {
		logging.LogError(h.log, "query", "LoadCatalog", "load catalog", nil, err)
		return nil, err
	}
	return &cat, nil
}

// TrackOrder resolves query to a sales order. A positive integer is tried as
// an id first and falls back to an order-number search on any error; anything
// else is searched directly. The first search result wins.
func (h *Handler) TrackOrder(ctx context.Context, query string) (*Tracking, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if id, err := strconv.ParseInt(query, 10, 64); err == nil && id > 0 {
		so, err := h.src.SalesOrders.Get(ctx, id)
		if err == nil {
			return newTracking(so), nil
		}
		h.log.WithError(err).WithField("order_id", id).Debug("lookup by id failed, searching by number")
	}

	found, err := h.src.SalesOrders.Search(ctx, query)
	if err != nil {
		logging.LogError(h.log, "query", "TrackOrder", "search sales orders", query, err)
		return nil, err
	}
	if len(found) == 0 {
		return nil, &NotFoundError{Query: query}
	}
	return newTracking(found[0]), nil
}

// TrackMessage is the text to show for a failed TrackOrder
func TrackMessage(err error) string {
	var nf *NotFoundError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyQuery):
		return "Order number is required."
	case errors.As(err, &nf):
		return nf.Error()
	default:
		return client.Message(err, "Failed to find order. Please try again.")
	}
}

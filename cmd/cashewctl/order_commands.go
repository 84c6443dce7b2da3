package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/cashew-corner/internal/command"
	"github.com/example/cashew-corner/internal/domain/draft"
	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/query"
	"github.com/urfave/cli/v2"
)

func itemFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:     "item",
		Usage:    "line item as productId:quantity, or productId:quantity:unitPrice on purchase orders; repeat for more items",
		Required: true,
	}
}

var errPriceNotAllowed = errors.New("unit price comes from the product's sell price; only purchase orders take a price")

// buildDraft fills a draft from --item values against the current product catalog
func buildDraft(c *cli.Context, e *env, kind draft.Kind, partyID int64) (*draft.Draft, error) {
	products, err := e.client.Products().List(c.Context)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return draftFromItems(kind, partyID, c.StringSlice("item"), products, today())
}

// draftFromItems parses productId:quantity[:unitPrice] specs. Sales and generic
// order items are priced at the product's sell price; purchase items take the
// given price or fall back to the cost price. Unknown products are rejected.
func draftFromItems(kind draft.Kind, partyID int64, specs []string, products []model.Product, now time.Time) (*draft.Draft, error) {
	d := draft.New(kind, now)
	d.PartyID = partyID
	cat := query.Catalog{Products: products}

	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("item %q: want productId:quantity[:unitPrice]", spec)
		}
		price := ""
		if len(parts) == 3 {
			price = parts[2]
		}
		if strings.TrimSpace(price) != "" && kind != draft.KindPurchase {
			return nil, fmt.Errorf("item %q: %w", spec, errPriceNotAllowed)
		}
		item, err := draft.ParseItemInput(parts[0], parts[1], price)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", spec, err)
		}

		p, ok := cat.Product(item.ProductID)
		if !ok {
			return nil, fmt.Errorf("item %q: unknown product %d", spec, item.ProductID)
		}
		if kind == draft.KindPurchase {
			if strings.TrimSpace(price) == "" {
				item.UnitPrice = p.CostPrice
			}
			err = d.AddItem(item.ProductID, item.Quantity, item.UnitPrice)
		} else {
			err = d.AddProduct(p, item.Quantity)
		}
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", spec, err)
		}
	}
	return d, nil
}

func draftFlags(party string) []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{Name: party, Required: true},
		itemFlag(),
		&cli.StringFlag{Name: "date", Usage: "order date, YYYY-MM-DD (default today)"},
		&cli.StringFlag{Name: "due", Usage: "delivery or expected date, YYYY-MM-DD (default today + 7 days)"},
	}
}

func applyDates(c *cli.Context, d *draft.Draft) {
	if v := c.String("date"); v != "" {
		d.OrderDate = v
	}
	if v := c.String("due"); v != "" {
		d.SecondaryDate = v
	}
}

func salesOrdersCommand() *cli.Command {
	return &cli.Command{
		Name:  "sales-orders",
		Usage: "create and list sales orders",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "submit a sales order",
				Flags: draftFlags("customer"),
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					d, err := buildDraft(c, e, draft.KindSales, c.Int64("customer"))
					if err != nil {
						return cli.Exit(command.UserMessage(err, "Invalid item"), 1)
					}
					applyDates(c, d)
					so, err := e.commands.SubmitSalesOrder(c.Context, command.SubmitSalesOrder{Draft: d})
					if err != nil {
						return cli.Exit(command.UserMessage(err, "Failed to create sales order"), 1)
					}
					return newPrinter(e).line(so, "Created sales order %s, total %s", so.SONumber, draft.FormatAmount(so.TotalAmount))
				},
			},
			{
				Name:  "list",
				Usage: "list sales orders",
				Flags: []cli.Flag{&cli.StringFlag{Name: "filter", Usage: "match order number, customer or status"}},
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					orders, err := e.client.SalesOrders().List(c.Context)
					if err != nil {
						return failed(err, "Failed to load sales orders")
					}
					orders = query.FilterSalesOrders(orders, c.String("filter"))
					rows := make([][]string, 0, len(orders))
					for _, o := range orders {
						rows = append(rows, []string{o.SONumber, o.CustomerName, o.OrderDate, o.DeliveryDate, o.Status, draft.FormatAmount(o.TotalAmount)})
					}
					return newPrinter(e).table(orders, []string{"NUMBER", "CUSTOMER", "ORDERED", "DELIVERY", "STATUS", "TOTAL"}, rows)
				},
			},
		},
	}
}

func purchaseOrdersCommand() *cli.Command {
	return &cli.Command{
		Name:  "purchase-orders",
		Usage: "create and list purchase orders",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "submit a purchase order",
				Flags: draftFlags("supplier"),
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					d, err := buildDraft(c, e, draft.KindPurchase, c.Int64("supplier"))
					if err != nil {
						return cli.Exit(command.UserMessage(err, "Invalid item"), 1)
					}
					applyDates(c, d)
					po, err := e.commands.SubmitPurchaseOrder(c.Context, command.SubmitPurchaseOrder{Draft: d})
					if err != nil {
						return cli.Exit(command.UserMessage(err, "Failed to create purchase order"), 1)
					}
					return newPrinter(e).line(po, "Created purchase order %s, total %s", po.PONumber, draft.FormatAmount(po.TotalAmount))
				},
			},
			{
				Name:  "list",
				Usage: "list purchase orders",
				Flags: []cli.Flag{&cli.StringFlag{Name: "filter", Usage: "match order number, supplier or status"}},
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					orders, err := e.client.PurchaseOrders().List(c.Context)
					if err != nil {
						return failed(err, "Failed to load purchase orders")
					}
					orders = query.FilterPurchaseOrders(orders, c.String("filter"))
					rows := make([][]string, 0, len(orders))
					for _, o := range orders {
						rows = append(rows, []string{o.PONumber, o.SupplierName, o.OrderDate, o.ExpectedDate, o.Status, draft.FormatAmount(o.TotalAmount)})
					}
					return newPrinter(e).table(orders, []string{"NUMBER", "SUPPLIER", "ORDERED", "EXPECTED", "STATUS", "TOTAL"}, rows)
				},
			},
		},
	}
}

func ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "create generic orders",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "submit an order",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "customer", Required: true},
					itemFlag(),
					&cli.StringFlag{Name: "date", Usage: "order date, YYYY-MM-DD (default today)"},
					&cli.StringFlag{Name: "status", Value: draft.DefaultOrderStatus},
				},
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					d, err := buildDraft(c, e, draft.KindOrder, c.Int64("customer"))
					if err != nil {
						return cli.Exit(command.UserMessage(err, "Invalid item"), 1)
					}
					applyDates(c, d)
					d.Status = c.String("status")
					o, err := e.commands.SubmitOrder(c.Context, command.SubmitOrder{Draft: d})
					if err != nil {
						return cli.Exit(command.UserMessage(err, "Failed to create order"), 1)
					}
					return newPrinter(e).line(o, "Created order %d, total %s", o.OrderID, draft.FormatAmount(o.TotalAmount))
				},
			},
		},
	}
}

func trackCommand() *cli.Command {
	return &cli.Command{
		Name:      "track",
		Usage:     "show the progress of a sales order by id or number",
		ArgsUsage: "<order-id-or-number>",
		Action: func(c *cli.Context) error {
			e, err := authed(c)
			if err != nil {
				return err
			}
			tr, err := e.queries.TrackOrder(c.Context, c.Args().First())
			if err != nil {
				return cli.Exit(query.TrackMessage(err), 1)
			}
			p := newPrinter(e)
			if e.json {
				return p.raw(tr)
			}
			_ = p.line(nil, "%s for %s: %s", tr.Order.SONumber, tr.Order.CustomerName, tr.Status)
			rows := make([][]string, 0, len(tr.Steps))
			for _, s := range tr.Steps {
				mark := " "
				switch {
				case s.Active:
					mark = ">"
				case s.Completed:
					mark = "x"
				}
				rows = append(rows, []string{mark, s.Title, s.Date, s.Location})
			}
			return p.table(tr, []string{"", "STEP", "DATE", "LOCATION"}, rows)
		},
	}
}

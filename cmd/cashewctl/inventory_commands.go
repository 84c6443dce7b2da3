package main

import (
	"strconv"
	"strings"

	"github.com/example/cashew-corner/internal/command"
	"github.com/example/cashew-corner/internal/domain/inventory"
	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/query"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func inventoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "inventory",
		Usage: "inspect and correct stock levels",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list stock records",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "filter", Usage: "match product name, SKU or location"},
					&cli.BoolFlag{Name: "low", Usage: "only records at or below their reorder level"},
				},
				Action: inventoryList,
			},
			{
				Name:      "locations",
				Usage:     "list the locations holding a product",
				ArgsUsage: "<product-id>",
				Action:    inventoryLocations,
			},
			{
				Name:  "adjust",
				Usage: "apply a signed correction at one location",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "product", Required: true},
					&cli.StringFlag{Name: "location", Required: true},
					&cli.StringFlag{Name: "quantity", Required: true},
					&cli.StringFlag{Name: "type", Value: string(model.AdjustAdd), Usage: "ADD or SUBTRACT"},
					&cli.StringFlag{Name: "notes", Usage: "reason for the adjustment (required)"},
					&cli.BoolFlag{Name: "dry-run", Usage: "show the preview without sending"},
				},
				Action: inventoryAdjust,
			},
			{
				Name:  "receive",
				Usage: "book goods received into a location",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "product", Required: true},
					&cli.StringFlag{Name: "location", Required: true},
					&cli.StringFlag{Name: "quantity", Required: true},
					&cli.Int64Flag{Name: "po", Usage: "purchase order id"},
					&cli.StringFlag{Name: "notes"},
				},
				Action: inventoryReceive,
			},
		},
	}
}

func inventoryList(c *cli.Context) error {
	e, err := authed(c)
	if err != nil {
		return err
	}
	var records []model.InventoryRecord
	if c.Bool("low") {
		cat, err := e.queries.LoadCatalog(c.Context)
		if err != nil {
			return failed(err, "Failed to load inventory")
		}
		records = cat.LowStock()
	} else {
		records, err = e.client.Inventory().List(c.Context)
		if err != nil {
			return failed(err, "Failed to load inventory")
		}
	}
	records = query.FilterInventory(records, c.String("filter"))

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			id(r.ProductID), r.ProductSKU, r.ProductName, r.Location,
			r.QuantityOnHand.String(), r.AvailableQuantity.String(), r.Unit,
		})
	}
	return newPrinter(e).table(records, []string{"PRODUCT", "SKU", "NAME", "LOCATION", "ON HAND", "AVAILABLE", "UNIT"}, rows)
}

func inventoryLocations(c *cli.Context) error {
	e, err := authed(c)
	if err != nil {
		return err
	}
	productID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || productID <= 0 {
		return cli.Exit("usage: cashewctl inventory locations <product-id>", 1)
	}
	records, err := e.client.Inventory().List(c.Context)
	if err != nil {
		return failed(err, "Failed to load inventory")
	}
	locations := inventory.AvailableLocations(records, productID)
	if len(locations) == 0 {
		return newPrinter(e).line(locations, "No locations hold product %d", productID)
	}
	return newPrinter(e).line(locations, "%s", strings.Join(locations, "\n"))
}

func inventoryAdjust(c *cli.Context) error {
	e, err := authed(c)
	if err != nil {
		return err
	}
	quantity, err := decimal.NewFromString(c.String("quantity"))
	if err != nil {
		return cli.Exit("quantity must be a number", 1)
	}
	records, err := e.client.Inventory().List(c.Context)
	if err != nil {
		return failed(err, "Failed to load inventory")
	}

	adj := inventory.NewAdjustment(records)
	adj.SelectProduct(c.Int64("product"))
	if err := adj.SelectLocation(c.String("location")); err != nil {
		return cli.Exit("No stock record for that product at "+c.String("location"), 1)
	}
	adj.Quantity = quantity
	adj.AdjustmentType = model.AdjustmentType(strings.ToUpper(c.String("type")))
	adj.Notes = c.String("notes")

	p := newPrinter(e)
	preview := adj.Preview()
	if !e.json {
		_ = p.line(nil, "Current %s, %s %s, resulting %s", preview.CurrentQuantity, preview.AdjustmentType, preview.Delta, preview.ResultingQuantity)
		if preview.Clamped {
			_ = p.line(nil, "Warning: the result would be negative; the backend will reject this adjustment")
		}
	}
	if c.Bool("dry-run") {
		if e.json {
			return p.raw(preview)
		}
		return nil
	}

	rec, err := e.commands.AdjustStock(c.Context, command.AdjustStock{Adjustment: adj})
	if err != nil {
		return cli.Exit(command.UserMessage(err, "Failed to adjust stock"), 1)
	}
	return p.line(rec, "Stock adjusted: %s now holds %s", rec.Location, rec.QuantityOnHand)
}

func inventoryReceive(c *cli.Context) error {
	e, err := authed(c)
	if err != nil {
		return err
	}
	quantity, err := decimal.NewFromString(c.String("quantity"))
	if err != nil {
		return cli.Exit("quantity must be a number", 1)
	}
	cmd := command.ReceiveStock{
		ProductID: c.Int64("product"),
		Quantity:  quantity,
		Location:  c.String("location"),
		Notes:     c.String("notes"),
	}
	if c.IsSet("po") {
		po := c.Int64("po")
		cmd.PurchaseOrderID = &po
	}

	rec, err := e.commands.ReceiveStock(c.Context, cmd)
	if err != nil {
		return cli.Exit(command.UserMessage(err, "Failed to receive stock"), 1)
	}
	return newPrinter(e).line(rec, "Stock received: %s now holds %s", rec.Location, rec.QuantityOnHand)
}

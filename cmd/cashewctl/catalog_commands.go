package main

import (
	"strconv"

	"github.com/example/cashew-corner/internal/client"
	"github.com/example/cashew-corner/internal/domain/draft"
	"github.com/example/cashew-corner/internal/model"
	"github.com/example/cashew-corner/internal/query"
	"github.com/urfave/cli/v2"
)

func productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "browse the product catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list products, optionally filtered locally",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "filter", Usage: "match name, SKU or description"},
					&cli.Int64Flag{Name: "category", Usage: "only products in this category id"},
				},
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					products, err := e.client.Products().List(c.Context)
					if err != nil {
						return failed(err, "Failed to load products")
					}
					return printProducts(e, query.FilterProducts(products, c.String("filter"), c.Int64("category")))
				},
			},
			{
				Name:      "search",
				Usage:     "search products by name on the server",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					products, err := e.client.Products().Search(c.Context, c.Args().First())
					if err != nil {
						return failed(err, "Failed to search products")
					}
					return printProducts(e, products)
				},
			},
		},
	}
}

func printProducts(e *env, products []model.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			id(p.ProductID), p.SKU, p.Name, p.Unit,
			draft.FormatAmount(p.SellPrice), p.ReorderLevel.String(),
		})
	}
	return newPrinter(e).table(products, []string{"ID", "SKU", "NAME", "UNIT", "PRICE", "REORDER"}, rows)
}

func customersCommand() *cli.Command {
	return &cli.Command{
		Name:  "customers",
		Usage: "browse customers",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list customers, optionally filtered locally",
				Flags: []cli.Flag{&cli.StringFlag{Name: "filter"}},
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					customers, err := e.client.Customers().List(c.Context)
					if err != nil {
						return failed(err, "Failed to load customers")
					}
					return printCustomers(e, query.FilterCustomers(customers, c.String("filter")))
				},
			},
			{
				Name:      "search",
				Usage:     "search customers by name on the server",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					customers, err := e.client.Customers().Search(c.Context, c.Args().First())
					if err != nil {
						return failed(err, "Failed to search customers")
					}
					return printCustomers(e, customers)
				},
			},
		},
	}
}

func printCustomers(e *env, customers []model.Customer) error {
	rows := make([][]string, 0, len(customers))
	for _, cu := range customers {
		rows = append(rows, []string{id(cu.CustomerID), cu.Name, cu.Email, cu.Phone, cu.Type})
	}
	return newPrinter(e).table(customers, []string{"ID", "NAME", "EMAIL", "PHONE", "TYPE"}, rows)
}

func suppliersCommand() *cli.Command {
	return &cli.Command{
		Name:  "suppliers",
		Usage: "browse suppliers",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list suppliers, optionally filtered locally",
				Flags: []cli.Flag{&cli.StringFlag{Name: "filter"}},
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					suppliers, err := e.client.Suppliers().List(c.Context)
					if err != nil {
						return failed(err, "Failed to load suppliers")
					}
					suppliers = query.FilterSuppliers(suppliers, c.String("filter"))
					rows := make([][]string, 0, len(suppliers))
					for _, s := range suppliers {
						rows = append(rows, []string{id(s.SupplierID), s.Name, s.ContactPerson, s.PaymentTerms, strconv.FormatBool(s.IsApproved)})
					}
					return newPrinter(e).table(suppliers, []string{"ID", "NAME", "CONTACT", "TERMS", "APPROVED"}, rows)
				},
			},
		},
	}
}

// failed turns an API failure into a CLI exit with the user-facing message
func failed(err error, fallback string) error {
	return cli.Exit(client.Message(err, fallback), 1)
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "cashewctl",
		Usage: "operate the Cashew Corner backend from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Usage: "directory holding cashewctl.env",
				Value: ".",
			},
			&cli.StringFlag{
				Name:    "api",
				Usage:   "backend base URL, overrides API_BASE_URL",
				EnvVars: []string{"CASHEW_API"},
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print raw JSON instead of tables",
			},
		},
		Before: setup,
		After:  teardown,
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			productsCommand(),
			customersCommand(),
			suppliersCommand(),
			inventoryCommand(),
			salesOrdersCommand(),
			purchaseOrdersCommand(),
			ordersCommand(),
			trackCommand(),
			reportsCommand(),
			activityCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

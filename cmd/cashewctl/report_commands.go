package main

import (
	"strings"

	"github.com/example/cashew-corner/internal/command"
	"github.com/example/cashew-corner/internal/model"
	"github.com/urfave/cli/v2"
)

func reportsCommand() *cli.Command {
	return &cli.Command{
		Name:  "reports",
		Usage: "list and generate reports",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list generated reports",
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					reports, err := e.client.Reports().List(c.Context)
					if err != nil {
						return failed(err, "Failed to load reports")
					}
					rows := make([][]string, 0, len(reports))
					for _, r := range reports {
						rows = append(rows, []string{id(r.ReportID), string(r.ReportType), r.GeneratedBy, r.GeneratedAt})
					}
					return newPrinter(e).table(reports, []string{"ID", "TYPE", "BY", "AT"}, rows)
				},
			},
			{
				Name:  "generate",
				Usage: "generate a report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "type",
						Required: true,
						Usage:    "INVENTORY_SUMMARY, SALES_PERFORMANCE, PAYROLL_SUMMARY or LOW_STOCK_ALERT",
					},
					&cli.StringFlag{Name: "start", Usage: "start date, YYYY-MM-DD"},
					&cli.StringFlag{Name: "end", Usage: "end date, YYYY-MM-DD"},
				},
				Action: func(c *cli.Context) error {
					e, err := authed(c)
					if err != nil {
						return err
					}
					rep, err := e.commands.GenerateReport(c.Context, command.GenerateReport{
						ReportType: model.ReportType(strings.ToUpper(c.String("type"))),
						Parameters: model.ReportParameters{StartDate: c.String("start"), EndDate: c.String("end")},
					})
					if err != nil {
						return cli.Exit(command.UserMessage(err, "Failed to generate report"), 1)
					}
					return newPrinter(e).line(rep, "Generated report %d (%s)", rep.ReportID, rep.ReportType)
				},
			},
		},
	}
}

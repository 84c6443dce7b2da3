package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/example/cashew-corner/internal/events"
	"github.com/example/cashew-corner/internal/infrastructure/kafka"
	"github.com/urfave/cli/v2"
)

func activityCommand() *cli.Command {
	return &cli.Command{
		Name:  "activity",
		Usage: "follow the activity stream published by cashewctl",
		Subcommands: []*cli.Command{
			{
				Name:  "tail",
				Usage: "print activity events from Kafka until interrupted",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "group", Value: "cashewctl-tail", Usage: "consumer group id"},
				},
				Action: activityTail,
			},
		},
	}
}

func activityTail(c *cli.Context) error {
	e := envFrom(c)
	if len(e.cfg.KafkaBrokers) == 0 {
		return cli.Exit("KAFKA_BROKERS is not set", 1)
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(e.cfg.KafkaBrokers, e.cfg.KafkaTopic, c.String("group"), e.log)
	defer consumer.Close()

	p := newPrinter(e)
	err := consumer.Consume(ctx, func(_ context.Context, ev events.Event) error {
		return p.line(ev, "%s  %-24s %s/%s  %s",
			ev.Timestamp.Format("2006-01-02 15:04:05"), ev.Type, ev.AggregateType, ev.AggregateID, string(ev.Data))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return cli.Exit("activity stream: "+err.Error(), 1)
	}
	return nil
}

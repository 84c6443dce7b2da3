package kafka

import (
	"context"
	"encoding/json"

	"github.com/example/cashew-corner/internal/events"
	"github.com/example/cashew-corner/internal/logging"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type EventHandler func(ctx context.Context, event events.Event) error

// messageReader is the part of *kafka.Reader the consumer uses
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Consumer struct {
	reader messageReader
	log    *logrus.Entry
}

func NewConsumer(brokers []string, topic, groupID string, logger logrus.FieldLogger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6, // 10MB
		StartOffset: kafka.LastOffset,
	})
	return &Consumer{reader: reader, log: logging.Component(logger, "ActivityConsumer")}
}

// Consume feeds decoded events to handler until ctx is done. Undecodable
// messages and handler errors are logged and skipped.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.log.WithError(err).Warn("error reading message")
				continue
			}

			var event events.Event
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.log.WithError(err).WithField("offset", msg.Offset).Warn("skipping undecodable message")
				continue
			}

			if err := handler(ctx, event); err != nil {
				c.log.WithError(err).WithField("event_id", event.ID).Warn("error handling event")
			}
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// Package events carries activity notifications between components by
// explicit message passing.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	SalesOrderSubmitted    Type = "SalesOrderSubmitted"
	PurchaseOrderSubmitted Type = "PurchaseOrderSubmitted"
	OrderSubmitted         Type = "OrderSubmitted"
	StockReceived          Type = "StockReceived"
	StockAdjusted          Type = "StockAdjusted"
	ReportGenerated        Type = "ReportGenerated"
)

const (
	AggregateSalesOrder    = "SalesOrder"
	AggregatePurchaseOrder = "PurchaseOrder"
	AggregateOrder         = "Order"
	AggregateInventory     = "Inventory"
	AggregateReport        = "Report"
)

var ErrClosed = errors.New("event channel closed")

// Event is one completed mutation as seen by this client
type Event struct {
	ID            string          `json:"id"`
	Type          Type            `json:"type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	Actor         string          `json:"actor,omitempty"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
}

func New(typ Type, aggregateType, aggregateID string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:            uuid.NewString(),
		Type:          typ,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Data:          raw,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// Decode unmarshals the payload into v
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop drops every event
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Channel hands events to a single in-process consumer
type Channel struct {
	ch chan Event
}

func NewChannel(buffer int) *Channel {
	return &Channel{ch: make(chan Event, buffer)}
}

// Publish blocks until the consumer has room or ctx is done
func (c *Channel) Publish(ctx context.Context, event Event) (err error) {
	defer func() {
		if recover() != nil {
			err = ErrClosed
		}
	}()
	select {
	case c.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Channel) Events() <-chan Event {
	return c.ch
}

// Close ends the stream; later publishes fail with ErrClosed
func (c *Channel) Close() {
	close(c.ch)
}

// Fanout publishes to every publisher and joins their errors
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

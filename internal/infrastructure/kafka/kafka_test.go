package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/example/cashew-corner/internal/events"
	"github.com/example/cashew-corner/internal/logging"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error { return nil }

// fakeReader replays queued results and then blocks until ctx is done
type fakeReader struct {
	queue []readResult
}

type readResult struct {
	msg kafka.Message
	err error
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.queue) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	next := r.queue[0]
	r.queue = r.queue[1:]
	return next.msg, next.err
}

func (r *fakeReader) Close() error { return nil }

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}
	event, err := events.New(events.SalesOrderSubmitted, events.AggregateSalesOrder, "12", map[string]string{"soNumber": "SO-12"})
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "SalesOrder:12", string(msg.Key))
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, "SalesOrderSubmitted", string(msg.Headers[0].Value))

	var decoded events.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
}

func TestProducer_PublishError(t *testing.T) {
	boom := errors.New("no brokers")
	p := &Producer{writer: &fakeWriter{err: boom}}

	err := p.Publish(context.Background(), events.Event{ID: "1"})

	assert.ErrorIs(t, err, boom)
}

func TestConsumer_Consume(t *testing.T) {
	good, err := events.New(events.StockReceived, events.AggregateInventory, "10", nil)
	require.NoError(t, err)
	goodBytes, err := json.Marshal(good)
	require.NoError(t, err)

	reader := &fakeReader{queue: []readResult{
		{err: errors.New("transient")},
		{msg: kafka.Message{Value: []byte("not json")}},
		{msg: kafka.Message{Value: goodBytes}},
	}}
	c := &Consumer{reader: reader, log: logging.Component(logging.Discard(), "test")}

	ctx, cancel := context.WithCancel(context.Background())
	var got []events.Event
	err = c.Consume(ctx, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, got, 1)
	assert.Equal(t, good.ID, got[0].ID)
}

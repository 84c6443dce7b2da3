package mocks

import (
	"context"
	"sync"

	"github.com/example/cashew-corner/internal/events"
)

// MockPublisher records published events for assertions
type MockPublisher struct {
	mu sync.Mutex

	PublishCalls []events.Event
	PublishErr   error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{PublishCalls: make([]events.Event, 0)}
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCalls = append(m.PublishCalls, event)
	return m.PublishErr
}

// Types lists the types of recorded events in order
func (m *MockPublisher) Types() []events.Type {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]events.Type, 0, len(m.PublishCalls))
	for _, e := range m.PublishCalls {
		out = append(out, e.Type)
	}
	return out
}

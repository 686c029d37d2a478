package events

import (
	"context"
	"sync"

	"github.com/ShimmyTheDev/GameOfThree/internal/model"
)

// MemoryPublisher records emitted events in memory. Tests use it as a
// synchronous capture point for engine notifications.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []model.Event
}

// NewMemoryPublisher creates a new in-memory publisher
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

var _ Publisher = (*MemoryPublisher)(nil)

// Emit records the event
func (p *MemoryPublisher) Emit(ctx context.Context, event model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Events returns a snapshot of all recorded events
func (p *MemoryPublisher) Events() []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Event(nil), p.events...)
}

// EventsOfType returns recorded events matching the given type
func (p *MemoryPublisher) EventsOfType(t model.EventType) []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var matched []model.Event
	for _, e := range p.events {
		if e.Type == t {
			matched = append(matched, e)
		}
	}
	return matched
}

// Reset clears all recorded events
func (p *MemoryPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

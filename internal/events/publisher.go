package events

import (
	"context"

	"github.com/ShimmyTheDev/GameOfThree/internal/model"
)

// Publisher accepts game lifecycle notifications for downstream
// consumers. Emit is fire-and-forget: implementations log failures
// and never report them back, so a broken sink cannot roll back the
// engine operation that triggered the event.
type Publisher interface {
	Emit(ctx context.Context, event model.Event)
}

// NopPublisher discards all events
type NopPublisher struct{}

// NewNopPublisher creates a publisher that discards all events
func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

var _ Publisher = (*NopPublisher)(nil)

// Emit discards the event
func (p *NopPublisher) Emit(ctx context.Context, event model.Event) {}

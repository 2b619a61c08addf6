package ports

import (
	"context"
	"encoding/json"
	"time"

	"freight/internal/pkg/ddd"

	"github.com/google/uuid"
)

// DomainEventDispatcher runs the in-process reactions to a domain event inside
// the transaction of the unit of work that raised it.
type DomainEventDispatcher interface {
	Dispatch(ctx context.Context, uow UnitOfWork, event ddd.DomainEvent) error
}

// Message is the envelope a domain event travels in once it leaves the process.
type Message struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	AggregateID uuid.UUID       `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// MessagePublisher delivers outbox messages to the event bus.
type MessagePublisher interface {
	Publish(ctx context.Context, msgs ...Message) error
}

// Package ddd holds the domain event plumbing shared by aggregates: a BaseAggregate
// that buffers raised events and a BaseEvent carrying event metadata.
package ddd

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact raised by an aggregate. Events are dispatched to in-process
// handlers and written to the outbox when the unit of work commits.
type DomainEvent interface {
	EventID() uuid.UUID
	EventName() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

// AggregateRoot is implemented by every aggregate embedding BaseAggregate.
type AggregateRoot interface {
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

type BaseAggregate struct {
	domainEvents []DomainEvent
}

func (a *BaseAggregate) RaiseDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

func (a *BaseAggregate) GetDomainEvents() []DomainEvent {
	return slices.Clone(a.domainEvents)
}

func (a *BaseAggregate) ClearDomainEvents() {
	a.domainEvents = nil
}

// BaseEvent is embedded by concrete events. Its fields stay unexported so that
// serializing an event yields only its payload.
type BaseEvent struct {
	id          uuid.UUID
	name        string
	aggregateID uuid.UUID
	occurredAt  time.Time
}

func NewBaseEvent(name string, aggregateID uuid.UUID, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		id:          uuid.New(),
		name:        name,
		aggregateID: aggregateID,
		occurredAt:  occurredAt,
	}
}

func (e BaseEvent) EventID() uuid.UUID     { return e.id }
func (e BaseEvent) EventName() string      { return e.name }
func (e BaseEvent) AggregateID() uuid.UUID { return e.aggregateID }
func (e BaseEvent) OccurredAt() time.Time  { return e.occurredAt }

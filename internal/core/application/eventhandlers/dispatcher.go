// Package eventhandlers reacts to domain events inside the transaction that
// raised them. It keeps cross-aggregate effects, such as removing a trip when
// its listing is cancelled, out of the command handlers.
package eventhandlers

import (
	"context"
	"fmt"
	"log/slog"

	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/ports"
	"freight/internal/pkg/ddd"
)

// HandlerFunc handles one domain event with the unit of work that raised it.
type HandlerFunc func(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error

// Dispatcher routes domain events to handlers by event name. Events without a
// handler are ignored.
type Dispatcher struct {
	handlers map[string][]HandlerFunc
	logger   *slog.Logger
}

// NewDispatcher returns a dispatcher with the booking engine's handlers registered.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string][]HandlerFunc),
		logger:   logger.With("component", "event_dispatcher"),
	}

	d.Register(listing.PublishedEventName, PlanTrip)
	d.Register(listing.CancelledEventName, RemoveTrip)
	d.Register(request.StatusChangedEventName, AttachAcceptedRequest)

	return d
}

func (d *Dispatcher) Register(eventName string, h HandlerFunc) {
	d.handlers[eventName] = append(d.handlers[eventName], h)
}

// Dispatch runs every handler registered for the event in registration order and
// stops at the first error.
func (d *Dispatcher) Dispatch(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error {
	for _, h := range d.handlers[event.EventName()] {
		if err := h(ctx, uow, event); err != nil {
			return fmt.Errorf("handle %s: %w", event.EventName(), err)
		}
	}

	d.logger.DebugContext(ctx, "domain event dispatched",
		"event", event.EventName(),
		"aggregate_id", event.AggregateID().String())
	return nil
}

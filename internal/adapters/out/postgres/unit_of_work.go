// Package postgres provides the GORM-based Unit of Work and the schema setup for
// the booking engine.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// track every aggregate they add, update or delete. On Commit the unit of work
// drains the domain events of the tracked aggregates, runs the in-process event
// handlers inside the same transaction, writes the events to the outbox and only
// then commits. Handlers may change further aggregates through the same unit of
// work; their events are drained in the next round.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.ListingRepository().Add(ctx, l); err != nil {
//	    return err
//	}
//
//	// listing.published creates the trip before the commit
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
package postgres

import (
	"context"

	"freight/internal/adapters/out/postgres/listingrepo"
	"freight/internal/adapters/out/postgres/outboxrepo"
	"freight/internal/adapters/out/postgres/requestrepo"
	"freight/internal/adapters/out/postgres/triprepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/ddd"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	dispatcher ports.DomainEventDispatcher
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// dispatcher may be nil, in which case events only go to the outbox.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, eventhandlers.NewDispatcher(logger))
func NewGormUnitOfWorkFactory(db *gorm.DB, dispatcher ports.DomainEventDispatcher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, dispatcher: dispatcher}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		dispatcher:        f.dispatcher,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the domain events of
// the aggregates changed inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	dispatcher        ports.DomainEventDispatcher
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
// A connection failure is returned as *errs.StorageError.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return errs.NewStorageError("begin transaction", err)
	}

	return nil
}

// Commit handles pending domain events and commits the transaction.
//
// If an event handler or the outbox write fails, the transaction is left open
// and the error is returned; the caller's deferred Rollback discards it.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.processDomainEvents(ctx); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return errs.NewStorageError("commit transaction", err)
	}
	return nil
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return errs.NewStorageError("rollback transaction", err)
	}
	return nil
}

// ListingRepository provides access to listing persistence within the unit of work.
// Without an active transaction the repository uses the main connection.
func (uow *GormUnitOfWork) ListingRepository() ports.ListingRepository {
	return listingrepo.NewGormListingRepository(uow.conn(), uow)
}

// RequestRepository provides access to transport request persistence within the unit of work.
func (uow *GormUnitOfWork) RequestRepository() ports.RequestRepository {
	return requestrepo.NewGormRequestRepository(uow.conn(), uow)
}

// TripRepository provides access to trip persistence within the unit of work.
func (uow *GormUnitOfWork) TripRepository() ports.TripRepository {
	return triprepo.NewGormTripRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of work.
// Repositories call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) processDomainEvents(ctx context.Context) error {
	outbox := outboxrepo.NewGormOutbox(uow.tx)

	for {
		events := uow.drainDomainEvents()
		if len(events) == 0 {
			return nil
		}

		msgs := make([]ports.Message, 0, len(events))
		for _, event := range events {
			if uow.dispatcher != nil {
				if err := uow.dispatcher.Dispatch(ctx, uow, event); err != nil {
					return err
				}
			}

			msg, err := outboxrepo.NewMessage(event)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}

		if err := outbox.Append(ctx, msgs...); err != nil {
			return err
		}
	}
}

func (uow *GormUnitOfWork) drainDomainEvents() []ddd.DomainEvent {
	var events []ddd.DomainEvent
	for _, tracked := range uow.trackedAggregates {
		root, ok := tracked.Aggregate.(ddd.AggregateRoot)
		if !ok {
			continue
		}
		events = append(events, root.GetDomainEvents()...)
		root.ClearDomainEvents()
	}
	return events
}

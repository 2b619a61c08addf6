package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit dispatches the domain events raised by tracked aggregates, stores
	// them in the outbox and commits the transaction.
	// Returns error if no active transaction, an event handler fails or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ListingRepository returns a ListingRepository bound to the current transaction.
	ListingRepository() ListingRepository

	// RequestRepository returns a RequestRepository bound to the current transaction.
	RequestRepository() RequestRepository

	// TripRepository returns a TripRepository bound to the current transaction.
	TripRepository() TripRepository
}

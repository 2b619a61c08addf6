// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every handler runs one load-check-save cycle inside a single unit of work.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ListingRepoFactory interface {
		ListingRepository() ports.ListingRepository
	}

	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	TripRepoFactory interface {
		TripRepository() ports.TripRepository
	}

	// ListingUoW manages transactions for listing operations. Trip side effects
	// run in the same transaction through domain event handlers.
	ListingUoW interface {
		TxManager
		ListingRepoFactory
	}

	ListingUoWFactory interface {
		Create() ListingUoW
	}

	// RequestUoW reads the referenced listing and writes the request in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   l, err := uow.ListingRepository().Get(ctx, listingID)
	//   // ... place the request
	//   err = uow.RequestRepository().Add(ctx, r)
	//
	//   err = uow.Commit(ctx)
	RequestUoW interface {
		TxManager
		ListingRepoFactory
		RequestRepoFactory
	}

	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// TripUoW manages transactions for trip execution operations.
	TripUoW interface {
		TxManager
		TripRepoFactory
	}

	TripUoWFactory interface {
		Create() TripUoW
	}
)

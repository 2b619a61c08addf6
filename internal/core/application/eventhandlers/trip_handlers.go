package eventhandlers

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/model/trip"
	"freight/internal/core/ports"
	"freight/internal/pkg/ddd"
	"freight/internal/pkg/errs"
)

// PlanTrip creates the planned trip of a newly published listing.
func PlanTrip(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error {
	e, ok := event.(listing.PublishedEvent)
	if !ok {
		return nil
	}

	t, err := trip.NewTrip(kernel.NewUUID(), e.ListingID, e.OwnerID, e.DepartureAt, e.Price)
	if err != nil {
		return err
	}

	return uow.TripRepository().Add(ctx, t)
}

// RemoveTrip deletes the trip of a cancelled listing. A listing without a trip
// needs nothing more.
func RemoveTrip(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error {
	e, ok := event.(listing.CancelledEvent)
	if !ok {
		return nil
	}

	repo := uow.TripRepository()
	t, err := repo.GetByListing(ctx, e.ListingID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return repo.Delete(ctx, t)
}

// AttachAcceptedRequest adds an accepted request to its listing's trip.
func AttachAcceptedRequest(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error {
	e, ok := event.(request.StatusChangedEvent)
	if !ok || e.To != request.Accepted.String() {
		return nil
	}

	repo := uow.TripRepository()
	t, err := repo.GetByListing(ctx, e.ListingID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = t.AttachRequest(e.RequestID); err != nil {
		return err
	}

	return repo.Update(ctx, t)
}

package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/listing"
)

// ChangeListingStatusCommandHandler drives the listing lifecycle. Cancelling a
// listing deletes its trip through the listing.cancelled event handler, inside
// the same transaction.
type ChangeListingStatusCommandHandler struct {
	uowFactory ListingUoWFactory
}

func NewChangeListingStatusCommandHandler(uowFactory ListingUoWFactory) ChangeListingStatusCommandHandler {
	return ChangeListingStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns *errs.ObjectNotFoundError for an unknown listing and the
// aggregate's authorization and state errors otherwise.
func (h ChangeListingStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeListingStatusCommand,
) (*listing.Listing, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ListingRepository()
	l, err := repo.Get(ctx, cmd.ListingID())
	if err != nil {
		return nil, err
	}

	if err = cmd.Action().Apply(l, cmd.Actor(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, l); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return l, nil
}

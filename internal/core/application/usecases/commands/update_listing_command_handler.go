package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/listing"
)

type UpdateListingCommandHandler struct {
	uowFactory ListingUoWFactory
}

func NewUpdateListingCommandHandler(uowFactory ListingUoWFactory) UpdateListingCommandHandler {
	return UpdateListingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns *errs.ObjectNotFoundError for an unknown listing, *errs.ForbiddenError
// unless the actor owns the listing or is an admin, and *errs.InvalidStateError once
// the listing is terminal.
func (h UpdateListingCommandHandler) Handle(ctx context.Context, cmd UpdateListingCommand) (*listing.Listing, error) {
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

	if err = l.Update(cmd.Actor(), cmd.Patch(), time.Now().UTC()); err != nil {
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

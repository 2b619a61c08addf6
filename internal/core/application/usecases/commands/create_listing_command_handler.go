package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/listing"
)

// CreateListingCommandHandler persists a new active listing. The listing.published
// event plans the listing's trip before the transaction commits.
type CreateListingCommandHandler struct {
	uowFactory ListingUoWFactory
}

func NewCreateListingCommandHandler(uowFactory ListingUoWFactory) CreateListingCommandHandler {
	return CreateListingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns *errs.ForbiddenRoleError unless the owner is a carrier, or the
// validation errors of the listing terms.
func (h CreateListingCommandHandler) Handle(ctx context.Context, cmd CreateListingCommand) (*listing.Listing, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	l, err := listing.NewListing(cmd.ListingID(), cmd.Owner(), cmd.Params(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ListingRepository().Add(ctx, l); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return l, nil
}

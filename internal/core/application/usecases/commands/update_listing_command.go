package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/pkg/guard"
)

var ErrUpdateListingCommandIsNotConstructed = errors.New(
	"UpdateListingCommand must be created via NewUpdateListingCommand constructor",
)

// UpdateListingCommand applies a partial update. Nil patch fields are left unchanged.
type UpdateListingCommand struct { //nolint:recvcheck //using for validation
	listingID kernel.UUID
	actor     kernel.Actor
	patch     listing.Patch

	guard guard.ConstructorGuard
}

func NewUpdateListingCommand(listingID kernel.UUID, actor kernel.Actor, patch listing.Patch) (UpdateListingCommand, error) {
	if err := errors.Join(listingID.Validate(), actor.Validate()); err != nil {
		return UpdateListingCommand{}, err
	}

	return UpdateListingCommand{
		listingID: listingID,
		actor:     actor,
		patch:     patch,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateListingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateListingCommandIsNotConstructed)
}

func (c UpdateListingCommand) ListingID() kernel.UUID { return c.listingID }
func (c UpdateListingCommand) Actor() kernel.Actor    { return c.actor }
func (c UpdateListingCommand) Patch() listing.Patch   { return c.patch }

package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/pkg/guard"
)

var ErrCreateListingCommandIsNotConstructed = errors.New(
	"CreateListingCommand must be created via NewCreateListingCommand constructor",
)

// CreateListingCommand publishes a carrier's transport capacity.
//
// Example:
//
//	cmd, err := NewCreateListingCommand(kernel.NewUUID(), carrier, listing.Params{
//	    Origin:      casablanca,
//	    Destination: rabat,
//	    Stops:       []string{"Mohammedia"},
//	    DepartureAt: departure,
//	    ArrivalAt:   arrival,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid listing: %w", err)
//	}
//	l, err := handler.Handle(ctx, cmd)
type CreateListingCommand struct { //nolint:recvcheck //using for validation
	listingID kernel.UUID
	owner     kernel.Actor
	params    listing.Params

	guard guard.ConstructorGuard
}

// NewCreateListingCommand checks the identifiers only. Terms are validated by the
// listing aggregate.
func NewCreateListingCommand(listingID kernel.UUID, owner kernel.Actor, params listing.Params) (CreateListingCommand, error) {
	cmd := CreateListingCommand{
		params: params,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setListingID(listingID),
		cmd.setOwner(owner),
	); err != nil {
		return CreateListingCommand{}, err
	}

	return cmd, nil
}

func (c CreateListingCommand) Validate() error {
	return c.guard.Validate(ErrCreateListingCommandIsNotConstructed)
}

func (c CreateListingCommand) ListingID() kernel.UUID { return c.listingID }
func (c CreateListingCommand) Owner() kernel.Actor    { return c.owner }
func (c CreateListingCommand) Params() listing.Params { return c.params }

func (c *CreateListingCommand) setListingID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.listingID = id
	return nil
}

func (c *CreateListingCommand) setOwner(owner kernel.Actor) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	c.owner = owner
	return nil
}

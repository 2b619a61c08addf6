package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand files a shipper's transport request against a listing.
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	requester kernel.Actor
	listingID kernel.UUID
	details   request.Details

	guard guard.ConstructorGuard
}

func NewCreateRequestCommand(
	requestID kernel.UUID,
	requester kernel.Actor,
	listingID kernel.UUID,
	details request.Details,
) (CreateRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), requester.Validate(), listingID.Validate()); err != nil {
		return CreateRequestCommand{}, err
	}

	return CreateRequestCommand{
		requestID: requestID,
		requester: requester,
		listingID: listingID,
		details:   details,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) RequestID() kernel.UUID   { return c.requestID }
func (c CreateRequestCommand) Requester() kernel.Actor  { return c.requester }
func (c CreateRequestCommand) ListingID() kernel.UUID   { return c.listingID }
func (c CreateRequestCommand) Details() request.Details { return c.details }

package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrRemoveRequestCommandIsNotConstructed = errors.New(
	"RemoveRequestCommand must be created via NewRemoveRequestCommand constructor",
)

// RemoveRequestCommand withdraws a pending request and deletes it permanently.
type RemoveRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewRemoveRequestCommand(requestID kernel.UUID, actor kernel.Actor) (RemoveRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), actor.Validate()); err != nil {
		return RemoveRequestCommand{}, err
	}

	return RemoveRequestCommand{
		requestID: requestID,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveRequestCommand) Validate() error {
	return c.guard.Validate(ErrRemoveRequestCommandIsNotConstructed)
}

func (c RemoveRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c RemoveRequestCommand) Actor() kernel.Actor    { return c.actor }

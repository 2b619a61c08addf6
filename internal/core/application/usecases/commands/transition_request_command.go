package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/guard"
)

var ErrTransitionRequestCommandIsNotConstructed = errors.New(
	"TransitionRequestCommand must be created via NewTransitionRequestCommand constructor",
)

// TransitionRequestCommand moves a request along its status table. Comment and
// refusal reason are optional; the reason is kept only for refusals.
type TransitionRequestCommand struct { //nolint:recvcheck //using for validation
	requestID     kernel.UUID
	actor         kernel.Actor
	to            request.Status
	comment       *string
	refusalReason *string

	guard guard.ConstructorGuard
}

func NewTransitionRequestCommand(
	requestID kernel.UUID,
	actor kernel.Actor,
	to request.Status,
	comment *string,
	refusalReason *string,
) (TransitionRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), actor.Validate(), to.Validate()); err != nil {
		return TransitionRequestCommand{}, err
	}

	return TransitionRequestCommand{
		requestID:     requestID,
		actor:         actor,
		to:            to,
		comment:       comment,
		refusalReason: refusalReason,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionRequestCommand) Validate() error {
	return c.guard.Validate(ErrTransitionRequestCommandIsNotConstructed)
}

func (c TransitionRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c TransitionRequestCommand) Actor() kernel.Actor    { return c.actor }
func (c TransitionRequestCommand) To() request.Status     { return c.to }
func (c TransitionRequestCommand) Comment() *string       { return c.comment }
func (c TransitionRequestCommand) RefusalReason() *string { return c.refusalReason }

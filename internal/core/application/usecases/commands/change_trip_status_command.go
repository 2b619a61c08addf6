package commands

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrChangeTripStatusCommandIsNotConstructed = errors.New(
	"ChangeTripStatusCommand must be created via NewChangeTripStatusCommand constructor",
)

type TripAction string

const (
	StartTrip    TripAction = "start"
	FinishTrip   TripAction = "finish"
	CancelTrip   TripAction = "cancel"
	PostponeTrip TripAction = "postpone"
)

func ParseTripAction(s string) (TripAction, error) {
	a := TripAction(strings.ToLower(strings.TrimSpace(s)))
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

func (a TripAction) Validate() error {
	switch a {
	case StartTrip, FinishTrip, CancelTrip, PostponeTrip:
		return nil
	default:
		return errs.NewValueIsInvalidError("trip action")
	}
}

// Apply runs the trip transition named by the action.
func (a TripAction) Apply(t *trip.Trip, actor kernel.Actor, now time.Time) error {
	switch a {
	case StartTrip:
		return t.Start(actor, now)
	case FinishTrip:
		return t.Finish(actor, now)
	case CancelTrip:
		return t.Cancel(actor, now)
	case PostponeTrip:
		return t.Postpone(actor, now)
	default:
		return errs.NewValueIsInvalidError("trip action")
	}
}

// ChangeTripStatusCommand starts, finishes, cancels or postpones a trip on
// behalf of its carrier or an admin.
type ChangeTripStatusCommand struct { //nolint:recvcheck //using for validation
	tripID kernel.UUID
	actor  kernel.Actor
	action TripAction

	guard guard.ConstructorGuard
}

func NewChangeTripStatusCommand(tripID kernel.UUID, actor kernel.Actor, action TripAction) (ChangeTripStatusCommand, error) {
	if err := errors.Join(tripID.Validate(), actor.Validate(), action.Validate()); err != nil {
		return ChangeTripStatusCommand{}, err
	}

	return ChangeTripStatusCommand{
		tripID: tripID,
		actor:  actor,
		action: action,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeTripStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeTripStatusCommandIsNotConstructed)
}

func (c ChangeTripStatusCommand) TripID() kernel.UUID { return c.tripID }
func (c ChangeTripStatusCommand) Actor() kernel.Actor { return c.actor }
func (c ChangeTripStatusCommand) Action() TripAction  { return c.action }

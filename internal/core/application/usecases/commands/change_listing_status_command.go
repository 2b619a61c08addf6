package commands

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/listing"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrChangeListingStatusCommandIsNotConstructed = errors.New(
	"ChangeListingStatusCommand must be created via NewChangeListingStatusCommand constructor",
)

// ListingAction names a status change of a listing.
type ListingAction string

const (
	CompleteListing  ListingAction = "complete"
	CancelListing    ListingAction = "cancel"
	SuspendListing   ListingAction = "suspend"
	ReinstateListing ListingAction = "reinstate"
)

func ParseListingAction(s string) (ListingAction, error) {
	a := ListingAction(strings.ToLower(strings.TrimSpace(s)))
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

func (a ListingAction) Validate() error {
	switch a {
	case CompleteListing, CancelListing, SuspendListing, ReinstateListing:
		return nil
	default:
		return errs.NewValueIsInvalidError("listing action")
	}
}

// Apply runs the listing transition named by the action.
func (a ListingAction) Apply(l *listing.Listing, actor kernel.Actor, now time.Time) error {
	switch a {
	case CompleteListing:
		return l.Complete(actor, now)
	case CancelListing:
		return l.Cancel(actor, now)
	case SuspendListing:
		return l.Suspend(actor, now)
	case ReinstateListing:
		return l.Reinstate(actor, now)
	default:
		return errs.NewValueIsInvalidError("listing action")
	}
}

// ChangeListingStatusCommand completes, cancels, suspends or reinstates a listing.
//
// Example:
//
//	cmd, err := NewChangeListingStatusCommand(listingID, carrier, CancelListing)
//	if err != nil {
//	    return err
//	}
//	// the listing's trip is removed in the same transaction
//	l, err := handler.Handle(ctx, cmd)
type ChangeListingStatusCommand struct { //nolint:recvcheck //using for validation
	listingID kernel.UUID
	actor     kernel.Actor
	action    ListingAction

	guard guard.ConstructorGuard
}

func NewChangeListingStatusCommand(
	listingID kernel.UUID,
	actor kernel.Actor,
	action ListingAction,
) (ChangeListingStatusCommand, error) {
	if err := errors.Join(listingID.Validate(), actor.Validate(), action.Validate()); err != nil {
		return ChangeListingStatusCommand{}, err
	}

	return ChangeListingStatusCommand{
		listingID: listingID,
		actor:     actor,
		action:    action,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeListingStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeListingStatusCommandIsNotConstructed)
}

func (c ChangeListingStatusCommand) ListingID() kernel.UUID { return c.listingID }
func (c ChangeListingStatusCommand) Actor() kernel.Actor    { return c.actor }
func (c ChangeListingStatusCommand) Action() ListingAction  { return c.action }

package request

import (
	"fmt"
	"slices"

	"freight/internal/pkg/errs"
)

// Status is the lifecycle state of a transport request.
//
// State transitions:
//
//	Pending ──┬──> Accepted ──> InProgress ──> Delivered
//	          └──> Refused
//
// Refused, Delivered and Cancelled have no outgoing transitions. Pending and
// Accepted are the open states: a requester holds at most one open request per listing.
type Status int

const (
	Unknown Status = iota
	Pending
	Accepted
	Refused
	InProgress
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Accepted:   "accepted",
		Refused:    "refused",
		InProgress: "in_progress",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // statuses without outgoing edges are omitted
	return map[Status][]Status{
		Pending:    {Accepted, Refused},
		Accepted:   {InProgress},
		InProgress: {Delivered},
	}
}

// ParseStatus maps a wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a request status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsOpen reports whether the request still blocks a new one on the same listing.
func (s Status) IsOpen() bool {
	return s == Pending || s == Accepted
}

// IsFinal reports whether the request reached an outcome shown in the owner's history.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Refused
}

// TransitionTo validates a status change.
//
// Delivered and cancelled requests reject every change with *errs.InvalidStateError;
// any other edge missing from the transition table yields *errs.IllegalTransitionError.
func (s Status) TransitionTo(to Status) (Status, error) {
	if s == Delivered || s == Cancelled {
		return 0, errs.NewInvalidStateError("request", s, "change")
	}
	if err := to.Validate(); err != nil {
		return 0, err
	}
	if !slices.Contains(getTransitions()[s], to) {
		return 0, errs.NewIllegalTransitionError("request", s, to)
	}
	return to, nil
}

package trip

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status is the execution state of a trip.
//
// State transitions:
//
//	Planned ──> InProgress ──> Completed
//	               │  ▲
//	               ▼  │
//	            Postponed
//
// Planned, InProgress and Postponed may also move to Cancelled. Completed and
// Cancelled are terminal.
type Status int

const (
	Unknown Status = iota
	Planned
	InProgress
	Completed
	Cancelled
	Postponed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Planned:    "planned",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
		Postponed:  "postponed",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a trip status", s))
}

func (s Status) Validate() error {
	if s < Planned || s > Postponed {
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

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Start is accepted from every non-terminal state.
func (s Status) Start() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewInvalidStateError("trip", s, "start")
	}
	return InProgress, nil
}

func (s Status) Finish() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewInvalidStateError("trip", s, "finish")
	}
	if s != InProgress {
		return 0, errs.NewIllegalTransitionError("trip", s, Completed)
	}
	return Completed, nil
}

func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewInvalidStateError("trip", s, "cancel")
	}
	return Cancelled, nil
}

func (s Status) Postpone() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewInvalidStateError("trip", s, "postpone")
	}
	if s != InProgress {
		return 0, errs.NewIllegalTransitionError("trip", s, Postponed)
	}
	return Postponed, nil
}

package listing

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status is the lifecycle state of a listing.
//
// State transitions:
//
//	Active ──┬──> Complete
//	  │  ▲   └──> Cancelled
//	  ▼  │
//	Suspended ──> Cancelled
//
// Complete and Cancelled are terminal. Suspended is an admin moderation hold.
type Status int

const (
	Unknown Status = iota
	Active
	Complete
	Cancelled
	Suspended
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Active:    "active",
		Complete:  "complete",
		Cancelled: "cancelled",
		Suspended: "suspended",
	}
}

// ParseStatus maps a wire name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a listing status", s))
}

func (s Status) Validate() error {
	if s < Active || s > Suspended {
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
	return s == Complete || s == Cancelled
}

// Complete moves an active listing to Complete.
func (s Status) Complete() (Status, error) {
	if s != Active {
		return 0, errs.NewInvalidStateError("listing", s, "complete")
	}
	return Complete, nil
}

// Cancel is allowed from any non-terminal state.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewInvalidStateError("listing", s, "cancel")
	}
	return Cancelled, nil
}

func (s Status) Suspend() (Status, error) {
	if s != Active {
		return 0, errs.NewInvalidStateError("listing", s, "suspend")
	}
	return Suspended, nil
}

func (s Status) Reinstate() (Status, error) {
	if s != Suspended {
		return 0, errs.NewInvalidStateError("listing", s, "reinstate")
	}
	return Active, nil
}

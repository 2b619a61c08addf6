package errs

import (
	"errors"
	"fmt"
)

var (
	ErrForbiddenRole      = errors.New("role is not allowed")
	ErrForbidden          = errors.New("operation is forbidden")
	ErrInvalidState       = errors.New("invalid state")
	ErrIllegalTransition  = errors.New("illegal transition")
	ErrSelfBooking        = errors.New("self booking is not allowed")
	ErrDuplicateRequest   = errors.New("duplicate request")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrStorageUnavailable = errors.New("storage error")
)

// ForbiddenRoleError is returned when the actor's role may not perform an operation at all.
type ForbiddenRoleError struct {
	Operation string
	Role      string
}

func NewForbiddenRoleError(operation string, role fmt.Stringer) *ForbiddenRoleError {
	return &ForbiddenRoleError{Operation: operation, Role: role.String()}
}

func (e *ForbiddenRoleError) Error() string {
	return fmt.Sprintf("%s: %s cannot %s", ErrForbiddenRole, e.Role, e.Operation)
}

func (e *ForbiddenRoleError) Unwrap() error {
	return ErrForbiddenRole
}

// ForbiddenError is returned when the actor is neither the resource owner nor an admin.
type ForbiddenError struct {
	Entity  string
	ID      string
	ActorID string
}

func NewForbiddenError(entity string, id fmt.Stringer, actorID fmt.Stringer) *ForbiddenError {
	return &ForbiddenError{Entity: entity, ID: id.String(), ActorID: actorID.String()}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: actor %s may not modify %s %s", ErrForbidden, e.ActorID, e.Entity, e.ID)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidStateError is returned when an entity's current state rules the operation out.
type InvalidStateError struct {
	Entity    string
	State     string
	Operation string
}

func NewInvalidStateError(entity string, state fmt.Stringer, operation string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, State: state.String(), Operation: operation}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s in state %s", ErrInvalidState, e.Operation, e.Entity, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// IllegalTransitionError names both ends of a rejected status change.
type IllegalTransitionError struct {
	Entity string
	From   string
	To     string
}

func NewIllegalTransitionError(entity string, from fmt.Stringer, to fmt.Stringer) *IllegalTransitionError {
	return &IllegalTransitionError{Entity: entity, From: from.String(), To: to.String()}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrIllegalTransition, e.Entity, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

type SelfBookingError struct {
	ListingID string
}

func NewSelfBookingError(listingID fmt.Stringer) *SelfBookingError {
	return &SelfBookingError{ListingID: listingID.String()}
}

func (e *SelfBookingError) Error() string {
	return fmt.Sprintf("%s: listing %s belongs to the requester", ErrSelfBooking, e.ListingID)
}

func (e *SelfBookingError) Unwrap() error {
	return ErrSelfBooking
}

// DuplicateRequestError is returned when the requester already holds an open request on the listing.
type DuplicateRequestError struct {
	RequesterID string
	ListingID   string
	Cause       error
}

func NewDuplicateRequestError(requesterID fmt.Stringer, listingID fmt.Stringer) *DuplicateRequestError {
	return &DuplicateRequestError{RequesterID: requesterID.String(), ListingID: listingID.String()}
}

func NewDuplicateRequestErrorWithCause(requesterID, listingID string, cause error) *DuplicateRequestError {
	return &DuplicateRequestError{RequesterID: requesterID, ListingID: listingID, Cause: cause}
}

func (e *DuplicateRequestError) Error() string {
	msg := fmt.Sprintf("%s: requester %s already has an open request on listing %s",
		ErrDuplicateRequest, e.RequesterID, e.ListingID)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *DuplicateRequestError) Unwrap() error {
	return ErrDuplicateRequest
}

// CapacityExceededError names the first limit the parcel breaks.
type CapacityExceededError struct {
	Limit  string
	Value  any
	MaxVal any
}

func NewCapacityExceededError(limit string, value any, maxValue any) *CapacityExceededError {
	return &CapacityExceededError{Limit: limit, Value: value, MaxVal: maxValue}
}

func (e *CapacityExceededError) Error() string {
	if e.MaxVal == nil {
		return fmt.Sprintf("%s: listing has no %s limit", ErrCapacityExceeded, e.Limit)
	}
	return fmt.Sprintf("%s: %s %v exceeds %v", ErrCapacityExceeded, e.Limit, e.Value, e.MaxVal)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

type InvalidIdentifierError struct {
	Value string
	Cause error
}

func NewInvalidIdentifierError(value string, cause error) *InvalidIdentifierError {
	return &InvalidIdentifierError{Value: sanitize(value), Cause: cause}
}

func (e *InvalidIdentifierError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %q (cause: %v)", ErrInvalidIdentifier, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: %q", ErrInvalidIdentifier, e.Value)
}

func (e *InvalidIdentifierError) Unwrap() error {
	return ErrInvalidIdentifier
}

// StorageError wraps an unexpected persistence failure.
type StorageError struct {
	Operation string
	Cause     error
}

func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{Operation: operation, Cause: cause}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %v)", ErrStorageUnavailable, e.Operation, e.Cause)
}

// Unwrap exposes both the sentinel and the driver error.
func (e *StorageError) Unwrap() []error {
	return []error{ErrStorageUnavailable, e.Cause}
}

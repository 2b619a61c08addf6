// Package errs provides the typed errors shared by the freight booking engine.
//
// Validation kinds:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - ObjectNotFoundError for missing listings, requests and trips
//
// Booking kinds:
//   - ForbiddenRoleError, ForbiddenError
//   - InvalidStateError, IllegalTransitionError
//   - SelfBookingError, DuplicateRequestError, CapacityExceededError
//   - InvalidIdentifierError, StorageError
//
// Each error type follows the same pattern: a sentinel error variable, a struct
// carrying the details, New... constructors, Error() and Unwrap(). Callers classify
// failures with errors.Is against the sentinels; the HTTP adapter maps them to
// status codes.
package errs

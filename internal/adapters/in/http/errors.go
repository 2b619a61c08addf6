package http

import (
	"errors"
	"net/http"

	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx API response. Kind is stable and
// meant for programmatic handling; Message is for humans.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorKind struct {
	sentinel error
	status   int
	kind     string
}

// Order matters: joined validation errors may wrap more than one sentinel.
var errorKinds = []errorKind{
	{errs.ErrObjectNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrForbiddenRole, http.StatusForbidden, "forbidden_role"},
	{errs.ErrForbidden, http.StatusForbidden, "forbidden"},
	{errs.ErrInvalidState, http.StatusConflict, "invalid_state"},
	{errs.ErrIllegalTransition, http.StatusConflict, "illegal_transition"},
	{errs.ErrDuplicateRequest, http.StatusConflict, "duplicate_request"},
	{errs.ErrSelfBooking, http.StatusConflict, "self_booking"},
	{errs.ErrCapacityExceeded, http.StatusUnprocessableEntity, "capacity_exceeded"},
	{errs.ErrInvalidIdentifier, http.StatusBadRequest, "invalid_identifier"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "value_required"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "value_out_of_range"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "value_invalid"},
	{errs.ErrStorageUnavailable, http.StatusInternalServerError, "storage_error"},
}

// classify maps an application error to its HTTP status and kind.
func classify(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.sentinel) {
			return k.status, k.kind
		}
	}
	return http.StatusInternalServerError, "internal"
}

// writeError renders err. Internal failures are logged and their details are
// not exposed.
func (s *Server) writeError(c echo.Context, err error) error {
	status, kind := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err)
		msg = http.StatusText(status)
	}

	return c.JSON(status, ErrorResponse{Code: status, Kind: kind, Message: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Kind:    "bad_request",
		Message: msg,
	})
}

package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for transport requests.
type RequestRepository interface {
	// Add persists a new request. A second open request for the same requester
	// and listing is rejected with an *errs.DuplicateRequestError.
	Add(ctx context.Context, aggregate *request.TransportRequest) error

	Update(ctx context.Context, aggregate *request.TransportRequest) error

	// Get returns the request or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*request.TransportRequest, error)

	// Delete removes the request permanently.
	Delete(ctx context.Context, aggregate *request.TransportRequest) error

	// HasOpen reports whether requesterID holds a pending or accepted request on listingID.
	HasOpen(ctx context.Context, requesterID, listingID kernel.UUID) (bool, error)
}

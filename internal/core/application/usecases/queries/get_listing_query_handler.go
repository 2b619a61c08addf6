package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"freight/internal/core/domain/model/listing"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetListingQueryHandler struct {
	db *gorm.DB
}

func NewGetListingQueryHandler(db *gorm.DB) GetListingQueryHandler {
	return GetListingQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError for an unknown listing.
func (h GetListingQueryHandler) Handle(ctx context.Context, query GetListingQuery) (GetListingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetListingQueryResponse{}, err
	}

	var (
		resp                           GetListingQueryResponse
		id, ownerID                    uuid.UUID
		stops                          pq.StringArray
		maxLength, maxWidth, maxHeight *float64
		conditions                     []byte
		status                         int
	)

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, owner_id,
			origin_name, origin_latitude, origin_longitude,
			destination_name, destination_latitude, destination_longitude,
			stops, departure_at, arrival_at,
			max_length, max_width, max_height, max_weight,
			capacity_volume, price, conditions, seats, urgent, status,
			created_at, updated_at
		FROM listings
		WHERE id = ?
	`, query.ListingID().Bytes()).Row().Scan(
		&id, &ownerID,
		&resp.Origin.Name, &resp.Origin.Latitude, &resp.Origin.Longitude,
		&resp.Destination.Name, &resp.Destination.Latitude, &resp.Destination.Longitude,
		&stops, &resp.DepartureAt, &resp.ArrivalAt,
		&maxLength, &maxWidth, &maxHeight, &resp.MaxWeight,
		&resp.CapacityVolume, &resp.Price, &conditions, &resp.Seats, &resp.Urgent, &status,
		&resp.CreatedAt, &resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetListingQueryResponse{}, errs.NewObjectNotFoundError("listing", query.ListingID())
	}
	if err != nil {
		return GetListingQueryResponse{}, errs.NewStorageError("read listing", err)
	}

	if resp.ID, err = toKernelUUID(id); err != nil {
		return GetListingQueryResponse{}, err
	}
	if resp.OwnerID, err = toKernelUUID(ownerID); err != nil {
		return GetListingQueryResponse{}, err
	}

	resp.Stops = []string(stops)
	if resp.Stops == nil {
		resp.Stops = []string{}
	}
	if maxLength != nil && maxWidth != nil && maxHeight != nil {
		resp.MaxDimensions = &DimensionsView{Length: *maxLength, Width: *maxWidth, Height: *maxHeight}
	}
	resp.Conditions = map[string]string{}
	if len(conditions) > 0 {
		if err = json.Unmarshal(conditions, &resp.Conditions); err != nil {
			return GetListingQueryResponse{}, err
		}
	}
	resp.Status = listing.Status(status).String()

	return resp, nil
}

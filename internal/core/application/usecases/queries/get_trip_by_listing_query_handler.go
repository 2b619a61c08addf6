package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freight/internal/core/domain/model/trip"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetTripByListingQueryHandler struct {
	db *gorm.DB
}

func NewGetTripByListingQueryHandler(db *gorm.DB) GetTripByListingQueryHandler {
	return GetTripByListingQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError when the listing has no trip, which is
// also the case once the listing was cancelled.
func (h GetTripByListingQueryHandler) Handle(
	ctx context.Context,
	query GetTripByListingQuery,
) (GetTripByListingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTripByListingQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var (
		resp                     GetTripByListingQueryResponse
		id, listingID, carrierID uuid.UUID
		requestIDs               pq.StringArray
		status                   int
		lat, lon                 *float64
		currentAt                *time.Time
	)
	err := db.Raw(`
		SELECT
			id, listing_id, carrier_id, request_ids, status,
			planned_departure, actual_departure, actual_arrival,
			distance_km, cost, rating,
			current_latitude, current_longitude, current_reported_at
		FROM trips
		WHERE listing_id = ?
	`, query.ListingID().Bytes()).Row().Scan(
		&id, &listingID, &carrierID, &requestIDs, &status,
		&resp.PlannedDeparture, &resp.ActualDeparture, &resp.ActualArrival,
		&resp.DistanceKm, &resp.Cost, &resp.Rating,
		&lat, &lon, &currentAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTripByListingQueryResponse{}, errs.NewObjectNotFoundError("trip", query.ListingID())
	}
	if err != nil {
		return GetTripByListingQueryResponse{}, errs.NewStorageError("read trip", err)
	}

	if resp.ID, err = toKernelUUID(id); err != nil {
		return GetTripByListingQueryResponse{}, err
	}
	if resp.ListingID, err = toKernelUUID(listingID); err != nil {
		return GetTripByListingQueryResponse{}, err
	}
	if resp.CarrierID, err = toKernelUUID(carrierID); err != nil {
		return GetTripByListingQueryResponse{}, err
	}
	resp.RequestIDs = append([]string{}, requestIDs...)
	resp.Status = trip.Status(status).String()
	if lat != nil && lon != nil && currentAt != nil {
		resp.Current = &PositionView{Latitude: *lat, Longitude: *lon, ReportedAt: *currentAt}
	}

	resp.Incidents, err = h.incidents(ctx, id)
	if err != nil {
		return GetTripByListingQueryResponse{}, err
	}

	return resp, nil
}

func (h GetTripByListingQueryHandler) incidents(ctx context.Context, tripID uuid.UUID) ([]IncidentView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, type, description, severity, occurred_at
		FROM trip_incidents
		WHERE trip_id = ?
		ORDER BY occurred_at, id
	`, tripID).Rows()
	if err != nil {
		return nil, errs.NewStorageError("read trip incidents", err)
	}
	defer rows.Close()

	incidents := make([]IncidentView, 0)
	for rows.Next() {
		var (
			v        IncidentView
			id       uuid.UUID
			severity int
		)
		if err = rows.Scan(&id, &v.Type, &v.Description, &severity, &v.OccurredAt); err != nil {
			return nil, errs.NewStorageError("read trip incidents", err)
		}
		if v.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		v.Severity = trip.Severity(severity).String()
		incidents = append(incidents, v)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("read trip incidents", err)
	}
	return incidents, nil
}
